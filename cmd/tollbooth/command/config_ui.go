package command

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-tollbooth/internal/ui"
)

type UIConfig struct {
	Locale          string  `json:"locale"`
	TooltipTemplate string  `json:"tooltip_template"`
	TooltipWidth    int     `json:"tooltip_width"`
	TollAmount      float64 `json:"toll_amount"`
	TotalIncome     float64 `json:"total_income"`
}

func (c *UIConfig) validate() error {
	el := errors.NewErrorList()

	if c.TooltipWidth < 0 {
		el.Add(fmt.Errorf("ui: tooltip_width must not be negative"))
	}
	if _, err := ui.NewLocale(c.Locale); err != nil {
		el.Add(fmt.Errorf("ui: %w", err))
	}

	return el.Err()
}

func (c *UIConfig) buildInfoPanel(sel *ui.Selection, booths ui.TollBooths, names ui.NameReader) (*ui.InfoPanel, error) {
	locale, err := ui.NewLocale(c.Locale)
	if err != nil {
		return nil, err
	}
	slog.Info("ui locale selected", "requested", c.Locale, "using", locale.Tag().String())

	tooltip, err := ui.NewTooltip(c.TooltipTemplate, c.TooltipWidth)
	if err != nil {
		return nil, err
	}

	revenue := ui.FixedRevenue{Toll: c.TollAmount, Income: c.TotalIncome}
	return ui.NewInfoPanel(sel, booths, names, revenue, locale, tooltip), nil
}
