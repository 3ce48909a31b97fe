package ui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pixil98/go-tollbooth/internal/entity"
	"github.com/pixil98/go-tollbooth/internal/tollbooth"
)

const PanelGroup = "tollboothInfo"

// NameReader returns the current name of a toll booth.
type NameReader interface {
	NameOf(id entity.Identity) (tollbooth.Name, error)
}

// TollBooths answers host questions about selected entities.
type TollBooths interface {
	HasTollBooth(id entity.Identity) bool
	OwnerOf(id entity.Identity) (entity.Identity, bool)
}

// Revenue reports money figures for a toll booth.
type Revenue interface {
	TollAmount(id entity.Identity) float64
	TotalIncome(id entity.Identity) float64
}

// FixedRevenue reports the same figures for every toll booth until revenue
// is simulated.
type FixedRevenue struct {
	Toll   float64
	Income float64
}

func (r FixedRevenue) TollAmount(entity.Identity) float64 {
	return r.Toll
}

func (r FixedRevenue) TotalIncome(entity.Identity) float64 {
	return r.Income
}

// InfoPanel shows the selected toll booth's name and money figures.
type InfoPanel struct {
	selection *Selection
	booths    TollBooths
	names     NameReader
	revenue   Revenue
	locale    *Locale
	tooltip   *Tooltip

	bindings    *Bindings
	visible     *ValueBinding[bool]
	title       *ValueBinding[string]
	tollAmount  *ValueBinding[string]
	totalIncome *ValueBinding[string]
	description *ValueBinding[string]
}

func NewInfoPanel(sel *Selection, booths TollBooths, names NameReader, revenue Revenue, locale *Locale, tooltip *Tooltip) *InfoPanel {
	b := NewBindings(PanelGroup)

	p := &InfoPanel{
		selection: sel,
		booths:    booths,
		names:     names,
		revenue:   revenue,
		locale:    locale,
		tooltip:   tooltip,

		bindings:    b,
		visible:     NewValueBinding(b, "isPanelVisible", false),
		title:       NewValueBinding(b, "panelTitle", locale.T(KeyDefaultTitle)),
		tollAmount:  NewValueBinding(b, "tollAmount", "0"),
		totalIncome: NewValueBinding(b, "totalIncome", "0"),
		description: NewValueBinding(b, "tooltip", ""),
	}

	b.AddTrigger("onClose", p.close)

	return p
}

func (p *InfoPanel) Bindings() *Bindings {
	return p.bindings
}

func (p *InfoPanel) Tick(ctx context.Context) error {
	id := p.selection.Selected()

	if id.IsNull() || !p.booths.HasTollBooth(id) {
		if p.visible.Update(false) {
			slog.InfoContext(ctx, "hiding toll booth panel")
		}
		return nil
	}

	if p.visible.Update(true) {
		slog.InfoContext(ctx, "showing toll booth panel", "entity", id.String())
	}
	return p.refresh(ctx, id)
}

func (p *InfoPanel) refresh(ctx context.Context, id entity.Identity) error {
	name, err := p.names.NameOf(id)
	if errors.Is(err, tollbooth.ErrNotLive) {
		// Destroyed after the check above; the next tick hides the panel.
		return nil
	}
	if err != nil {
		return err
	}

	title := name.String()
	if !name.IsNamed() {
		title = p.locale.T(KeyDefaultTitle)
	}
	toll := p.locale.Money(p.revenue.TollAmount(id))
	income := p.locale.Money(p.revenue.TotalIncome(id))

	p.title.Update(title)
	p.tollAmount.Update(toll)
	p.totalIncome.Update(income)

	if p.tooltip == nil {
		return nil
	}

	data := TooltipData{
		Title:       title,
		OwnerLabel:  p.locale.T(KeyOwner),
		TollLabel:   p.locale.T(KeyTollAmount),
		TollAmount:  toll,
		IncomeLabel: p.locale.T(KeyTotalIncome),
		TotalIncome: income,
	}
	if owner, ok := p.booths.OwnerOf(id); ok {
		data.Owner = owner.String()
	}

	text, err := p.tooltip.Render(data)
	if err != nil {
		slog.WarnContext(ctx, "rendering toll booth tooltip", "entity", id.String(), "error", err)
		return nil
	}
	p.description.Update(text)
	return nil
}

func (p *InfoPanel) close() {
	slog.Info("toll booth panel closed by user")
	p.visible.Update(false)
	p.selection.Clear()
}

// Visible reports whether the panel is currently shown.
func (p *InfoPanel) Visible() bool {
	return p.visible.Value()
}

func (p *InfoPanel) Title() string {
	return p.title.Value()
}
