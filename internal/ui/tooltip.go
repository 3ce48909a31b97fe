package ui

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/muesli/reflow/wordwrap"
)

const (
	DefaultTooltipWidth = 40

	DefaultTooltipTemplate = `{{ .Title }}{{ if .Owner }} ({{ .OwnerLabel }} {{ .Owner }}){{ end }}` +
		` - {{ .TollLabel }}: {{ .TollAmount }}, {{ .IncomeLabel }}: {{ .TotalIncome }}`
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// TooltipData is the data a tooltip template is expanded with.
type TooltipData struct {
	Title       string
	Owner       string
	OwnerLabel  string
	TollLabel   string
	TollAmount  string
	IncomeLabel string
	TotalIncome string
}

// Tooltip renders a short word-wrapped description of a toll booth.
type Tooltip struct {
	tmpl  *template.Template
	width int
}

func NewTooltip(tmplStr string, width int) (*Tooltip, error) {
	if tmplStr == "" {
		tmplStr = DefaultTooltipTemplate
	}
	if width <= 0 {
		width = DefaultTooltipWidth
	}

	tmpl, err := template.New("tooltip").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("parsing tooltip template: %w", err)
	}

	return &Tooltip{tmpl: tmpl, width: width}, nil
}

func (t *Tooltip) Render(data TooltipData) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing tooltip template: %w", err)
	}
	return wordwrap.String(buf.String(), t.width), nil
}
