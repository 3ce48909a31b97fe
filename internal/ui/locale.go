package ui

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys used by the toll booth panel.
const (
	KeyDefaultTitle = "TollBooth.Panel.DefaultTitle"
	KeyTollAmount   = "TollBooth.Panel.TollAmount"
	KeyTotalIncome  = "TollBooth.Panel.TotalIncome"
	KeyOwner        = "TollBooth.Panel.Owner"
)

var sources = map[language.Tag]map[string]string{
	language.AmericanEnglish: {
		KeyDefaultTitle: "Toll Booth",
		KeyTollAmount:   "Toll Amount",
		KeyTotalIncome:  "Total Income",
		KeyOwner:        "Highway",
	},
}

// Locale renders panel strings and money amounts for one language.
type Locale struct {
	tag     language.Tag
	printer *message.Printer
	symbol  string
}

// NewLocale builds a Locale for tag, falling back to American English when
// the tag has no translations.
func NewLocale(tag string) (*Locale, error) {
	requested := language.AmericanEnglish
	if tag != "" {
		t, err := language.Parse(tag)
		if err != nil {
			return nil, fmt.Errorf("parsing locale %q: %w", tag, err)
		}
		requested = t
	}

	b := catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish))
	var supported []language.Tag
	for t, msgs := range sources {
		supported = append(supported, t)
		for k, v := range msgs {
			if err := b.SetString(t, k, v); err != nil {
				return nil, fmt.Errorf("adding %s message %q: %w", t, k, err)
			}
		}
	}

	matched, _, _ := language.NewMatcher(supported).Match(requested)
	return &Locale{
		tag:     matched,
		printer: message.NewPrinter(matched, message.Catalog(b)),
		symbol:  "$",
	}, nil
}

func (l *Locale) Tag() language.Tag {
	return l.tag
}

// T returns the translation for key.
func (l *Locale) T(key string) string {
	return l.printer.Sprintf(key)
}

// Money formats amount with two decimals and digit grouping.
func (l *Locale) Money(amount float64) string {
	return l.symbol + l.printer.Sprintf("%.2f", amount)
}
