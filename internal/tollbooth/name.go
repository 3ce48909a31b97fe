package tollbooth

import (
	"encoding/json"
	"unicode/utf8"
)

// MaxNameBytes is the largest encoded name a record can hold.
const MaxNameBytes = 64

// Name is either Unnamed or a concrete display name. The zero value is
// Unnamed; a Named value is never empty.
type Name struct {
	text  string
	named bool
}

// Unnamed is the state every toll booth starts in.
var Unnamed = Name{}

// NewName builds a Named value from text, truncated to MaxNameBytes on a rune
// boundary. Empty text yields Unnamed.
func NewName(text string) Name {
	text = truncate(text, MaxNameBytes)
	if text == "" {
		return Unnamed
	}
	return Name{text: text, named: true}
}

func (n Name) IsNamed() bool {
	return n.named
}

// String returns the display text. Unnamed renders as the empty string.
func (n Name) String() string {
	return n.text
}

func (n Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.text)
}

func (n *Name) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*n = NewName(s)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
