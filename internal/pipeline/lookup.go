package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCode = errors.New("unknown code")

var countries = map[int]string{
	1:   "India",
	14:  "Australia",
	30:  "Brazil",
	37:  "Canada",
	94:  "Indonesia",
	148: "New Zeland",
	162: "Philippines",
	166: "Qatar",
	184: "Singapure",
	189: "South Africa",
	191: "Sri Lanka",
	208: "Turkey",
	214: "United Arab Emirates",
	215: "England",
	216: "United States of America",
}

var colors = map[string]string{
	"3F7E00": "darkgreen",
	"5BA829": "green",
	"9ACD32": "lightgreen",
	"CDD614": "orange",
	"FFBA00": "red",
	"CBCBC8": "darkred",
	"FF7800": "darkred",
}

// LookupError reports a coded value missing from a static lookup table.
type LookupError struct {
	Field string
	Value string
	Line  int
}

func (e *LookupError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s %q: %v", e.Line, e.Field, e.Value, ErrUnknownCode)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, ErrUnknownCode)
}

func (e *LookupError) Unwrap() error { return ErrUnknownCode }

func LookupCountry(code int) (string, error) {
	name, ok := countries[code]
	if !ok {
		return "", &LookupError{Field: "country_code", Value: fmt.Sprint(code)}
	}
	return name, nil
}

// LookupColorName matches the hex code exactly; "3f7e00" is not "3F7E00".
func LookupColorName(hex string) (string, error) {
	name, ok := colors[hex]
	if !ok {
		return "", &LookupError{Field: "rating_color", Value: hex}
	}
	return name, nil
}

func ClassifyPrice(tier int) string {
	switch tier {
	case 1:
		return "cheap"
	case 2:
		return "normal"
	case 3:
		return "expensive"
	default:
		return "gourmet"
	}
}

// PrimaryCuisine keeps the first entry of a comma separated list verbatim.
func PrimaryCuisine(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	return first
}
