package util

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	reAcronymBoundary = regexp.MustCompile(`([A-Z\d]+)([A-Z][a-z])`)
	reCamelBoundary   = regexp.MustCompile(`([a-z\d])([A-Z])`)
	titler            = cases.Title(language.Und)
)

// Titleize splits input on case and underscore boundaries and capitalizes
// every resulting word: "restaurant_id" and "RestaurantID" both become
// "Restaurant Id".
func Titleize(input string) string {
	s := strings.ReplaceAll(Underscore(input), "_", " ")
	return titler.String(s)
}

// Underscore converts CamelCase to snake_case.
func Underscore(input string) string {
	s := reAcronymBoundary.ReplaceAllString(input, "${1}_${2}")
	s = reCamelBoundary.ReplaceAllString(s, "${1}_${2}")
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ToLower(s)
}

// SnakeColumn maps a header such as "Average Cost for two" to
// "average_cost_for_two". Already snake_cased input is returned unchanged.
func SnakeColumn(input string) string {
	s := Titleize(input)
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\u00a0' {
			return -1
		}
		return r
	}, s)
	return Underscore(s)
}
