package util

import (
	"math"
	"strconv"
	"strings"
)

// FormatThousands renders n with sep between groups of three digits.
func FormatThousands(n int64, sep string) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}

// Round rounds half to even at the given number of decimal places.
func Round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(value*scale) / scale
}
