package pipeline

import (
	"strings"

	"fomezero/internal/util"
)

func CanonicalColumnName(name string) string {
	return util.SnakeColumn(strings.TrimPrefix(name, "\ufeff"))
}

// RenameColumns maps every header to its snake_case form. It is idempotent.
func RenameColumns(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		out[i] = CanonicalColumnName(name)
	}
	return out
}
