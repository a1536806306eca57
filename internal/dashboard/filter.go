package dashboard

import "fomezero/internal"

// Selection resolves a sidebar selection: nil means the user made no choice
// and the page defaults apply, an empty non-nil slice selects nothing.
func Selection(selected, defaults []string) []string {
	if selected == nil {
		return defaults
	}
	return selected
}

func FilterCountries(records []internal.CanonicalRecord, countries []string) []internal.CanonicalRecord {
	return filterBy(records, countries, func(r internal.CanonicalRecord) string { return r.Country })
}

func FilterCuisines(records []internal.CanonicalRecord, cuisines []string) []internal.CanonicalRecord {
	return filterBy(records, cuisines, func(r internal.CanonicalRecord) string { return r.Cuisines })
}

func filterBy(records []internal.CanonicalRecord, values []string, field func(internal.CanonicalRecord) string) []internal.CanonicalRecord {
	want := make(map[string]struct{}, len(values))
	for _, v := range values {
		want[v] = struct{}{}
	}

	out := make([]internal.CanonicalRecord, 0)
	for _, r := range records {
		if _, ok := want[field(r)]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Options are the selectable values of the sidebar lists, in order of first
// appearance in the table.
type Options struct {
	Countries []string `json:"countries"`
	Cuisines  []string `json:"cuisines"`
}

func BuildOptions(records []internal.CanonicalRecord) Options {
	return Options{
		Countries: unique(records, func(r internal.CanonicalRecord) string { return r.Country }),
		Cuisines:  unique(records, func(r internal.CanonicalRecord) string { return r.Cuisines }),
	}
}

func unique(records []internal.CanonicalRecord, field func(internal.CanonicalRecord) string) []string {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, r := range records {
		v := field(r)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
