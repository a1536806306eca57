package dashboard

import (
	"reflect"
	"testing"
)

func TestFilterCountries(t *testing.T) {
	table := sampleTable()

	england := FilterCountries(table, []string{"England"})
	if len(england) != 3 {
		t.Fatalf("england=%d", len(england))
	}
	for _, r := range england {
		if r.Country != "England" {
			t.Fatalf("unexpected row %+v", r)
		}
	}

	if got := FilterCountries(table, []string{}); len(got) != 0 {
		t.Fatalf("empty selection should select nothing, got %d", len(got))
	}
	if got := FilterCountries(table, []string{"Atlantis"}); len(got) != 0 {
		t.Fatalf("unknown country matched %d rows", len(got))
	}
}

func TestFilterCuisines(t *testing.T) {
	got := FilterCuisines(sampleTable(), []string{"Italian", "British"})
	if len(got) != 6 {
		t.Fatalf("rows=%d", len(got))
	}
}

func TestSelection(t *testing.T) {
	defaults := []string{"Brazil"}
	if got := Selection(nil, defaults); !reflect.DeepEqual(got, defaults) {
		t.Fatalf("nil selection=%v", got)
	}
	if got := Selection([]string{}, defaults); len(got) != 0 {
		t.Fatalf("explicit empty selection=%v", got)
	}
}

func TestBuildOptions(t *testing.T) {
	opts := BuildOptions(sampleTable())
	if !reflect.DeepEqual(opts.Countries, []string{"Brazil", "England", "India"}) {
		t.Fatalf("countries=%v", opts.Countries)
	}
	if !reflect.DeepEqual(opts.Cuisines, []string{"Italian", "Brazilian", "British", "North Indian"}) {
		t.Fatalf("cuisines=%v", opts.Cuisines)
	}
}
