package dashboard

import (
	"reflect"
	"testing"

	"fomezero/internal"
	"fomezero/internal/config"
)

func TestBuildOverview(t *testing.T) {
	got := BuildOverview(sampleTable())
	want := Overview{Restaurants: 8, Countries: 3, Cities: 5, Votes: 1085, VotesText: "1.085", Cuisines: 4}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}

	if empty := BuildOverview(nil); empty.Restaurants != 0 || empty.VotesText != "0" {
		t.Fatalf("empty=%+v", empty)
	}
}

func TestBuildCountries(t *testing.T) {
	view := BuildCountries(sampleTable())

	cases := []struct {
		name   string
		chart  Chart
		labels []string
		values []float64
	}{
		{"restaurants", view.Restaurants, []string{"Brazil", "England", "India"}, []float64{4, 3, 1}},
		{"cities", view.Cities, []string{"Brazil", "England", "India"}, []float64{2, 2, 1}},
		{"votes", view.Votes, []string{"India", "Brazil", "England"}, []float64{1000, 15.8, 7.3}},
		{"cost", view.Cost, []string{"India", "Brazil", "England"}, []float64{500, 75, 43.33}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := labels(tc.chart.Bars); !reflect.DeepEqual(got, tc.labels) {
				t.Fatalf("labels=%v want %v", got, tc.labels)
			}
			if got := values(tc.chart.Bars); !reflect.DeepEqual(got, tc.values) {
				t.Fatalf("values=%v want %v", got, tc.values)
			}
			if tc.chart.Bars[0].Color == tc.chart.Bars[1].Color {
				t.Fatal("bars should be colored individually")
			}
		})
	}
}

func TestBuildCities(t *testing.T) {
	view := BuildCities(sampleTable())

	if got := labels(view.Restaurants.Bars); !reflect.DeepEqual(got, []string{"Rio de Janeiro", "London", "Manchester", "New Delhi", "São Paulo"}) {
		t.Fatalf("restaurants=%v", got)
	}
	if got := values(view.Restaurants.Bars); !reflect.DeepEqual(got, []float64{3, 2, 1, 1, 1}) {
		t.Fatalf("restaurant counts=%v", got)
	}

	if got := labels(view.HighRated.Bars); !reflect.DeepEqual(got, []string{"Rio de Janeiro", "London", "New Delhi"}) {
		t.Fatalf("high rated=%v", got)
	}
	if got := values(view.HighRated.Bars); !reflect.DeepEqual(got, []float64{3, 1, 1}) {
		t.Fatalf("high rated counts=%v", got)
	}

	if got := labels(view.LowRated.Bars); !reflect.DeepEqual(got, []string{"Manchester", "São Paulo"}) {
		t.Fatalf("low rated=%v", got)
	}

	if got := values(view.Cuisines.Bars); !reflect.DeepEqual(got, []float64{2, 2, 1, 1, 1}) {
		t.Fatalf("cuisine counts=%v", got)
	}
	if got := labels(view.Cuisines.Bars)[:2]; !reflect.DeepEqual(got, []string{"London", "Rio de Janeiro"}) {
		t.Fatalf("cuisine leaders=%v", got)
	}

	bars := view.Restaurants.Bars
	if bars[0].Group != "Brazil" || bars[1].Group != "England" {
		t.Fatalf("groups=%+v", bars)
	}
	if bars[0].Color != bars[4].Color || bars[1].Color != bars[2].Color || bars[0].Color == bars[1].Color {
		t.Fatalf("colors should follow the country: %+v", bars)
	}
}

func TestBuildCitiesEmptySelection(t *testing.T) {
	view := BuildCities(nil)
	if len(view.Restaurants.Bars) != 0 || view.Restaurants.Title == "" {
		t.Fatalf("view=%+v", view.Restaurants)
	}
}

func TestBuildHighlights(t *testing.T) {
	featured := []config.Highlight{
		{Label: "Italian", Cuisine: "Italian"},
		{Label: "Japanese", Cuisine: "Japanese"},
		{Label: "Indian", Cuisine: "North Indian"},
	}
	got := BuildHighlights(sampleTable(), featured)
	want := []Highlight{
		{Label: "Italian", Cuisine: "Italian", Found: true, Restaurant: "Alpha", Rating: 4.5, Value: "4.5/5.0"},
		{Label: "Japanese", Cuisine: "Japanese"},
		{Label: "Indian", Cuisine: "North Indian", Found: true, Restaurant: "Epsilon", Rating: 4.8, Value: "4.8/5.0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}
}

func TestTopRestaurants(t *testing.T) {
	top := TopRestaurants(sampleTable(), 3)
	var ids []int64
	for _, r := range top {
		ids = append(ids, r.RestaurantID)
	}
	if !reflect.DeepEqual(ids, []int64{6, 1, 9}) {
		t.Fatalf("ids=%v", ids)
	}

	all := TopRestaurants(sampleTable(), 20)
	if len(all) != 7 {
		t.Fatalf("names should be unique, got %d rows", len(all))
	}
	for _, r := range all {
		if r.RestaurantName == "Alpha" && r.RestaurantID != 1 {
			t.Fatalf("kept the later Alpha: %+v", r)
		}
	}
}

func TestBuildCuisines(t *testing.T) {
	all := sampleTable()
	filtered := FilterCuisines(FilterCountries(all, []string{"Brazil", "India", "England"}), []string{"Italian", "Brazilian", "British", "North Indian"})

	view := BuildCuisines(all, filtered, config.DefaultPages().Cuisines.Featured, 10)
	if view.Limit != 10 || len(view.Highlights) != 5 {
		t.Fatalf("view=%+v", view)
	}

	if got := labels(view.Best.Bars); !reflect.DeepEqual(got, []string{"North Indian", "Brazilian", "Italian", "British"}) {
		t.Fatalf("best=%v", got)
	}
	if got := values(view.Best.Bars); !reflect.DeepEqual(got, []float64{4.8, 4.2, 3.4, 3}) {
		t.Fatalf("best values=%v", got)
	}
	if got := labels(view.Worst.Bars); !reflect.DeepEqual(got, []string{"British", "Italian", "Brazilian", "North Indian"}) {
		t.Fatalf("worst=%v", got)
	}
}

func TestBuildCuisinesEmptyFilter(t *testing.T) {
	view := BuildCuisines(sampleTable(), []internal.CanonicalRecord{}, nil, 5)
	if len(view.Top) != 0 || len(view.Best.Bars) != 0 || len(view.Worst.Bars) != 0 {
		t.Fatalf("view=%+v", view)
	}
}
