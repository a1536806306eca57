package dashboard

import (
	"github.com/go-gota/gota/dataframe"

	"fomezero/internal"
)

const (
	topCities      = 10
	topRatedCities = 7
	highRating     = 4.0
	lowRating      = 2.5
)

type CitiesView struct {
	Restaurants Chart `json:"restaurants"`
	HighRated   Chart `json:"highRated"`
	LowRated    Chart `json:"lowRated"`
	Cuisines    Chart `json:"cuisines"`
}

// BuildCities ranks (city, country) pairs. Bars carry the country as group and
// are colored per country.
func BuildCities(records []internal.CanonicalRecord) CitiesView {
	view := CitiesView{
		Restaurants: Chart{Title: "Top 10 cities by registered restaurants", XLabel: "City", YLabel: "Restaurants"},
		HighRated:   Chart{Title: "Top 7 cities by restaurants rated above 4", XLabel: "City", YLabel: "Restaurants"},
		LowRated:    Chart{Title: "Top 7 cities by restaurants rated below 2.5", XLabel: "City", YLabel: "Restaurants"},
		Cuisines:    Chart{Title: "Top 10 cities by distinct cuisines", XLabel: "City", YLabel: "Cuisines"},
	}
	if len(records) == 0 {
		return view
	}

	df := toFrame(records)
	view.Restaurants.Bars = cityBars(df, topCities, countRows)
	view.HighRated.Bars = cityBars(ratingAbove(df, highRating), topRatedCities, countRows)
	view.LowRated.Bars = cityBars(ratingBelow(df, lowRating), topRatedCities, countRows)
	view.Cuisines.Bars = cityBars(df, topCities, func(g dataframe.DataFrame) float64 {
		return float64(distinct(g.Col(colCuisine)))
	})
	return view
}

func countRows(g dataframe.DataFrame) float64 {
	return float64(g.Nrow())
}

func cityBars(df dataframe.DataFrame, n int, value func(dataframe.DataFrame) float64) []Bar {
	var bars []Bar
	for _, g := range groupBy(df, colCity, colCountry) {
		bars = append(bars, Bar{Label: g.keys[0], Group: g.keys[1], Value: value(g.frame)})
	}
	sortBars(bars, true)
	bars = head(bars, n)
	colorByGroup(bars)
	return bars
}
