package dashboard

import (
	"fomezero/internal"
	"fomezero/internal/util"
)

type CountriesView struct {
	Restaurants Chart `json:"restaurants"`
	Cities      Chart `json:"cities"`
	Votes       Chart `json:"votes"`
	Cost        Chart `json:"cost"`
}

// BuildCountries aggregates the selected rows per country. Every chart is
// sorted by its own value, descending.
func BuildCountries(records []internal.CanonicalRecord) CountriesView {
	view := CountriesView{
		Restaurants: Chart{Title: "Restaurants per country", XLabel: "Country", YLabel: "Registered restaurants"},
		Cities:      Chart{Title: "Cities per country", XLabel: "Country", YLabel: "Registered cities"},
		Votes:       Chart{Title: "Average votes per country", XLabel: "Country", YLabel: "Votes"},
		Cost:        Chart{Title: "Average cost for two per country", XLabel: "Country", YLabel: "Cost for two"},
	}
	if len(records) == 0 {
		return view
	}

	for _, g := range groupBy(toFrame(records), colCountry) {
		country := g.keys[0]
		view.Restaurants.Bars = append(view.Restaurants.Bars, Bar{Label: country, Value: float64(distinct(g.frame.Col(colID)))})
		view.Cities.Bars = append(view.Cities.Bars, Bar{Label: country, Value: float64(distinct(g.frame.Col(colCity)))})
		view.Votes.Bars = append(view.Votes.Bars, Bar{Label: country, Value: util.Round(g.frame.Col(colVotes).Mean(), 1)})
		view.Cost.Bars = append(view.Cost.Bars, Bar{Label: country, Value: util.Round(g.frame.Col(colCost).Mean(), 2)})
	}

	for _, c := range []*Chart{&view.Restaurants, &view.Cities, &view.Votes, &view.Cost} {
		sortBars(c.Bars, true)
		colorEach(c.Bars)
	}
	return view
}
