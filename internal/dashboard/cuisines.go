package dashboard

import (
	"sort"
	"strconv"

	"fomezero/internal"
	"fomezero/internal/config"
	"fomezero/internal/util"
)

const topCuisines = 10

// Highlight is the best rated restaurant of a featured cuisine.
type Highlight struct {
	Label      string  `json:"label"`
	Cuisine    string  `json:"cuisine"`
	Found      bool    `json:"found"`
	Restaurant string  `json:"restaurant,omitempty"`
	Rating     float64 `json:"rating,omitempty"`
	Value      string  `json:"value,omitempty"`
}

type TopRestaurant struct {
	RestaurantID      int64   `json:"restaurant_id"`
	RestaurantName    string  `json:"restaurant_name"`
	Country           string  `json:"country"`
	City              string  `json:"city"`
	Cuisines          string  `json:"cuisines"`
	AverageCostForTwo int     `json:"average_cost_for_two"`
	AggregateRating   float64 `json:"aggregate_rating"`
	Votes             int     `json:"votes"`
}

type CuisinesView struct {
	Highlights []Highlight     `json:"highlights"`
	Limit      int             `json:"limit"`
	Top        []TopRestaurant `json:"top"`
	Best       Chart           `json:"best"`
	Worst      Chart           `json:"worst"`
}

// BuildCuisines takes the unfiltered table for the highlights and the
// country and cuisine filtered table for everything else.
func BuildCuisines(all, filtered []internal.CanonicalRecord, featured []config.Highlight, limit int) CuisinesView {
	best, worst := cuisineRanking(filtered)
	return CuisinesView{
		Highlights: BuildHighlights(all, featured),
		Limit:      limit,
		Top:        TopRestaurants(filtered, limit),
		Best:       best,
		Worst:      worst,
	}
}

// BuildHighlights groups the rows of each featured cuisine by restaurant name
// and picks the highest mean rating, then the lowest mean id.
func BuildHighlights(records []internal.CanonicalRecord, featured []config.Highlight) []Highlight {
	out := make([]Highlight, 0, len(featured))
	if len(records) == 0 {
		for _, f := range featured {
			out = append(out, Highlight{Label: f.Label, Cuisine: f.Cuisine})
		}
		return out
	}

	df := toFrame(records)
	for _, f := range featured {
		h := Highlight{Label: f.Label, Cuisine: f.Cuisine}

		var bestID float64
		for _, g := range groupBy(cuisineIs(df, f.Cuisine), colName) {
			rating := g.frame.Col(colRating).Mean()
			id := g.frame.Col(colID).Mean()
			if !h.Found || rating > h.Rating || (rating == h.Rating && id < bestID) {
				h.Found = true
				h.Restaurant = g.keys[0]
				h.Rating = rating
				bestID = id
			}
		}
		if h.Found {
			h.Value = strconv.FormatFloat(h.Rating, 'f', -1, 64) + "/5.0"
		}
		out = append(out, h)
	}
	return out
}

// TopRestaurants keeps the first row per restaurant name and returns the
// limit best rated, lowest id first on ties.
func TopRestaurants(records []internal.CanonicalRecord, limit int) []TopRestaurant {
	seen := map[string]bool{}
	rows := make([]TopRestaurant, 0)
	for _, r := range records {
		if seen[r.RestaurantName] {
			continue
		}
		seen[r.RestaurantName] = true
		rows = append(rows, TopRestaurant{
			RestaurantID:      r.RestaurantID,
			RestaurantName:    r.RestaurantName,
			Country:           r.Country,
			City:              r.City,
			Cuisines:          r.Cuisines,
			AverageCostForTwo: r.AverageCostForTwo,
			AggregateRating:   r.AggregateRating,
			Votes:             r.Votes,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AggregateRating != rows[j].AggregateRating {
			return rows[i].AggregateRating > rows[j].AggregateRating
		}
		return rows[i].RestaurantID < rows[j].RestaurantID
	})

	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func cuisineRanking(records []internal.CanonicalRecord) (Chart, Chart) {
	best := Chart{Title: "Top 10 best cuisines", XLabel: "Cuisine", YLabel: "Average rating"}
	worst := Chart{Title: "Top 10 worst cuisines", XLabel: "Cuisine", YLabel: "Average rating"}
	if len(records) == 0 {
		return best, worst
	}

	var bars []Bar
	for _, g := range groupBy(toFrame(records), colCuisine) {
		bars = append(bars, Bar{Label: g.keys[0], Value: g.frame.Col(colRating).Mean()})
	}

	best.Bars = ranked(bars, true)
	worst.Bars = ranked(bars, false)
	return best, worst
}

func ranked(bars []Bar, desc bool) []Bar {
	out := append([]Bar(nil), bars...)
	sortBars(out, desc)
	out = head(out, topCuisines)
	for i := range out {
		out[i].Value = util.Round(out[i].Value, 1)
	}
	colorAll(out, palette[0])
	return out
}
