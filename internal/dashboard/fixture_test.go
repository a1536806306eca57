package dashboard

import "fomezero/internal"

type place struct {
	city, country string
	lat, lng      float64
}

var (
	rio        = place{"Rio de Janeiro", "Brazil", -22.9068, -43.1729}
	saoPaulo   = place{"São Paulo", "Brazil", -23.5505, -46.6333}
	london     = place{"London", "England", 51.5072, -0.1276}
	manchester = place{"Manchester", "England", 53.4808, -2.2426}
	delhi      = place{"New Delhi", "India", 28.6139, 77.2090}
)

func restaurant(id int64, name string, at place, cuisine string, cost int, rating float64, votes int) internal.CanonicalRecord {
	return internal.CanonicalRecord{
		RestaurantID:      id,
		RestaurantName:    name,
		Country:           at.country,
		City:              at.city,
		Address:           "1 Main St",
		Locality:          "Centre",
		LocalityVerbose:   "Centre, " + at.city,
		Longitude:         at.lng,
		Latitude:          at.lat,
		Cuisines:          cuisine,
		PriceType:         "normal",
		AverageCostForTwo: cost,
		Currency:          "Dollar($)",
		AggregateRating:   rating,
		RatingColor:       "5BA829",
		ColorName:         "green",
		RatingText:        "Very Good",
		Votes:             votes,
	}
}

// sampleTable: 8 rows, 3 countries, 5 cities, 4 cuisines, 1085 votes.
func sampleTable() []internal.CanonicalRecord {
	return []internal.CanonicalRecord{
		restaurant(1, "Alpha", rio, "Italian", 100, 4.5, 10),
		restaurant(2, "Beta", rio, "Brazilian", 50, 4.2, 20),
		restaurant(3, "Gamma", saoPaulo, "Italian", 80, 2.0, 30),
		restaurant(4, "Delta", london, "British", 40, 3.0, 5),
		restaurant(5, "Alpha", london, "Italian", 60, 4.5, 15),
		restaurant(6, "Epsilon", delhi, "North Indian", 500, 4.8, 1000),
		restaurant(7, "Zeta", manchester, "Italian", 30, 1.5, 2),
		restaurant(9, "Aardvark", rio, "Italian", 70, 4.5, 3),
	}
}

func labels(bars []Bar) []string {
	out := make([]string, 0, len(bars))
	for _, b := range bars {
		out = append(out, b.Label)
	}
	return out
}

func values(bars []Bar) []float64 {
	out := make([]float64, 0, len(bars))
	for _, b := range bars {
		out = append(out, b.Value)
	}
	return out
}
