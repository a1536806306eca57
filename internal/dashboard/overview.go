package dashboard

import (
	"fomezero/internal"
	"fomezero/internal/util"
)

// Overview holds the platform-wide metrics of the main page. They are computed
// on the unfiltered table; the country selection only narrows the map.
type Overview struct {
	Restaurants int    `json:"restaurants"`
	Countries   int    `json:"countries"`
	Cities      int    `json:"cities"`
	Votes       int64  `json:"votes"`
	VotesText   string `json:"votesText"`
	Cuisines    int    `json:"cuisines"`
}

func BuildOverview(records []internal.CanonicalRecord) Overview {
	if len(records) == 0 {
		return Overview{VotesText: "0"}
	}

	df := toFrame(records)
	votes := int64(sum(df.Col(colVotes)))
	return Overview{
		Restaurants: distinct(df.Col(colID)),
		Countries:   distinct(df.Col(colCountry)),
		Cities:      distinct(df.Col(colCity)),
		Votes:       votes,
		VotesText:   util.FormatThousands(votes, "."),
		Cuisines:    distinct(df.Col(colCuisine)),
	}
}
