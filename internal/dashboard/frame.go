package dashboard

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"fomezero/internal"
)

const (
	colID      = "restaurant_id"
	colName    = "restaurant_name"
	colCountry = "country"
	colCity    = "city"
	colCuisine = "cuisines"
	colCost    = "average_cost_for_two"
	colRating  = "aggregate_rating"
	colVotes   = "votes"
)

var frameColumns = []string{colID, colName, colCountry, colCity, colCuisine, colCost, colRating, colVotes}

var frameTypes = map[string]series.Type{
	colID:      series.Int,
	colName:    series.String,
	colCountry: series.String,
	colCity:    series.String,
	colCuisine: series.String,
	colCost:    series.Float,
	colRating:  series.Float,
	colVotes:   series.Float,
}

// toFrame loads the columns the pages aggregate on. Callers must not pass an
// empty table; gota refuses to build a frame without rows.
func toFrame(records []internal.CanonicalRecord) dataframe.DataFrame {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, frameColumns)
	for _, r := range records {
		rows = append(rows, []string{
			strconv.FormatInt(r.RestaurantID, 10),
			r.RestaurantName,
			r.Country,
			r.City,
			r.Cuisines,
			strconv.Itoa(r.AverageCostForTwo),
			strconv.FormatFloat(r.AggregateRating, 'f', -1, 64),
			strconv.Itoa(r.Votes),
		})
	}
	return dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.WithTypes(frameTypes),
	)
}

type group struct {
	keys  []string
	frame dataframe.DataFrame
}

// groupBy splits df on cols. Groups come back ordered by key so that later
// stable sorts break ties alphabetically.
func groupBy(df dataframe.DataFrame, cols ...string) []group {
	if df.Err != nil || df.Nrow() == 0 {
		return nil
	}

	var out []group
	for _, frame := range df.GroupBy(cols...).GetGroups() {
		keys := make([]string, len(cols))
		for i, c := range cols {
			keys[i] = frame.Col(c).Elem(0).String()
		}
		out = append(out, group{keys: keys, frame: frame})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Join(out[i].keys, "\x00") < strings.Join(out[j].keys, "\x00")
	})
	return out
}

func distinct(s series.Series) int {
	seen := map[string]struct{}{}
	for _, v := range s.Records() {
		seen[v] = struct{}{}
	}
	return len(seen)
}

func sum(s series.Series) float64 {
	var total float64
	for _, v := range s.Float() {
		total += v
	}
	return total
}

func ratingAbove(df dataframe.DataFrame, threshold float64) dataframe.DataFrame {
	return df.Filter(dataframe.F{Colname: colRating, Comparator: series.Greater, Comparando: threshold})
}

func ratingBelow(df dataframe.DataFrame, threshold float64) dataframe.DataFrame {
	return df.Filter(dataframe.F{Colname: colRating, Comparator: series.Less, Comparando: threshold})
}

func cuisineIs(df dataframe.DataFrame, cuisine string) dataframe.DataFrame {
	return df.Filter(dataframe.F{Colname: colCuisine, Comparator: series.Eq, Comparando: cuisine})
}
