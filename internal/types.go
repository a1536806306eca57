package internal

import (
	"fmt"
	"strings"
)

// CanonicalColumns is the fixed output schema of the normalization pipeline.
var CanonicalColumns = []string{
	"restaurant_id",
	"restaurant_name",
	"country",
	"city",
	"address",
	"locality",
	"locality_verbose",
	"longitude",
	"latitude",
	"cuisines",
	"price_type",
	"average_cost_for_two",
	"currency",
	"has_table_booking",
	"has_online_delivery",
	"is_delivering_now",
	"aggregate_rating",
	"rating_color",
	"color_name",
	"rating_text",
	"votes",
}

// RequiredRawColumns lists the snake_case source columns the pipeline reads.
var RequiredRawColumns = []string{
	"restaurant_id",
	"restaurant_name",
	"country_code",
	"city",
	"address",
	"locality",
	"locality_verbose",
	"longitude",
	"latitude",
	"cuisines",
	"price_range",
	"average_cost_for_two",
	"currency",
	"has_table_booking",
	"has_online_delivery",
	"is_delivering_now",
	"aggregate_rating",
	"rating_color",
	"rating_text",
	"votes",
}

type Flag bool

func (f Flag) MarshalCSV() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalCSV(data []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(data))) {
	case "1", "true", "yes", "y":
		*f = true
	case "0", "false", "no", "n":
		*f = false
	default:
		return fmt.Errorf("invalid flag value %q", string(data))
	}
	return nil
}

type RawRecord struct {
	RestaurantID      int64   `csv:"restaurant_id"`
	RestaurantName    string  `csv:"restaurant_name"`
	CountryCode       int     `csv:"country_code"`
	City              string  `csv:"city"`
	Address           string  `csv:"address"`
	Locality          string  `csv:"locality"`
	LocalityVerbose   string  `csv:"locality_verbose"`
	Longitude         float64 `csv:"longitude"`
	Latitude          float64 `csv:"latitude"`
	Cuisines          string  `csv:"cuisines"`
	PriceRange        int     `csv:"price_range"`
	AverageCostForTwo int     `csv:"average_cost_for_two"`
	Currency          string  `csv:"currency"`
	HasTableBooking   Flag    `csv:"has_table_booking"`
	HasOnlineDelivery Flag    `csv:"has_online_delivery"`
	IsDeliveringNow   Flag    `csv:"is_delivering_now"`
	AggregateRating   float64 `csv:"aggregate_rating"`
	RatingColor       string  `csv:"rating_color"`
	RatingText        string  `csv:"rating_text"`
	Votes             int     `csv:"votes"`
}

// CanonicalRecord field order matches CanonicalColumns; the csv encoder
// relies on it.
type CanonicalRecord struct {
	RestaurantID      int64   `csv:"restaurant_id" json:"restaurant_id"`
	RestaurantName    string  `csv:"restaurant_name" json:"restaurant_name"`
	Country           string  `csv:"country" json:"country"`
	City              string  `csv:"city" json:"city"`
	Address           string  `csv:"address" json:"address"`
	Locality          string  `csv:"locality" json:"locality"`
	LocalityVerbose   string  `csv:"locality_verbose" json:"locality_verbose"`
	Longitude         float64 `csv:"longitude" json:"longitude"`
	Latitude          float64 `csv:"latitude" json:"latitude"`
	Cuisines          string  `csv:"cuisines" json:"cuisines"`
	PriceType         string  `csv:"price_type" json:"price_type"`
	AverageCostForTwo int     `csv:"average_cost_for_two" json:"average_cost_for_two"`
	Currency          string  `csv:"currency" json:"currency"`
	HasTableBooking   Flag    `csv:"has_table_booking" json:"has_table_booking"`
	HasOnlineDelivery Flag    `csv:"has_online_delivery" json:"has_online_delivery"`
	IsDeliveringNow   Flag    `csv:"is_delivering_now" json:"is_delivering_now"`
	AggregateRating   float64 `csv:"aggregate_rating" json:"aggregate_rating"`
	RatingColor       string  `csv:"rating_color" json:"rating_color"`
	ColorName         string  `csv:"color_name" json:"color_name"`
	RatingText        string  `csv:"rating_text" json:"rating_text"`
	Votes             int     `csv:"votes" json:"votes"`
}

type CleanStats struct {
	Read              int `json:"read"`
	DroppedMissing    int `json:"droppedMissing"`
	DroppedDuplicates int `json:"droppedDuplicates"`
	Kept              int `json:"kept"`
}

type Dataset struct {
	Checksum string
	Source   string
	Stats    CleanStats
	Records  []CanonicalRecord
}

type RunRow struct {
	ID        int
	TraceID   string
	Checksum  string
	Timings   map[string]float64
	Counts    map[string]int
	CreatedAt string
}
