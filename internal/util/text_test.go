package util

import "testing"

func TestSnakeColumn(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "Restaurant ID", want: "restaurant_id"},
		{input: "Restaurant Name", want: "restaurant_name"},
		{input: "Country Code", want: "country_code"},
		{input: "Locality Verbose", want: "locality_verbose"},
		{input: "Price range", want: "price_range"},
		{input: "Average Cost for two", want: "average_cost_for_two"},
		{input: "Has Table booking", want: "has_table_booking"},
		{input: "Is delivering now", want: "is_delivering_now"},
		{input: "Aggregate rating", want: "aggregate_rating"},
		{input: "Votes", want: "votes"},
		{input: "restaurant_id", want: "restaurant_id"},
		{input: "AggregateRating", want: "aggregate_rating"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got := SnakeColumn(tc.input)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
			if again := SnakeColumn(got); again != got {
				t.Fatalf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestFormatThousands(t *testing.T) {
	cases := []struct {
		input int64
		want  string
	}{
		{input: 0, want: "0"},
		{input: 999, want: "999"},
		{input: 1000, want: "1.000"},
		{input: 4194533, want: "4.194.533"},
		{input: -25000, want: "-25.000"},
	}
	for _, tc := range cases {
		if got := FormatThousands(tc.input, "."); got != tc.want {
			t.Fatalf("FormatThousands(%d)=%q want %q", tc.input, got, tc.want)
		}
	}
}

func TestRound(t *testing.T) {
	if got := Round(2.25, 1); got != 2.2 {
		t.Fatalf("half-even expected 2.2, got %v", got)
	}
	if got := Round(1234.5678, 2); got != 1234.57 {
		t.Fatalf("got %v", got)
	}
}
