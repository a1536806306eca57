package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"fomezero/internal"
)

type Result struct {
	Records []internal.CanonicalRecord
	Stats   internal.CleanStats
}

// Clean reads the raw CSV at rawPath, normalizes it and, when outPath is
// set, writes the canonical table there. Nothing is written on failure.
func Clean(rawPath, outPath string) (Result, error) {
	f, err := os.Open(rawPath)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	res, err := CleanReader(f)
	if err != nil {
		return Result{}, fmt.Errorf("clean %s: %w", rawPath, err)
	}

	if outPath != "" {
		if err := WriteCSVFile(outPath, res.Records, ','); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

func CleanReader(r io.Reader) (Result, error) {
	rows, read, err := readRaw(r)
	if err != nil {
		return Result{}, err
	}

	stats := internal.CleanStats{Read: read, DroppedMissing: read - len(rows)}
	if stats.DroppedMissing > 0 {
		log.Printf("pipeline: dropped %d of %d rows with missing values", stats.DroppedMissing, read)
	}

	seen := make(map[internal.RawRecord]struct{}, len(rows))
	out := make([]internal.CanonicalRecord, 0, len(rows))
	for _, row := range rows {
		raw := row.Record
		raw.Cuisines = PrimaryCuisine(raw.Cuisines)

		rec, err := canonicalize(raw)
		if err != nil {
			var lookupErr *LookupError
			if errors.As(err, &lookupErr) {
				lookupErr.Line = row.Line
			}
			return Result{}, err
		}

		if _, dup := seen[raw]; dup {
			stats.DroppedDuplicates++
			continue
		}
		seen[raw] = struct{}{}
		out = append(out, rec)
	}

	stats.Kept = len(out)
	return Result{Records: out, Stats: stats}, nil
}

func canonicalize(raw internal.RawRecord) (internal.CanonicalRecord, error) {
	country, err := LookupCountry(raw.CountryCode)
	if err != nil {
		return internal.CanonicalRecord{}, err
	}
	colorName, err := LookupColorName(raw.RatingColor)
	if err != nil {
		return internal.CanonicalRecord{}, err
	}

	return internal.CanonicalRecord{
		RestaurantID:      raw.RestaurantID,
		RestaurantName:    raw.RestaurantName,
		Country:           country,
		City:              raw.City,
		Address:           raw.Address,
		Locality:          raw.Locality,
		LocalityVerbose:   raw.LocalityVerbose,
		Longitude:         raw.Longitude,
		Latitude:          raw.Latitude,
		Cuisines:          raw.Cuisines,
		PriceType:         ClassifyPrice(raw.PriceRange),
		AverageCostForTwo: raw.AverageCostForTwo,
		Currency:          raw.Currency,
		HasTableBooking:   raw.HasTableBooking,
		HasOnlineDelivery: raw.HasOnlineDelivery,
		IsDeliveringNow:   raw.IsDeliveringNow,
		AggregateRating:   raw.AggregateRating,
		RatingColor:       raw.RatingColor,
		ColorName:         colorName,
		RatingText:        raw.RatingText,
		Votes:             raw.Votes,
	}, nil
}
