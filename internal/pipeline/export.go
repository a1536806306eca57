package pipeline

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/jszwec/csvutil"
	"github.com/xuri/excelize/v2"

	"fomezero/internal"
)

// WriteCSV writes the header and records using comma as the delimiter.
func WriteCSV(w io.Writer, records []internal.CanonicalRecord, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	enc := csvutil.NewEncoder(cw)
	enc.AutoHeader = false
	if err := enc.EncodeHeader(internal.CanonicalRecord{}); err != nil {
		return err
	}
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile replaces path atomically, so concurrent writers leave one
// complete file behind.
func WriteCSVFile(path string, records []internal.CanonicalRecord, comma rune) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records, comma); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".data-*.csv")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadCanonicalCSV decodes a file previously produced by WriteCSV.
func ReadCanonicalCSV(r io.Reader, comma rune) ([]internal.CanonicalRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		return nil, &SchemaError{Err: err}
	}
	if header := dec.Header(); !slices.Equal(header, internal.CanonicalColumns) {
		return nil, &SchemaError{Err: fmt.Errorf("unexpected canonical header %v", header)}
	}

	var out []internal.CanonicalRecord
	for {
		var rec internal.CanonicalRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &SchemaError{Line: len(out) + 2, Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}

const (
	recordsSheet = "restaurants"
	statsSheet   = "summary"
)

func ExportXLSX(ds internal.Dataset, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), recordsSheet); err != nil {
		return err
	}

	for i, h := range internal.CanonicalColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(recordsSheet, cell, h)
	}

	for i, rec := range ds.Records {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(recordsSheet, cell, value)
		}

		set(1, rec.RestaurantID)
		set(2, rec.RestaurantName)
		set(3, rec.Country)
		set(4, rec.City)
		set(5, rec.Address)
		set(6, rec.Locality)
		set(7, rec.LocalityVerbose)
		set(8, rec.Longitude)
		set(9, rec.Latitude)
		set(10, rec.Cuisines)
		set(11, rec.PriceType)
		set(12, rec.AverageCostForTwo)
		set(13, rec.Currency)
		set(14, flagInt(rec.HasTableBooking))
		set(15, flagInt(rec.HasOnlineDelivery))
		set(16, flagInt(rec.IsDeliveringNow))
		set(17, rec.AggregateRating)
		set(18, rec.RatingColor)
		set(19, rec.ColorName)
		set(20, rec.RatingText)
		set(21, rec.Votes)
	}

	if _, err := f.NewSheet(statsSheet); err != nil {
		return err
	}
	summary := [][]any{
		{"checksum", ds.Checksum},
		{"source", ds.Source},
		{"rows_read", ds.Stats.Read},
		{"dropped_missing", ds.Stats.DroppedMissing},
		{"dropped_duplicates", ds.Stats.DroppedDuplicates},
		{"rows_kept", ds.Stats.Kept},
	}
	for i, row := range summary {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			_ = f.SetCellValue(statsSheet, cell, v)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func flagInt(v internal.Flag) int {
	if v {
		return 1
	}
	return 0
}
