package pipeline

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"fomezero/internal"
)

func TestCleanFixture(t *testing.T) {
	tmp := t.TempDir()
	raw := writeFixture(t, tmp)
	out := filepath.Join(tmp, "processed", "data.csv")

	res, err := Clean(raw, out)
	if err != nil {
		t.Fatal(err)
	}

	wantStats := internal.CleanStats{Read: 7, DroppedMissing: 1, DroppedDuplicates: 2, Kept: 4}
	if res.Stats != wantStats {
		t.Fatalf("stats=%+v want %+v", res.Stats, wantStats)
	}

	var names []string
	for _, rec := range res.Records {
		names = append(names, rec.RestaurantName)
	}
	if got := strings.Join(names, "|"); got != "Cantinho da Gula|Chili's|Pizza Den|The Old Pub" {
		t.Fatalf("order=%s", got)
	}

	first := res.Records[0]
	if first.Country != "Brazil" || first.ColorName != "darkgreen" || first.PriceType != "cheap" || first.Cuisines != "Italian" {
		t.Fatalf("unexpected canonical row: %+v", first)
	}
	if !res.Records[1].HasTableBooking || res.Records[1].IsDeliveringNow {
		t.Fatalf("flags not decoded: %+v", res.Records[1])
	}
	if res.Records[2].PriceType != "gourmet" || res.Records[3].ColorName != "darkred" {
		t.Fatalf("unexpected derived fields: %+v %+v", res.Records[2], res.Records[3])
	}
}

func TestCleanOutputSchema(t *testing.T) {
	tmp := t.TempDir()
	raw := writeFixture(t, tmp)
	out := filepath.Join(tmp, "data.csv")

	res, err := Clean(raw, out)
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	header, err := bufio.NewReader(f).ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(header) != strings.Join(internal.CanonicalColumns, ",") {
		t.Fatalf("header=%q", header)
	}
	if len(internal.CanonicalColumns) != 21 {
		t.Fatalf("canonical columns=%d", len(internal.CanonicalColumns))
	}

	if _, err := f.Seek(0, 0); err != nil {
		t.Fatal(err)
	}
	persisted, err := ReadCanonicalCSV(f, ',')
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(persisted, res.Records) {
		t.Fatalf("persisted rows differ:\n got %+v\nwant %+v", persisted, res.Records)
	}

	seen := map[internal.CanonicalRecord]bool{}
	for _, rec := range persisted {
		if seen[rec] {
			t.Fatalf("duplicate row %+v", rec)
		}
		seen[rec] = true
		for _, v := range []string{rec.RestaurantName, rec.Country, rec.City, rec.Address, rec.Cuisines, rec.PriceType, rec.Currency, rec.ColorName, rec.RatingText} {
			if v == "" {
				t.Fatalf("empty required field in %+v", rec)
			}
		}
	}
}

func TestCleanUnknownCountryFails(t *testing.T) {
	tmp := t.TempDir()
	rows := fixtureRows()
	rows[0][2] = "999"
	raw := writeRaw(t, tmp, rawHeader, rows)

	out := filepath.Join(tmp, "data.csv")
	if err := os.WriteFile(out, []byte("previous\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Clean(raw, out)
	if err == nil {
		t.Fatal("expected lookup error")
	}
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *LookupError, got %T: %v", err, err)
	}
	if lookupErr.Field != "country_code" || lookupErr.Value != "999" || lookupErr.Line != 2 {
		t.Fatalf("lookup error=%+v", lookupErr)
	}

	blob, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(blob) != "previous\n" {
		t.Fatalf("derived file overwritten after failure: %q", blob)
	}
}

func TestCleanUnknownColorFails(t *testing.T) {
	rows := fixtureRows()
	rows[6][18] = "ABCDEF"
	raw := writeRaw(t, t.TempDir(), rawHeader, rows)

	_, err := Clean(raw, "")
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) || lookupErr.Field != "rating_color" || lookupErr.Line != 8 {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCleanDropsRowWithMissingValue(t *testing.T) {
	base, err := Clean(writeFixture(t, t.TempDir()), "")
	if err != nil {
		t.Fatal(err)
	}

	for _, blank := range []string{"", "NaN", "NA"} {
		rows := fixtureRows()
		rows[6][3] = blank
		res, err := Clean(writeRaw(t, t.TempDir(), rawHeader, rows), "")
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Records) != len(base.Records)-1 {
			t.Fatalf("blank=%q: kept %d, base %d", blank, len(res.Records), len(base.Records))
		}
		if res.Stats.DroppedMissing != base.Stats.DroppedMissing+1 {
			t.Fatalf("blank=%q: stats=%+v", blank, res.Stats)
		}
	}
}

func TestCleanMissingColumn(t *testing.T) {
	header := rawHeader[:len(rawHeader)-1]
	rows := fixtureRows()
	for i := range rows {
		rows[i] = rows[i][:len(rows[i])-1]
	}

	_, err := Clean(writeRaw(t, t.TempDir(), header, rows), "")
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if len(schemaErr.Missing) != 1 || schemaErr.Missing[0] != "votes" {
		t.Fatalf("missing=%v", schemaErr.Missing)
	}
}

func TestCleanUnparseableValue(t *testing.T) {
	cases := map[string]struct {
		col   int
		value string
	}{
		"votes": {col: 20, value: "many"},
		"flag":  {col: 12, value: "maybe"},
		"tier":  {col: 16, value: "cheap"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rows := fixtureRows()
			rows[1][tc.col] = tc.value

			_, err := Clean(writeRaw(t, t.TempDir(), rawHeader, rows), "")
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
			if schemaErr.Line != 3 {
				t.Fatalf("line=%d", schemaErr.Line)
			}
		})
	}
}

func TestCleanReaderEmptyInput(t *testing.T) {
	_, err := CleanReader(strings.NewReader(""))
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
}

func TestCleanAcceptsSnakeCaseHeader(t *testing.T) {
	header := RenameColumns(rawHeader)
	res, err := Clean(writeRaw(t, t.TempDir(), header, fixtureRows()), "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Kept != 4 {
		t.Fatalf("kept=%d", res.Stats.Kept)
	}
}
