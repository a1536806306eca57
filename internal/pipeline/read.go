package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"

	"fomezero/internal"
)

// missingValues are the cell contents treated as absent, the same set
// spreadsheet-style CSV readers use.
var missingValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// SchemaError reports input that does not fit the raw restaurant schema.
type SchemaError struct {
	Line    int
	Missing []string
	Err     error
}

func (e *SchemaError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("schema: missing required columns: %s", strings.Join(e.Missing, ", "))
	case e.Line > 0:
		return fmt.Sprintf("schema: line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("schema: %v", e.Err)
	}
}

func (e *SchemaError) Unwrap() error { return e.Err }

type rawRow struct {
	Line   int
	Record internal.RawRecord
}

// recordSource feeds pre-read records to csvutil.
type recordSource struct {
	rows [][]string
	pos  int
}

func (s *recordSource) Read() ([]string, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

// readRaw parses the raw CSV, drops rows holding any missing cell and
// decodes the rest. It returns the surviving rows in source order.
func readRaw(r io.Reader) ([]rawRow, int, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, &SchemaError{Err: errors.New("empty input")}
	}
	if err != nil {
		return nil, 0, &SchemaError{Line: 1, Err: err}
	}
	header = RenameColumns(header)

	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	var missing []string
	for _, name := range internal.RequiredRawColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, 0, &SchemaError{Missing: missing}
	}

	var kept [][]string
	var lines []int
	read := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, 0, &SchemaError{Line: parseErr.Line, Err: parseErr.Err}
			}
			return nil, 0, &SchemaError{Err: err}
		}
		read++
		line, _ := cr.FieldPos(0)
		if hasMissing(record) {
			continue
		}
		kept = append(kept, record)
		lines = append(lines, line)
	}

	dec, err := csvutil.NewDecoder(&recordSource{rows: kept}, header...)
	if err != nil {
		return nil, 0, &SchemaError{Err: err}
	}

	out := make([]rawRow, 0, len(kept))
	for i := range kept {
		var rec internal.RawRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, 0, &SchemaError{Line: lines[i], Err: err}
		}
		out = append(out, rawRow{Line: lines[i], Record: rec})
	}

	return out, read, nil
}

func hasMissing(record []string) bool {
	for _, cell := range record {
		if _, ok := missingValues[cell]; ok {
			return true
		}
	}
	return false
}
