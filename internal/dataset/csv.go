package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"covidboard/internal/dataset/models"
	dErrors "covidboard/pkg/domain-errors"
)

// Schema names the fixed column layouts the upstream CSV drops arrive in.
type Schema string

const (
	// SchemaDayWise: one global row per date with cumulative and daily counts.
	SchemaDayWise Schema = "daywise"
	// SchemaRegionLatest: one row per region, a single snapshot date.
	SchemaRegionLatest Schema = "regionlatest"
	// SchemaTimeSeries: wide form, one confirmed-count column per date.
	SchemaTimeSeries Schema = "timeseries"
)

// ParseSchema validates a schema name from configuration.
func ParseSchema(s string) (Schema, error) {
	switch Schema(strings.ToLower(s)) {
	case SchemaDayWise:
		return SchemaDayWise, nil
	case SchemaRegionLatest:
		return SchemaRegionLatest, nil
	case SchemaTimeSeries:
		return SchemaTimeSeries, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown dataset schema %q", s)
}

// dateLayouts covers the formats seen across the upstream drops: ISO in the
// day-wise file, US short dates in the time-series headers.
var dateLayouts = []string{"2006-01-02", "1/2/06", "1/2/2006"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return models.Day(t), true
		}
	}
	return time.Time{}, false
}

// header maps column names to positions, case-insensitively. Unknown columns
// are ignored so upstream adding ratio columns does not break ingestion.
type header map[string]int

func newHeader(record []string) header {
	h := make(header, len(record))
	for i, name := range record {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h
}

func (h header) field(record []string, name string) (string, bool) {
	i, ok := h[name]
	if !ok || i >= len(record) {
		return "", false
	}
	return strings.TrimSpace(record[i]), true
}

// count parses an optional numeric column; missing or empty cells read as
// zero, garbage is an error. Some upstream drops write counts as floats.
func (h header) count(record []string, name string, row int) (int64, error) {
	s, ok := h.field(record, name)
	if !ok || s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeValidation, "row %d: column %q: malformed count %q", row, name, s)
	}
	return int64(f), nil
}

func (h header) require(names ...string) error {
	for _, name := range names {
		if _, ok := h[name]; !ok {
			return dErrors.Newf(dErrors.CodeValidation, "missing required column %q", name)
		}
	}
	return nil
}

// DecodeDayWise reads the day-wise global CSV (Date, Confirmed, Deaths,
// Recovered, Active, New cases, ...) into observations under the synthetic
// global region.
func DecodeDayWise(r io.Reader) ([]models.Observation, error) {
	records, h, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if err := h.require("date", "confirmed"); err != nil {
		return nil, err
	}

	out := make([]models.Observation, 0, len(records))
	for i, record := range records {
		row := i + 2 // 1-based, after header
		raw, _ := h.field(record, "date")
		date, ok := parseDate(raw)
		if !ok {
			return nil, dErrors.Newf(dErrors.CodeValidation, "row %d: column %q: malformed date %q", row, "date", raw)
		}
		obs := models.Observation{Region: models.GlobalRegion, Date: date}
		if obs.Confirmed, err = h.count(record, "confirmed", row); err != nil {
			return nil, err
		}
		if obs.Deaths, err = h.count(record, "deaths", row); err != nil {
			return nil, err
		}
		if obs.Recovered, err = h.count(record, "recovered", row); err != nil {
			return nil, err
		}
		if obs.Active, err = h.count(record, "active", row); err != nil {
			return nil, err
		}
		if obs.NewCases, err = h.count(record, "new cases", row); err != nil {
			return nil, err
		}
		out = append(out, obs)
	}
	return out, nil
}

// DecodeRegionLatest reads the per-region snapshot CSV (Country/Region,
// Confirmed, Deaths, Recovered, Active, ...). The file carries no date column,
// so every row is stamped with asOf.
func DecodeRegionLatest(r io.Reader, asOf time.Time) ([]models.Observation, error) {
	records, h, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if err := h.require("country/region", "confirmed"); err != nil {
		return nil, err
	}

	date := models.Day(asOf)
	out := make([]models.Observation, 0, len(records))
	for i, record := range records {
		row := i + 2
		region, _ := h.field(record, "country/region")
		if region == "" {
			return nil, dErrors.Newf(dErrors.CodeValidation, "row %d: column %q: empty region", row, "country/region")
		}
		obs := models.Observation{Region: region, Date: date}
		if obs.Confirmed, err = h.count(record, "confirmed", row); err != nil {
			return nil, err
		}
		if obs.Deaths, err = h.count(record, "deaths", row); err != nil {
			return nil, err
		}
		if obs.Recovered, err = h.count(record, "recovered", row); err != nil {
			return nil, err
		}
		if obs.Active, err = h.count(record, "active", row); err != nil {
			return nil, err
		}
		if obs.NewCases, err = h.count(record, "new cases", row); err != nil {
			return nil, err
		}
		out = append(out, obs)
	}
	return out, nil
}

// DecodeTimeSeries reads the wide time-series CSV (Province/State,
// Country/Region, Lat, Long, then one cumulative-confirmed column per date).
// The caller melts and aggregates the result.
func DecodeTimeSeries(r io.Reader) (WideTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		return WideTable{}, dErrors.Wrap(err, dErrors.CodeValidation, "read time-series header")
	}
	h := newHeader(head)
	if err := h.require("country/region"); err != nil {
		return WideTable{}, err
	}
	regionCol := h["country/region"]

	// Every parseable-date header is a value column; Lat/Long and the region
	// labels are not.
	var table WideTable
	var valueCols []int
	for i, name := range head {
		if date, ok := parseDate(name); ok {
			table.Dates = append(table.Dates, date)
			valueCols = append(valueCols, i)
		}
	}
	if len(valueCols) == 0 {
		return WideTable{}, dErrors.New(dErrors.CodeValidation, "time-series file has no date columns")
	}

	row := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return WideTable{}, dErrors.Wrap(err, dErrors.CodeValidation, "read time-series rows")
		}
		if regionCol >= len(record) {
			return WideTable{}, dErrors.Newf(dErrors.CodeValidation, "row %d: missing region column", row)
		}
		wr := WideRow{
			Region: strings.TrimSpace(record[regionCol]),
			Values: make([]int64, 0, len(valueCols)),
		}
		if wr.Region == "" {
			return WideTable{}, dErrors.Newf(dErrors.CodeValidation, "row %d: empty region", row)
		}
		for _, col := range valueCols {
			if col >= len(record) {
				break
			}
			s := strings.TrimSpace(record[col])
			if s == "" {
				wr.Values = append(wr.Values, 0)
				continue
			}
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return WideTable{}, dErrors.Newf(dErrors.CodeValidation, "row %d: column %q: malformed count %q", row, head[col], s)
			}
			wr.Values = append(wr.Values, n)
		}
		table.Rows = append(table.Rows, wr)
	}
	return table, nil
}

func readAll(r io.Reader) ([][]string, header, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeValidation, "read CSV header")
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeValidation, "read CSV rows")
	}
	return records, newHeader(head), nil
}
