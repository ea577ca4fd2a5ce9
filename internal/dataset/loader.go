package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hvac_advisor/internal/model"
)

// DataFormatError reports a training file that cannot be turned into a
// usable table. It is fatal at startup; there is no retry.
type DataFormatError struct {
	Reason string
}

func (e *DataFormatError) Error() string {
	return "data format: " + e.Reason
}

// headerRe extracts "index:name" column declarations from the first line.
var headerRe = regexp.MustCompile(`\d+:(\S+)`)

const (
	dateColumn = "Date"
	timeColumn = "Time"
	dateLayout = "02/01/2006 15:04"
)

// Parser reads an SML2010-style whitespace-delimited time series export.
// The first line encodes column names as "index:name" pairs; the remaining
// lines carry one record each with Date and Time columns plus numeric
// sensor columns.
type Parser struct{}

// Parse builds the training table: the four required feature columns with
// a combined timestamp, plus the derived TFuture15/Delta15 targets. Rows
// with missing or non-numeric required values are dropped, as is the final
// row (its future value is undefined).
func (p *Parser) Parse(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, &DataFormatError{Reason: "empty input"}
	}
	names := headerColumns(scanner.Text())
	if len(names) == 0 {
		return nil, &DataFormatError{Reason: "header line has no index:name column declarations"}
	}

	cols, err := requiredColumns(names)
	if err != nil {
		return nil, err
	}

	var samples []model.Sample
	for scanner.Scan() {
		sample, ok := parseRecord(scanner.Text(), len(names), cols)
		if !ok {
			continue
		}
		samples = append(samples, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	// Predict-next-step semantics: row i's target is row i+1's indoor
	// temperature, so the last sample has no target and is dropped.
	rows := make([]model.Row, 0, max(len(samples)-1, 0))
	for i := 0; i+1 < len(samples); i++ {
		future := samples[i+1].IndoorTemp
		rows = append(rows, model.Row{
			Sample:    samples[i],
			TFuture15: future,
			Delta15:   future - samples[i].IndoorTemp,
		})
	}
	if len(rows) < 2 {
		return nil, &DataFormatError{Reason: fmt.Sprintf("only %d usable rows after cleaning, need at least 2", len(rows))}
	}

	return &Table{rows: rows}, nil
}

// LoadFile opens path and parses it into a table.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var p Parser
	t, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// headerColumns parses the header-encoding line into ordered column names.
func headerColumns(line string) []string {
	matches := headerRe.FindAllStringSubmatch(line, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// columnIndexes locates the Date, Time and feature columns by position.
type columnIndexes struct {
	date, clock int
	feature     map[model.Feature]int
}

func requiredColumns(names []string) (columnIndexes, error) {
	cols := columnIndexes{date: -1, clock: -1, feature: make(map[model.Feature]int, len(model.FeatureColumn))}
	for i, name := range names {
		switch name {
		case dateColumn:
			cols.date = i
		case timeColumn:
			cols.clock = i
		default:
			if f, ok := model.ColumnFeature[name]; ok {
				cols.feature[f] = i
			}
		}
	}

	if cols.date < 0 || cols.clock < 0 {
		return cols, &DataFormatError{Reason: "header is missing Date/Time columns"}
	}
	for f, col := range model.FeatureColumn {
		if _, ok := cols.feature[f]; !ok {
			return cols, &DataFormatError{Reason: "header is missing column " + col}
		}
	}
	return cols, nil
}

// parseRecord turns one data line into a sample. ok is false when the line
// is short or any required value does not parse as a number.
func parseRecord(line string, nColumns int, cols columnIndexes) (model.Sample, bool) {
	fields := strings.Fields(line)
	if len(fields) < nColumns {
		return model.Sample{}, false
	}

	ts, err := time.Parse(dateLayout, fields[cols.date]+" "+fields[cols.clock])
	if err != nil {
		return model.Sample{}, false
	}

	values := make(map[model.Feature]float64, len(cols.feature))
	for f, i := range cols.feature {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return model.Sample{}, false
		}
		values[f] = v
	}

	return model.Sample{
		Timestamp:   ts,
		IndoorTemp:  values[model.FeatureIndoorTemp],
		OutdoorTemp: values[model.FeatureOutdoorTemp],
		CO2:         values[model.FeatureCO2],
		Lighting:    values[model.FeatureLighting],
	}, true
}
