package dataset

import "hvac_advisor/internal/model"

// Table is the cleaned, ordered training table. Read-only after
// construction.
type Table struct {
	rows []model.Row
}

// NewTable wraps rows for tests and synthetic calibration data.
func NewTable(rows []model.Row) *Table {
	return &Table{rows: rows}
}

// Rows returns the underlying rows. Callers must not mutate them.
func (t *Table) Rows() []model.Row {
	return t.rows
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Split partitions the table into leading train and trailing test rows in
// original time order, no shuffling. trainFrac is clamped so both slices
// of a 2+ row table are usable.
func (t *Table) Split(trainFrac float64) (train, test []model.Row) {
	n := int(float64(len(t.rows)) * trainFrac)
	if n < 1 {
		n = 1
	}
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return t.rows[:n], t.rows[n:]
}

// Column extracts one feature column across all rows.
func (t *Table) Column(f model.Feature) []float64 {
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Feature(f)
	}
	return out
}

// Deltas extracts the Delta15 target column.
func (t *Table) Deltas() []float64 {
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Delta15
	}
	return out
}

// TimeRange returns the covered time span, ok=false for an empty table.
func (t *Table) TimeRange() (model.TimeRange, bool) {
	if len(t.rows) == 0 {
		return model.TimeRange{}, false
	}
	return model.TimeRange{
		Start: t.rows[0].Timestamp,
		End:   t.rows[len(t.rows)-1].Timestamp,
	}, true
}
