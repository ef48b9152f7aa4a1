package models

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"glcm-texture/internal/glcm"
)

// ErrEmptyBatch is returned when Append is called without rows.
var ErrEmptyBatch = errors.New("batch has no rows")

// Batch describes the rows appended by one computation.
type Batch struct {
	ID      uuid.UUID
	Source  string
	Start   int
	Count   int
	Created time.Time
}

// ResultsTable is the session-wide, append-only table of feature rows. The
// analyzer never touches it; callers append the rows it returns.
type ResultsTable struct {
	mu      sync.RWMutex
	rows    []glcm.FeatureRow
	batches []Batch
	now     func() time.Time
}

func NewResultsTable() *ResultsTable {
	return &ResultsTable{
		rows:    make([]glcm.FeatureRow, 0),
		batches: make([]Batch, 0),
		now:     time.Now,
	}
}

// Append adds rows as a single batch and returns its descriptor. Either all
// rows are added or none.
func (t *ResultsTable) Append(source string, rows []glcm.FeatureRow) (Batch, error) {
	if len(rows) == 0 {
		return Batch{}, ErrEmptyBatch
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	batch := Batch{
		ID:      uuid.New(),
		Source:  source,
		Start:   len(t.rows),
		Count:   len(rows),
		Created: t.now(),
	}
	t.rows = append(t.rows, rows...)
	t.batches = append(t.batches, batch)
	return batch, nil
}

// Len returns the number of rows.
func (t *ResultsTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Snapshot is a consistent copy of the table taken under a single lock.
type Snapshot struct {
	// Columns is the union of the numeric columns of Rows, in display order.
	Columns []string
	Rows    []glcm.FeatureRow
	Batches []Batch
}

// Snapshot copies the rows, batches and column union together, so a
// concurrent Append is either fully in it or not at all.
func (t *ResultsTable) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := Snapshot{
		Columns: columnsOf(t.rows),
		Rows:    make([]glcm.FeatureRow, len(t.rows)),
		Batches: make([]Batch, len(t.batches)),
	}
	copy(s.Rows, t.rows)
	copy(s.Batches, t.batches)
	return s
}

// BatchOf returns the batch that row i belongs to.
func (s Snapshot) BatchOf(i int) (Batch, bool) {
	// batches are contiguous and ordered by Start
	k := sort.Search(len(s.Batches), func(k int) bool {
		return s.Batches[k].Start+s.Batches[k].Count > i
	})
	if i < 0 || k == len(s.Batches) || i < s.Batches[k].Start {
		return Batch{}, false
	}
	return s.Batches[k], true
}

func columnsOf(rows []glcm.FeatureRow) []string {
	present := make(map[string]bool)
	for _, r := range rows {
		for _, c := range r.Columns() {
			present[c] = true
		}
	}

	cols := make([]string, 0, len(present))
	for _, c := range glcm.ColumnOrder() {
		if present[c] {
			cols = append(cols, c)
		}
	}
	return cols
}

// Reset clears the table, as at the start of a new session.
func (t *ResultsTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = make([]glcm.FeatureRow, 0)
	t.batches = make([]Batch, 0)
}
