package storageengine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/table"
)

// RowEngine stores each table as a table.Table (the same columnar layout
// ColumnEngine uses; rows are not laid out contiguously) plus a
// primary-key hash index (the first column of the schema is treated as
// the primary key), best for point lookups (spec §4.2). Like ColumnEngine it also implements the
// opaque Save/Load contract for content-addressed blobs.
type RowEngine struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	tables  map[string]*table.Table
	pkIndex map[string]map[string]int // table -> pk text -> row index
	metrics Metrics
}

// NewRowEngine creates an empty RowEngine.
func NewRowEngine() *RowEngine {
	return &RowEngine{
		blobs:   make(map[string][]byte),
		tables:  make(map[string]*table.Table),
		pkIndex: make(map[string]map[string]int),
	}
}

// PutTable registers a table and (re)builds its primary-key index over
// column 0.
func (r *RowEngine) PutTable(t *table.Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[t.Name] = t
	idx := make(map[string]int, t.RowCount())
	for row := 0; row < t.RowCount() && t.Schema.Arity() > 0; row++ {
		v, err := t.Get(row, 0)
		if err != nil {
			continue
		}
		idx[valueText(v)] = row
	}
	r.pkIndex[t.Name] = idx
}

func (r *RowEngine) Table(name string) (*table.Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[name]
	return t, ok
}

// TableNames lists every table currently registered.
func (r *RowEngine) TableNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	return names
}

// Lookup performs an O(1) primary-key point lookup, returning the whole
// row.
func (r *RowEngine) Lookup(tbl, pk string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[tbl]
	if !ok {
		return nil, fmt.Errorf("table %q: %w", tbl, dberr.NotFound)
	}
	idx, ok := r.pkIndex[tbl]
	if !ok {
		return nil, fmt.Errorf("table %q has no primary-key index: %w", tbl, dberr.Unsupported)
	}
	row, ok := idx[pk]
	if !ok {
		return nil, fmt.Errorf("primary key %q: %w", pk, dberr.NotFound)
	}
	values, err := t.Row(row)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = valueText(v)
	}
	return out, nil
}

func (r *RowEngine) Save(ctx context.Context, value []byte) (string, error) {
	start := time.Now()
	key := contentKey(value)
	r.mu.Lock()
	r.blobs[key] = append([]byte(nil), value...)
	r.mu.Unlock()
	r.recordWrite(time.Since(start))
	return key, nil
}

func (r *RowEngine) Load(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	r.mu.RLock()
	v, ok := r.blobs[key]
	r.mu.RUnlock()
	r.recordRead(time.Since(start))
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, dberr.NotFound)
	}
	return append([]byte(nil), v...), nil
}

// Query supports a "WHERE key = '...'" point lookup (the column must be
// written literally as key) against the named table's primary-key index,
// falling back to a full column projection like ColumnEngine.Query
// otherwise.
func (r *RowEngine) Query(ctx context.Context, sql string, alloc Allocator) ([]QueryValue, error) {
	tableName, ok := extractFromTable(sql)
	if !ok {
		return nil, fmt.Errorf("no source table found in query: %w", dberr.InvalidInput)
	}
	if key, ok := extractKeyFilter(sql); ok {
		row, err := r.Lookup(tableName, key)
		if err != nil {
			return nil, err
		}
		out := make([]QueryValue, len(row))
		for i, s := range row {
			out[i] = QueryValue{Text: s}
		}
		return out, nil
	}

	col, ok := extractSelectColumn(sql)
	if !ok {
		return nil, fmt.Errorf("no projected column found in query: %w", dberr.InvalidInput)
	}
	r.mu.RLock()
	t, ok := r.tables[tableName]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("table %q: %w", tableName, dberr.NotFound)
	}
	idx := t.Schema.FindColumn(col)
	if idx < 0 {
		return nil, fmt.Errorf("column %q: %w", col, dberr.NotFound)
	}
	out := make([]QueryValue, 0, t.RowCount())
	for row := 0; row < t.RowCount(); row++ {
		v, err := t.Get(row, idx)
		if err != nil {
			return nil, err
		}
		out = append(out, QueryValue{Text: valueText(v)})
	}
	return out, nil
}

func (r *RowEngine) Capabilities() Capabilities { return Capabilities(CapOLTP) }

func (r *RowEngine) Metrics() Metrics {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.metrics
}

func (r *RowEngine) Deinit() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs = nil
	r.tables = nil
	r.pkIndex = nil
	return nil
}

func (r *RowEngine) recordRead(d time.Duration) {
	r.mu.Lock()
	r.metrics.ReadLatencyMs = float64(d.Microseconds()) / 1000.0
	r.mu.Unlock()
}

func (r *RowEngine) recordWrite(d time.Duration) {
	r.mu.Lock()
	r.metrics.WriteLatencyMs = float64(d.Microseconds()) / 1000.0
	r.mu.Unlock()
}
