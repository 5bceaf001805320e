package storageengine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/columndb/columndb/internal/dberr"
)

// MemoryEngine is a row-oriented hash map of key -> bytes, with no
// compression. Best for OLTP and small working sets (spec §4.2). The key
// is the content hash of the saved bytes, following the teacher's
// content-addressed-by-default style (cf. the audit chain's own hashing).
type MemoryEngine struct {
	mu      sync.RWMutex
	data    map[string][]byte
	metrics Metrics
}

// NewMemoryEngine creates an empty MemoryEngine.
func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{data: make(map[string][]byte)}
}

func contentKey(value []byte) string {
	sum := sha256.Sum256(value)
	return hex.EncodeToString(sum[:])
}

func (m *MemoryEngine) Save(ctx context.Context, value []byte) (string, error) {
	start := time.Now()
	key := contentKey(value)
	stored := append([]byte(nil), value...)

	m.mu.Lock()
	m.data[key] = stored
	m.mu.Unlock()

	m.recordWrite(time.Since(start))
	return key, nil
}

func (m *MemoryEngine) Load(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()

	m.mu.RLock()
	value, ok := m.data[key]
	m.mu.RUnlock()

	m.recordRead(time.Since(start))
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, dberr.NotFound)
	}
	return append([]byte(nil), value...), nil
}

// Query evaluates a best-effort "SELECT key FROM store WHERE key='...'"
// shaped SQL string by returning the single matching key's value as text,
// or every key if no WHERE-key filter is found — a simplified projection,
// per spec §4.2, not a query planner.
func (m *MemoryEngine) Query(ctx context.Context, sql string, alloc Allocator) ([]QueryValue, error) {
	if key, ok := extractKeyFilter(sql); ok {
		v, err := m.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		return []QueryValue{{Text: string(v)}}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]QueryValue, 0, len(m.data))
	for _, v := range m.data {
		out = append(out, QueryValue{Text: string(v)})
	}
	return out, nil
}

func (m *MemoryEngine) Capabilities() Capabilities { return Capabilities(CapOLTP) }

func (m *MemoryEngine) Metrics() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metrics
}

func (m *MemoryEngine) Deinit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

func (m *MemoryEngine) recordRead(d time.Duration) {
	m.mu.Lock()
	m.metrics.ReadLatencyMs = float64(d.Microseconds()) / 1000.0
	m.mu.Unlock()
}

func (m *MemoryEngine) recordWrite(d time.Duration) {
	m.mu.Lock()
	m.metrics.WriteLatencyMs = float64(d.Microseconds()) / 1000.0
	m.mu.Unlock()
}
