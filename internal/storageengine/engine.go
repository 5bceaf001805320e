// Package storageengine defines the polymorphic storage-backend contract
// (spec §4.2) and its concrete implementations. Every backend exposes the
// same six operations and the same error taxonomy (internal/dberr),
// letting heterogeneous backends coexist behind one interface — the
// "virtual dispatch over backends" design note in spec §9, expressed as a
// Go interface rather than a vtable, with no inheritance implied.
package storageengine

import "context"

// Capability is one bit of the capability bitset a backend advertises.
type Capability int

const (
	CapOLAP Capability = 1 << iota
	CapOLTP
	CapGraph
	CapBlockchain
)

// Capabilities is the bitset returned by Engine.Capabilities.
type Capabilities int

// Has reports whether the bitset includes cap.
func (c Capabilities) Has(cap Capability) bool { return Capabilities(cap)&c != 0 }

// Metrics is the most-recently observed performance snapshot a backend
// reports (spec §4.2 "metrics").
type Metrics struct {
	ReadLatencyMs   float64
	WriteLatencyMs  float64
	CompressionRatio float64
	ThroughputMbps  float64
}

// Kind names a concrete backend implementation, used by the selector and
// migration engine to name a target without referencing its type.
type Kind string

const (
	KindMemory Kind = "memory"
	KindColumn Kind = "column"
	KindRow    Kind = "row"
	KindGraph  Kind = "graph"
	KindAudit  Kind = "audit"
)

// Engine is the storage-backend contract every concrete backend satisfies.
// Query returns a materialized column of results — a simplified
// projection, not a general result set, per spec §4.2.
type Engine interface {
	Save(ctx context.Context, value []byte) (key string, err error)
	Load(ctx context.Context, key string) ([]byte, error)
	Query(ctx context.Context, sql string, alloc Allocator) ([]QueryValue, error)
	Capabilities() Capabilities
	Metrics() Metrics
	Deinit() error
}

// QueryValue is the materialized result of a Query call. It is kept
// independent of internal/types.Value so this package doesn't force
// every backend to depend on the full value model for trivial byte-blob
// backends (memory/audit); backends that hold typed tables (column/row)
// convert from types.Value when building QueryValue.
type QueryValue struct {
	Text string
}

// Allocator is the narrow allocator contract Query results are built
// through, per the spec's "allocators are passed in explicitly; no
// process-wide globals" resource policy (§5). A *SimpleAllocator is
// enough for every in-tree backend; it exists mainly so callers from
// outside this package (e.g. cmd/columndb) can pass their own.
type Allocator interface {
	Alloc(n int) []byte
}

// SimpleAllocator is the default Allocator: plain heap allocation.
type SimpleAllocator struct{}

func (SimpleAllocator) Alloc(n int) []byte { return make([]byte, n) }
