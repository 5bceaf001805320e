package storageengine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/types"
)

// EdgeDirection filters candidate edges from a graph pattern match
// (spec §4.4).
type EdgeDirection int

const (
	DirOutgoing EdgeDirection = iota
	DirIncoming
	DirBidirectional
)

// NodeHandle is an integer handle into the GraphEngine's node arena —
// spec §9's "arena-allocated node store with integer handles rather than
// owning pointers" design note, which sidesteps cycles in the ownership
// graph entirely.
type NodeHandle int

// Node is a property-graph vertex (spec §3 "GraphNode").
type Node struct {
	ID         NodeHandle
	Labels     []string
	Properties map[string]types.Value
}

// Edge is a typed, directed relationship between two nodes.
type Edge struct {
	From NodeHandle
	To   NodeHandle
	Type string
}

// GraphEngine stores nodes and edges as adjacency lists over an
// arena-allocated node store (spec §4.2 "Graph store").
type GraphEngine struct {
	mu      sync.RWMutex
	nodes   []Node
	out     map[NodeHandle][]Edge
	in      map[NodeHandle][]Edge
	blobs   map[string][]byte
	metrics Metrics
}

// NewGraphEngine creates an empty graph.
func NewGraphEngine() *GraphEngine {
	return &GraphEngine{
		out:   make(map[NodeHandle][]Edge),
		in:    make(map[NodeHandle][]Edge),
		blobs: make(map[string][]byte),
	}
}

// AddNode appends a new node and returns its handle.
func (g *GraphEngine) AddNode(labels []string, props map[string]types.Value) NodeHandle {
	g.mu.Lock()
	defer g.mu.Unlock()
	h := NodeHandle(len(g.nodes))
	g.nodes = append(g.nodes, Node{ID: h, Labels: append([]string(nil), labels...), Properties: props})
	return h
}

// AddEdge records a typed directed edge between two existing handles.
func (g *GraphEngine) AddEdge(from, to NodeHandle, typ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if int(from) >= len(g.nodes) || int(to) >= len(g.nodes) || from < 0 || to < 0 {
		return fmt.Errorf("edge endpoint out of range: %w", dberr.OutOfRange)
	}
	e := Edge{From: from, To: to, Type: typ}
	g.out[from] = append(g.out[from], e)
	g.in[to] = append(g.in[to], e)
	return nil
}

// Node returns a copy of the node at handle h.
func (g *GraphEngine) Node(h NodeHandle) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if int(h) < 0 || int(h) >= len(g.nodes) {
		return Node{}, fmt.Errorf("node %d: %w", h, dberr.OutOfRange)
	}
	return g.nodes[h], nil
}

// Nodes returns a defensive copy of every node currently stored.
func (g *GraphEngine) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// EdgesFrom/EdgesTo expose the adjacency lists the matcher walks.
func (g *GraphEngine) EdgesFrom(h NodeHandle) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Edge(nil), g.out[h]...)
}

func (g *GraphEngine) EdgesTo(h NodeHandle) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Edge(nil), g.in[h]...)
}

func (g *GraphEngine) Save(ctx context.Context, value []byte) (string, error) {
	start := time.Now()
	key := contentKey(value)
	g.mu.Lock()
	g.blobs[key] = append([]byte(nil), value...)
	g.mu.Unlock()
	g.recordWrite(time.Since(start))
	return key, nil
}

func (g *GraphEngine) Load(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	g.mu.RLock()
	v, ok := g.blobs[key]
	g.mu.RUnlock()
	g.recordRead(time.Since(start))
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, dberr.NotFound)
	}
	return append([]byte(nil), v...), nil
}

// Query on a graph engine always returns Unsupported, whatever the
// statement; Cypher-subset MATCH patterns run through
// internal/graphquery.Match instead (spec §4.4: "only MATCH… other verbs
// surface NotImplemented").
func (g *GraphEngine) Query(ctx context.Context, sql string, alloc Allocator) ([]QueryValue, error) {
	return nil, fmt.Errorf("graph backend requires internal/graphquery.Match for MATCH patterns: %w", dberr.Unsupported)
}

func (g *GraphEngine) Capabilities() Capabilities { return Capabilities(CapGraph) }

func (g *GraphEngine) Metrics() Metrics {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.metrics
}

func (g *GraphEngine) Deinit() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = nil
	g.out = nil
	g.in = nil
	g.blobs = nil
	return nil
}

func (g *GraphEngine) recordRead(d time.Duration) {
	g.mu.Lock()
	g.metrics.ReadLatencyMs = float64(d.Microseconds()) / 1000.0
	g.mu.Unlock()
}

func (g *GraphEngine) recordWrite(d time.Duration) {
	g.mu.Lock()
	g.metrics.WriteLatencyMs = float64(d.Microseconds()) / 1000.0
	g.mu.Unlock()
}
