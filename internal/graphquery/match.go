// Package graphquery implements the Cypher-subset MATCH statement over an
// internal/storageengine.GraphEngine (spec §4.4). It is a new component
// relative to the teacher pack; the matching logic follows the node/edge
// predicate rules laid out directly in the spec, in the small-struct,
// sentinel-error style the rest of columndb uses.
package graphquery

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/columndb/columndb/internal/dberr"
	"github.com/columndb/columndb/internal/storageengine"
	"github.com/columndb/columndb/internal/types"
)

// NodePattern is one parsed "(var:Label {k:v,...})" term.
type NodePattern struct {
	Var        string
	Labels     []string
	Properties map[string]types.Value
}

// EdgePattern is one parsed "-[e:REL]->" term.
type EdgePattern struct {
	Var       string
	Type      string
	Direction storageengine.EdgeDirection
}

// Pattern is a single MATCH clause: a start node, an optional traversal to
// a second node, and the names RETURN should project.
type Pattern struct {
	Start  NodePattern
	Edge   *EdgePattern
	End    *NodePattern
	Return []string
}

// Match is a materialized binding of pattern variables to a concrete node
// (and, for two-node patterns, node pair).
type Match struct {
	Start storageengine.Node
	End   *storageengine.Node
}

var reMatch = regexp.MustCompile(`(?is)^\s*MATCH\s*(.+?)\s*RETURN\s*(.+?)\s*;?\s*$`)
var reNode = regexp.MustCompile(`\(\s*(\w*)\s*(?::\s*(\w+))?\s*(\{[^}]*\})?\s*\)`)
var reEdgeOut = regexp.MustCompile(`-\[\s*(\w*)\s*(?::\s*(\w+))?\s*\]->`)
var reEdgeIn = regexp.MustCompile(`<-\[\s*(\w*)\s*(?::\s*(\w+))?\s*\]-`)
var reEdgeBidi = regexp.MustCompile(`-\[\s*(\w*)\s*(?::\s*(\w+))?\s*\]-`)

// Parse parses a Cypher-subset query of the shape
// "MATCH (var:Label {k:v})-[e:REL]->(var2) RETURN ...". Any verb other
// than MATCH surfaces dberr.NotImplemented, per spec §4.4.
func Parse(query string) (Pattern, error) {
	trimmed := strings.TrimSpace(query)
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "MATCH") {
		return Pattern{}, fmt.Errorf("only MATCH is supported, got %q: %w", firstWord(trimmed), dberr.NotImplemented)
	}

	m := reMatch.FindStringSubmatch(trimmed)
	if m == nil {
		return Pattern{}, fmt.Errorf("malformed MATCH ... RETURN statement: %w", dberr.InvalidInput)
	}
	clause, ret := m[1], m[2]

	var p Pattern
	var err error

	if loc := reEdgeOut.FindStringSubmatchIndex(clause); loc != nil {
		p, err = parseTwoNode(clause, loc, reEdgeOut, storageengine.DirOutgoing)
	} else if loc := reEdgeIn.FindStringSubmatchIndex(clause); loc != nil {
		p, err = parseTwoNode(clause, loc, reEdgeIn, storageengine.DirIncoming)
	} else if loc := reEdgeBidi.FindStringSubmatchIndex(clause); loc != nil {
		p, err = parseTwoNode(clause, loc, reEdgeBidi, storageengine.DirBidirectional)
	} else {
		start, perr := parseNode(clause)
		if perr != nil {
			return Pattern{}, perr
		}
		p = Pattern{Start: start}
	}
	if err != nil {
		return Pattern{}, err
	}

	for _, field := range strings.Split(ret, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			p.Return = append(p.Return, field)
		}
	}
	return p, nil
}

func parseTwoNode(clause string, loc []int, edgeRe *regexp.Regexp, dir storageengine.EdgeDirection) (Pattern, error) {
	left := clause[:loc[0]]
	right := clause[loc[1]:]
	startNode, err := parseNode(left)
	if err != nil {
		return Pattern{}, err
	}
	endNode, err := parseNode(right)
	if err != nil {
		return Pattern{}, err
	}
	edgeMatch := edgeRe.FindStringSubmatch(clause[loc[0]:loc[1]])
	edge := EdgePattern{Var: edgeMatch[1], Type: edgeMatch[2], Direction: dir}
	return Pattern{Start: startNode, Edge: &edge, End: &endNode}, nil
}

func parseNode(s string) (NodePattern, error) {
	m := reNode.FindStringSubmatch(s)
	if m == nil {
		return NodePattern{}, fmt.Errorf("malformed node pattern in %q: %w", s, dberr.InvalidInput)
	}
	np := NodePattern{Var: m[1]}
	if m[2] != "" {
		np.Labels = []string{m[2]}
	}
	if m[3] != "" {
		props, err := parseProperties(m[3])
		if err != nil {
			return NodePattern{}, err
		}
		np.Properties = props
	}
	return np, nil
}

var reProp = regexp.MustCompile(`(\w+)\s*:\s*("([^"]*)"|'([^']*)'|-?\d+\.\d+|-?\d+|true|false)`)

func parseProperties(braced string) (map[string]types.Value, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(braced), "{"), "}")
	props := make(map[string]types.Value)
	for _, m := range reProp.FindAllStringSubmatch(inner, -1) {
		key, raw := m[1], m[2]
		props[key] = parsePropertyValue(raw, m[3], m[4])
	}
	return props, nil
}

func parsePropertyValue(raw, dquoted, squoted string) types.Value {
	switch {
	case dquoted != "" || strings.HasPrefix(raw, "\""):
		return types.StringValue(dquoted)
	case squoted != "" || strings.HasPrefix(raw, "'"):
		return types.StringValue(squoted)
	case raw == "true":
		return types.BoolValue(true)
	case raw == "false":
		return types.BoolValue(false)
	case strings.Contains(raw, "."):
		f, _ := strconv.ParseFloat(raw, 64)
		return types.Float64Value(f)
	default:
		i, _ := strconv.ParseInt(raw, 10, 64)
		return types.Int64Value(i)
	}
}

func firstWord(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// nodeMatches implements spec §4.4's two-part predicate: at least one
// pattern label must appear in the node's label set (vacuously true if the
// pattern specifies none), and every pattern property key must exist on
// the node with an equal value under types.Value.Equal.
func nodeMatches(pattern NodePattern, n storageengine.Node) bool {
	if len(pattern.Labels) > 0 {
		nodeLabels := make(map[string]bool, len(n.Labels))
		for _, l := range n.Labels {
			nodeLabels[l] = true
		}
		found := false
		for _, pl := range pattern.Labels {
			if nodeLabels[pl] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for k, v := range pattern.Properties {
		nv, ok := n.Properties[k]
		if !ok || !v.Equal(nv) {
			return false
		}
	}
	return true
}

// candidateEdges returns g's edges out of/into/both-ways around h,
// filtered to the pattern's relationship type when one is given.
func candidateEdges(g *storageengine.GraphEngine, h storageengine.NodeHandle, ep EdgePattern) []storageengine.Edge {
	var edges []storageengine.Edge
	switch ep.Direction {
	case storageengine.DirOutgoing:
		edges = g.EdgesFrom(h)
	case storageengine.DirIncoming:
		edges = g.EdgesTo(h)
	case storageengine.DirBidirectional:
		edges = append(g.EdgesFrom(h), g.EdgesTo(h)...)
	}
	if ep.Type == "" {
		return edges
	}
	filtered := edges[:0:0]
	for _, e := range edges {
		if e.Type == ep.Type {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func otherEnd(e storageengine.Edge, from storageengine.NodeHandle) storageengine.NodeHandle {
	if e.From == from {
		return e.To
	}
	return e.From
}

// Match runs p against g and returns every matching binding. Single-node
// patterns scan all nodes; two-node patterns scan all nodes for a start
// match and then walk that node's filtered adjacency for an end match.
func Match(g *storageengine.GraphEngine, p Pattern) ([]Match, error) {
	var out []Match
	for _, n := range g.Nodes() {
		if !nodeMatches(p.Start, n) {
			continue
		}
		if p.Edge == nil {
			out = append(out, Match{Start: n})
			continue
		}
		for _, e := range candidateEdges(g, n.ID, *p.Edge) {
			otherHandle := otherEnd(e, n.ID)
			other, err := g.Node(otherHandle)
			if err != nil {
				return nil, err
			}
			if nodeMatches(*p.End, other) {
				o := other
				out = append(out, Match{Start: n, End: &o})
			}
		}
	}
	return out, nil
}

// Project applies p.Return to a Match: a bare pattern variable yields the
// whole node (rendered as its label set); "var.prop" yields the text form
// of that property. Unknown variables/properties yield the empty string
// per the "simplified projection" posture the other Query implementations
// share.
func Project(p Pattern, m Match) []string {
	out := make([]string, 0, len(p.Return))
	for _, field := range p.Return {
		out = append(out, projectField(p, m, field))
	}
	return out
}

func projectField(p Pattern, m Match, field string) string {
	varName, prop, hasProp := strings.Cut(field, ".")
	var node *storageengine.Node
	switch varName {
	case p.Start.Var:
		node = &m.Start
	default:
		if p.End != nil && varName == p.End.Var {
			node = m.End
		}
	}
	if node == nil {
		return ""
	}
	if !hasProp {
		return strings.Join(node.Labels, ":")
	}
	v, ok := node.Properties[prop]
	if !ok {
		return ""
	}
	return valueText(v)
}

func valueText(v types.Value) string {
	switch v.Tag {
	case types.String:
		return v.AsString()
	case types.Boolean:
		return strconv.FormatBool(v.AsBool())
	case types.Int64:
		return strconv.FormatInt(v.AsInt64(), 10)
	case types.Float64:
		return strconv.FormatFloat(v.AsFloat64(), 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
