package entity

import (
	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
)

// PartialRoute is an edge-bracketed alternation: [edge, vertex, edge, ...,
// edge] (spec §3). VariableEdge shares this exact shape — it is the row the
// VLE engine emits to represent a matched variable-length-edge — and is
// distinguished only by the container's Subtype.
type PartialRoute struct {
	kind  Kind
	edges []Edge
	nodes []Vertex // len(nodes) == len(edges)-1; nodes[i] sits between edges[i] and edges[i+1]
	blob  []byte
}

func subtypeForPartialKind(k Kind) (container.Subtype, error) {
	switch k {
	case KindPartialRoute:
		return container.SubtypePartialRoute, nil
	case KindVariableEdge:
		return container.SubtypeVariableEdge, nil
	default:
		return 0, &errs.SchemaError{Entity: "partial_route", Detail: "kind is not an edge-bracketed entity", Err: errs.ErrBadAlternation}
	}
}

// buildPartial enforces the opposite alternation from buildPath: edge-first,
// edge-last (spec §4.3 build_partial_route).
func buildPartial(kind Kind, edges []Edge, nodes []Vertex) (PartialRoute, error) {
	if len(edges) == 0 {
		return PartialRoute{}, &errs.SchemaError{Entity: "partial_route", Detail: "must have at least one edge", Err: errs.ErrBadAlternation}
	}

	if len(nodes) != len(edges)-1 {
		return PartialRoute{}, &errs.SchemaError{Entity: "partial_route", Detail: "edge/vertex alternation mismatch", Err: errs.ErrBadAlternation}
	}

	subtype, err := subtypeForPartialKind(kind)
	if err != nil {
		return PartialRoute{}, err
	}

	b := container.New()
	b.BeginArrayWithSubtype(subtype)

	for i, e := range edges {
		eb, err := e.Bytes()
		if err != nil {
			return PartialRoute{}, err
		}

		if err := b.PutContainer(eb); err != nil {
			return PartialRoute{}, err
		}

		if i >= len(nodes) {
			break
		}

		nb, err := nodes[i].Bytes()
		if err != nil {
			return PartialRoute{}, err
		}

		if err := b.PutContainer(nb); err != nil {
			return PartialRoute{}, err
		}
	}

	blob, err := b.End()
	if err != nil {
		return PartialRoute{}, err
	}

	return PartialRoute{kind: kind, edges: edges, nodes: nodes, blob: blob}, nil
}

// BuildPartialRoute builds a Partial-route (spec §6 build_partial_route).
func BuildPartialRoute(edges []Edge, nodes []Vertex) (PartialRoute, error) {
	return buildPartial(KindPartialRoute, edges, nodes)
}

// BuildVariableEdge builds a Variable-edge row, the shape the VLE engine
// emits for a matched variable-length-edge (spec §3, §4.5).
func BuildVariableEdge(edges []Edge, nodes []Vertex) (PartialRoute, error) {
	return buildPartial(KindVariableEdge, edges, nodes)
}

func parsePartial(blob []byte, view *container.View, kind Kind) (PartialRoute, error) {
	entries, payloads, err := view.Elems()
	if err != nil {
		return PartialRoute{}, err
	}

	if len(entries) == 0 || len(entries)%2 == 0 {
		return PartialRoute{}, &errs.SchemaError{Entity: "partial_route", Detail: "even-length or empty edge-bracketed sequence", Err: errs.ErrBadAlternation}
	}

	edges := make([]Edge, 0, len(entries)/2+1)
	nodes := make([]Vertex, 0, len(entries)/2)

	for i, e := range entries {
		child, cerr := decodeContainerChild(e, payloads[i])
		if cerr != nil {
			return PartialRoute{}, cerr
		}

		if i%2 == 0 {
			eg, ok := child.(Edge)
			if !ok {
				return PartialRoute{}, &errs.SchemaError{Entity: "partial_route", Detail: "even position is not an edge", Err: errs.ErrBadAlternation}
			}

			edges = append(edges, eg)
		} else {
			vx, ok := child.(Vertex)
			if !ok {
				return PartialRoute{}, &errs.SchemaError{Entity: "partial_route", Detail: "odd position is not a vertex", Err: errs.ErrBadAlternation}
			}

			nodes = append(nodes, vx)
		}
	}

	return PartialRoute{kind: kind, edges: edges, nodes: nodes, blob: blob}, nil
}

// ParsePartialRoute decodes a PartialRoute/VariableEdge blob.
func ParsePartialRoute(blob []byte) (PartialRoute, error) {
	k, view, err := kindOf(blob)
	if err != nil {
		return PartialRoute{}, err
	}

	if k != KindPartialRoute && k != KindVariableEdge {
		return PartialRoute{}, &errs.SchemaError{Entity: "partial_route", Detail: "blob is not an edge-bracketed entity", Err: errs.ErrBadAlternation}
	}

	return parsePartial(blob, view, k)
}

func (p PartialRoute) Kind() Kind              { return p.kind }
func (p PartialRoute) Edges() []Edge           { return p.edges }
func (p PartialRoute) Nodes() []Vertex         { return p.nodes }
func (p PartialRoute) Size() int               { return len(p.edges) }
func (p PartialRoute) Bytes() ([]byte, error)  { return p.blob, nil }

// FirstEdge and LastEdge return the row's bracketing endpoints, the ends the
// VLE engine extends when growing a variable-edge (spec §4.5).
func (p PartialRoute) FirstEdge() Edge { return p.edges[0] }
func (p PartialRoute) LastEdge() Edge  { return p.edges[len(p.edges)-1] }

// ContainsEdge implements "edge-contained-in-variable-edge" (spec §4.3): true
// if id already appears among the row's edges.
func (p PartialRoute) ContainsEdge(id GraphID) bool {
	for _, e := range p.edges {
		if e.ID() == id {
			return true
		}
	}

	return false
}

// MatchVLEs implements the endpoint-touch predicate used to decide whether
// two variable-edge rows can be stitched into one continuation (spec §4.3
// "match_vles (endpoint-touch check)"): true if any endpoint of p equals any
// endpoint of other.
func (p PartialRoute) MatchVLEs(other PartialRoute) bool {
	pEnds := [2]GraphID{p.FirstEdge().StartID(), p.LastEdge().EndID()}
	oEnds := [2]GraphID{other.FirstEdge().StartID(), other.LastEdge().EndID()}

	for _, a := range pEnds {
		for _, b := range oEnds {
			if a == b {
				return true
			}
		}
	}

	return false
}
