package entity

import (
	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
)

// subtypeForKind maps a Path/Route/Traversal Kind back to the Subtype that
// tags its (otherwise identical) ARRAY container (spec §4.3: "Path, Route,
// and Traversal share one physical shape and differ only by name").
func subtypeForKind(k Kind) (container.Subtype, error) {
	switch k {
	case KindPath:
		return container.SubtypePath, nil
	case KindRoute:
		return container.SubtypeRoute, nil
	case KindTraversal:
		return container.SubtypeTraversal, nil
	default:
		return 0, &errs.SchemaError{Entity: "path", Detail: "kind is not a path-shaped entity", Err: errs.ErrBadAlternation}
	}
}

// Path is a vertex-bracketed alternation: [vertex, edge, vertex, ...,
// vertex] (spec §3). Route and Traversal share this exact shape and are
// distinguished only by the container's Subtype and this struct's kind
// field.
type Path struct {
	kind  Kind
	nodes []Vertex
	edges []Edge
	blob  []byte
}

// buildPath assembles a vertex-bracketed ARRAY container from alternating
// nodes and edges. len(nodes) must equal len(edges)+1, and the sequence must
// start and end on a Vertex (spec §4.3, "a trailing edge fails with a schema
// error").
func buildPath(kind Kind, nodes []Vertex, edges []Edge) (Path, error) {
	if len(nodes) == 0 {
		return Path{}, &errs.SchemaError{Entity: "path", Detail: "path must have at least one vertex", Err: errs.ErrBadAlternation}
	}

	if len(nodes) != len(edges)+1 {
		return Path{}, &errs.SchemaError{Entity: "path", Detail: "vertex/edge alternation mismatch", Err: errs.ErrBadAlternation}
	}

	subtype, err := subtypeForKind(kind)
	if err != nil {
		return Path{}, err
	}

	b := container.New()
	b.BeginArrayWithSubtype(subtype)

	for i, n := range nodes {
		nb, err := n.Bytes()
		if err != nil {
			return Path{}, err
		}

		if err := b.PutContainer(nb); err != nil {
			return Path{}, err
		}

		if i >= len(edges) {
			break
		}

		eb, err := edges[i].Bytes()
		if err != nil {
			return Path{}, err
		}

		if err := b.PutContainer(eb); err != nil {
			return Path{}, err
		}
	}

	blob, err := b.End()
	if err != nil {
		return Path{}, err
	}

	return Path{kind: kind, nodes: nodes, edges: edges, blob: blob}, nil
}

// BuildPath builds a Path (spec §6 build_path).
func BuildPath(nodes []Vertex, edges []Edge) (Path, error) { return buildPath(KindPath, nodes, edges) }

// BuildRoute builds a Route (spec §6 build_route).
func BuildRoute(nodes []Vertex, edges []Edge) (Path, error) {
	return buildPath(KindRoute, nodes, edges)
}

// BuildTraversal builds a Traversal (spec §6 build_traversal).
func BuildTraversal(nodes []Vertex, edges []Edge) (Path, error) {
	return buildPath(KindTraversal, nodes, edges)
}

func parsePath(blob []byte, view *container.View, kind Kind) (Path, error) {
	entries, payloads, err := view.Elems()
	if err != nil {
		return Path{}, err
	}

	if len(entries) == 0 || len(entries)%2 == 0 {
		return Path{}, &errs.SchemaError{Entity: "path", Detail: "even-length or empty vertex-bracketed sequence", Err: errs.ErrBadAlternation}
	}

	nodes := make([]Vertex, 0, len(entries)/2+1)
	edges := make([]Edge, 0, len(entries)/2)

	for i, e := range entries {
		child, cerr := decodeContainerChild(e, payloads[i])
		if cerr != nil {
			return Path{}, cerr
		}

		if i%2 == 0 {
			vx, ok := child.(Vertex)
			if !ok {
				return Path{}, &errs.SchemaError{Entity: "path", Detail: "even position is not a vertex", Err: errs.ErrBadAlternation}
			}

			nodes = append(nodes, vx)
		} else {
			eg, ok := child.(Edge)
			if !ok {
				return Path{}, &errs.SchemaError{Entity: "path", Detail: "odd position is not an edge", Err: errs.ErrBadAlternation}
			}

			edges = append(edges, eg)
		}
	}

	return Path{kind: kind, nodes: nodes, edges: edges, blob: blob}, nil
}

// decodeContainerChild decodes an array element that is itself a nested
// composite-entity container (spec §3, "array elements that are themselves
// CONTAINER-tagged children").
func decodeContainerChild(e container.Entry, payload []byte) (Entity, error) {
	if e.Type != container.EntryContainer {
		return nil, &errs.SchemaError{Entity: "path", Detail: "element is not a nested container", Err: errs.ErrBadAlternation}
	}

	return Parse(payload)
}

// ParsePath decodes a Path/Route/Traversal blob.
func ParsePath(blob []byte) (Path, error) {
	k, view, err := kindOf(blob)
	if err != nil {
		return Path{}, err
	}

	if k != KindPath && k != KindRoute && k != KindTraversal {
		return Path{}, &errs.SchemaError{Entity: "path", Detail: "blob is not a path-shaped entity", Err: errs.ErrBadAlternation}
	}

	return parsePath(blob, view, k)
}

func (p Path) Kind() Kind              { return p.kind }
func (p Path) Nodes() []Vertex         { return p.nodes }
func (p Path) Edges() []Edge           { return p.edges }
func (p Path) Size() int               { return len(p.edges) }
func (p Path) Bytes() ([]byte, error)  { return p.blob, nil }

// StartVertex and EndVertex return the path's bracketing endpoints.
func (p Path) StartVertex() Vertex { return p.nodes[0] }
func (p Path) EndVertex() Vertex   { return p.nodes[len(p.nodes)-1] }
