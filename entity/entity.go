// Package entity implements gtype's composite graph entities (spec §3
// "Composite entities", §4.3): Vertex, Edge, Path/Route/Traversal
// (vertex-bracketed alternation), and Partial-route/Variable-edge
// (edge-bracketed alternation). Each is a thin typed wrapper around a
// container blob built via container.Builder, generalizing the
// teacher's fixed-field section layout (section/*.go's Header/Flag/Entry
// triad) from a columnar time-series header to gtype's graph entities.
package entity

import (
	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
	"github.com/postgraph/gtype/value"
)

// Kind identifies which composite entity a decoded blob holds.
type Kind uint8

const (
	KindVertex Kind = iota
	KindEdge
	KindPath
	KindRoute
	KindTraversal
	KindPartialRoute
	KindVariableEdge
	KindUnknown
)

var subtypeToKind = map[container.Subtype]Kind{
	container.SubtypeVertex:       KindVertex,
	container.SubtypeEdge:         KindEdge,
	container.SubtypePath:         KindPath,
	container.SubtypeRoute:        KindRoute,
	container.SubtypeTraversal:    KindTraversal,
	container.SubtypePartialRoute: KindPartialRoute,
	container.SubtypeVariableEdge: KindVariableEdge,
}

// kindOf inspects a raw blob's container header to classify it.
func kindOf(blob []byte) (Kind, *container.View, error) {
	view, err := container.Parse(blob)
	if err != nil {
		return KindUnknown, nil, err
	}

	k, ok := subtypeToKind[view.Header.Subtype]
	if !ok {
		return KindUnknown, view, nil
	}

	return k, view, nil
}

// Entity is any decoded composite graph value: Vertex, Edge, Path, Route,
// Traversal, PartialRoute, or VariableEdge.
type Entity interface {
	Kind() Kind
	Bytes() ([]byte, error)
}

// Parse classifies and decodes a composite-entity blob.
func Parse(blob []byte) (Entity, error) {
	k, view, err := kindOf(blob)
	if err != nil {
		return nil, err
	}

	switch k {
	case KindVertex:
		return parseVertex(blob, view)
	case KindEdge:
		return parseEdge(blob, view)
	case KindPath, KindRoute, KindTraversal:
		return parsePath(blob, view, k)
	case KindPartialRoute, KindVariableEdge:
		return parsePartial(blob, view, k)
	default:
		return nil, &errs.SchemaError{Entity: "entity", Detail: "unrecognized composite entity subtype", Err: errs.ErrBadAlternation}
	}
}

// idOf extracts a nested Vertex/Edge's leading id field as a GraphID.
func idOf(v value.Value) (GraphID, bool) {
	i, ok := v.AsInt64()
	return GraphID(i), ok
}

// compareIDs implements "ordering on composites uses the embedded id
// sequence" (spec §4.3) for any Entity pair.
func compareIDs(a, b Entity) (int, error) {
	ab, err := a.Bytes()
	if err != nil {
		return 0, err
	}

	bb, err := b.Bytes()
	if err != nil {
		return 0, err
	}

	av, err := value.Parse(ab)
	if err != nil {
		return 0, err
	}

	bv, err := value.Parse(bb)
	if err != nil {
		return 0, err
	}

	return value.Compare(av, bv)
}

// Compare orders two Entity values by their embedded id sequence, falling
// back to length (spec §4.3, "traversal ordering compares ids pairwise then
// length" — subsumed here by the container codec's general Compare, since
// ids are the leading field of every composite entity's container layout).
func Compare(a, b Entity) (int, error) { return compareIDs(a, b) }
