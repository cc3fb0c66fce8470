// Package vle implements the variable-length-edge bounded-DFS path engine
// (spec §4.5): given a start vertex, an optional end vertex, an edge match
// prototype, and a hop-count range, it enumerates paths through a graph
// cache collaborator one row at a time, the way the teacher's section
// package streams decoded values one call at a time via its iterator type.
package vle

import "github.com/postgraph/gtype/entity"

// GraphCache is the read-only "graph catalog service" collaborator (spec §6)
// the engine dereferences to resolve vertices and enumerate a vertex's
// incident edges. Implementations are expected to be cheap pointer
// dereferences — the engine never blocks on I/O inside its core loop (spec
// §5 "Suspension points").
type GraphCache interface {
	// GetVertex resolves a vertex by id, false if absent (spec §4.5
	// "Missing start or end vertex -> emit zero rows, not an error").
	GetVertex(id entity.GraphID) (entity.Vertex, bool)

	// GetEdge resolves an edge by id.
	GetEdge(id entity.GraphID) (entity.Edge, bool)

	// OutEdges, InEdges, and SelfEdges enumerate the edges incident to
	// vertex id in each direction; SelfEdges are edges whose start and end
	// are both id. Order is deterministic and defines DFS emission order
	// (spec §5 "Ordering").
	OutEdges(id entity.GraphID) []entity.Edge
	InEdges(id entity.GraphID) []entity.Edge
	SelfEdges(id entity.GraphID) []entity.Edge
}
