package vle

import "github.com/postgraph/gtype/entity"

// edgeIDSource is any row shape that exposes its constituent edge ids —
// Path/Route/Traversal and PartialRoute/VariableEdge both qualify.
type edgeIDSource interface {
	Edges() []entity.Edge
}

// EnforceEdgeUniqueness implements spec §4.5's enforce_edge_uniqueness:
// given a variadic list of rows (graphids, partial-paths, variable-edges),
// insert each edge id into one hash set shared across all rows and return
// false on the first duplicate. Used by the query engine to filter overlapping edge
// matches within a single MATCH.
func EnforceEdgeUniqueness(rows ...interface{}) bool {
	seen := make(map[entity.GraphID]struct{})

	for _, row := range rows {
		switch r := row.(type) {
		case entity.GraphID:
			if _, dup := seen[r]; dup {
				return false
			}

			seen[r] = struct{}{}
		case edgeIDSource:
			for _, e := range r.Edges() {
				if _, dup := seen[e.ID()]; dup {
					return false
				}

				seen[e.ID()] = struct{}{}
			}
		}
	}

	return true
}
