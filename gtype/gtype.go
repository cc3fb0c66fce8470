// Package gtype provides convenient top-level wrappers around the value,
// container, entity, parser, and vle packages, simplifying the most common
// use cases.
//
// # Core Features
//
//   - A JSON-superset text format with an `::annotation` suffix for
//     PostgreSQL-flavored scalar types (numeric, inet, timestamp, ...)
//   - A compact, 4-byte-aligned binary container format shared by every
//     scalar, array, object, and composite graph entity
//   - Vertex/Edge/Path/Route/Traversal/PartialRoute/VariableEdge graph
//     entities built directly onto that container format
//   - A bounded-DFS variable-length-edge path engine over a pluggable graph
//     cache
//
// # Basic Usage
//
// Parsing text into a blob and reading it back as a value:
//
//	blob, err := gtype.Parse(`{"name": "alice", "age": 30}`)
//	if err != nil {
//	    // handle error
//	}
//
//	v, err := gtype.ParseValue(blob)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(v.Kind())
//
// Building a graph entity directly, without going through text:
//
//	propsBlob, _ := gtype.Parse(`{}`)
//	props, _ := gtype.ParseValue(propsBlob)
//	vertex, err := entity.BuildVertex(entity.MakeGraphID(1, 42), "Person", props)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the value,
// container, entity, parser, and vle packages. For advanced usage and
// fine-grained control, use those packages directly.
package gtype

import (
	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/entity"
	"github.com/postgraph/gtype/parser"
	"github.com/postgraph/gtype/value"
	"github.com/postgraph/gtype/vle"
)

// Parse compiles gtype's JSON-superset text form into a binary container
// blob. The returned blob can be handed to ParseValue, container.Parse, or
// stored as-is.
func Parse(text string, opts ...parser.Option) ([]byte, error) {
	return parser.Parse(text, opts...)
}

// ParseValue interprets a binary container blob as a scalar, array, or
// object value (spec §3/§4.2).
func ParseValue(blob []byte) (value.Value, error) {
	return value.Parse(blob)
}

// ParseEntity interprets a binary container blob as a graph entity: a
// Vertex, Edge, Path, Route, Traversal, PartialRoute, or VariableEdge (spec
// §4.3), dispatching on the blob's container Kind/Subtype.
func ParseEntity(blob []byte) (entity.Entity, error) {
	return entity.Parse(blob)
}

// Compare orders two values by gtype's total type-then-value ordering (spec
// §4.2 Comparison).
func Compare(a, b value.Value) (int, error) {
	return value.Compare(a, b)
}

// Equal reports whether two values compare equal under gtype's ordering.
func Equal(a, b value.Value) (bool, error) {
	return value.Equal(a, b)
}

// Contains reports whether doc structurally contains pattern (spec §4.2
// containment operator).
func Contains(doc, pattern value.Value) (bool, error) {
	return value.Contains(doc, pattern)
}

// NewBuilder starts a fresh container.Builder for callers that need to
// assemble a blob field by field rather than through Parse.
func NewBuilder() *container.Builder {
	return container.New()
}

// NewVLE starts a bounded-DFS path engine rooted at start (spec §4.5).
// cache supplies vertex/edge lookups; proto filters which edges the
// traversal follows.
func NewVLE(cache vle.GraphCache, start entity.GraphID, proto vle.MatchPrototype, opts ...vle.Option) (*vle.Engine, error) {
	return vle.New(cache, start, proto, opts...)
}
