// Package gtype is a standalone, embeddable library implementing
// PostGraph's graph-value subsystem: a tagged-union scalar algebra, a
// compact binary container format, composite graph entities built on top
// of it, a JSON-superset text format with PostgreSQL-flavored
// `::annotation` typing, and a bounded-DFS variable-length-edge path
// engine.
//
// It does not open sockets, does not talk to Postgres, and does not
// persist anything — a host process links it in and drives it through the
// packages below.
//
// # Packages
//
//   - container — the binary layout every value and entity is built on
//   - value — the scalar algebra (numeric, temporal, network, geometric,
//     tsearch, vector, range, bytea, ...)
//   - entity — composite graph entities: Vertex, Edge, Path, Route,
//     Traversal, PartialRoute, VariableEdge
//   - lexer, parser — the JSON-superset text format and its compiler to
//     container blobs
//   - vle — the bounded-DFS variable-length-edge path engine
//   - errs — the error taxonomy shared across all of the above
//
// The gtype subpackage wraps the common entry points from these packages
// for callers who don't need package-by-package control.
package gtype
