package vle

import (
	"github.com/postgraph/gtype/entity"
	"github.com/postgraph/gtype/errs"
	"github.com/postgraph/gtype/internal/options"
	"github.com/postgraph/gtype/value"
)

// Direction selects which of a vertex's incident edges the engine follows
// (spec §4.5).
type Direction int

const (
	DirectionRight Direction = iota
	DirectionLeft
	DirectionNone
)

// MatchPrototype is the edge match prototype {label?, properties-pattern}
// of spec §4.5.
type MatchPrototype struct {
	Label        string
	HasLabel     bool
	Pattern      value.Value
	HasPattern   bool
}

func (p MatchPrototype) matches(e entity.Edge) (bool, error) {
	if p.HasLabel && e.Label() != p.Label {
		return false, nil
	}

	if p.HasPattern {
		ok, err := value.Contains(e.Properties(), p.Pattern)
		if err != nil {
			return false, err
		}

		if !ok {
			return false, nil
		}
	}

	return true, nil
}

// edgeRecord is edge_state's per-edge {used_in_path, has_been_matched,
// matched} triple (spec §4.5).
type edgeRecord struct {
	usedInPath     bool
	hasBeenMatched bool
	matched        bool
}

// queueItem is one edge_queue entry paired with the vertex it was
// discovered from — this is the per-item analogue of spec §4.5's
// vertex_queue, which exists "to reconstruct came-from context for
// undirected traversal" (direction NONE); carrying the parent alongside
// each queued edge gives the same context without a second stack that must
// stay in lockstep with edge_queue's pushes and pops.
type queueItem struct {
	edge   entity.Edge
	parent entity.GraphID
}

// pathStep is one path_queue entry: the edge taken and the vertex reached
// by taking it (spec §4.5's "next vertex").
type pathStep struct {
	edge   entity.Edge
	vertex entity.GraphID
}

// Engine runs one bounded-DFS traversal. Between Next() calls its state
// (edge_queue, path_queue, edge_state) is owned entirely by the Engine
// value — the per-call memory arena spec §5 describes is modeled by Arena
// (arena.go); Go's GC makes Engine itself safely long-lived across calls
// without any explicit pinning.
type Engine struct {
	cache     GraphCache
	start     entity.GraphID
	end       entity.GraphID
	hasEnd    bool
	proto     MatchPrototype
	lidx      int
	uidx      int
	hasUidx   bool
	direction Direction

	edgeQueue []queueItem
	pathQueue []pathStep
	edgeState map[entity.GraphID]*edgeRecord

	started bool
	done    bool

	arenaHint int
}

// Option configures a new Engine, following the functional-options pattern
// used throughout this codebase's builders and encoders.
type Option = options.Option[*Engine]

// WithEnd sets the optional end vertex, switching emission from
// paths-from to paths-between semantics (spec §4.5).
func WithEnd(id entity.GraphID) Option {
	return options.NoError(func(e *Engine) { e.end, e.hasEnd = id, true })
}

// WithBounds sets the inclusive hop-count range [lidx, uidx]. uidx<0 means
// unbounded (spec §4.5 default lidx=1, uidx infinite).
func WithBounds(lidx, uidx int) Option {
	return options.NoError(func(e *Engine) {
		e.lidx = lidx
		if uidx >= 0 {
			e.uidx, e.hasUidx = uidx, true
		}
	})
}

// WithDirection sets the edge direction filter.
func WithDirection(d Direction) Option {
	return options.NoError(func(e *Engine) { e.direction = d })
}

// WithArenaHint pre-sizes edge_queue's backing array to n, trading a larger
// upfront allocation for fewer grow-and-copy reallocations on traversals
// known to run wide (spec §5's per-call arena is sized per call in the C
// original; this is the same idea applied to Go's slice growth instead of
// an allocator region).
func WithArenaHint(n int) Option {
	return options.NoError(func(e *Engine) { e.arenaHint = n })
}

// New builds an Engine for one traversal starting at start (spec §4.5
// Inputs). The default bound is lidx=1, uidx infinite, direction RIGHT.
// Missing graph cache fails fast with NotFoundError (spec §4.5 Failure
// semantics); a missing start/end vertex is not an error here, and instead
// surfaces as zero rows from the first Next() call.
func New(cache GraphCache, start entity.GraphID, proto MatchPrototype, opts ...Option) (*Engine, error) {
	if cache == nil {
		return nil, &errs.NotFoundError{Kind: "graph_cache", Key: "", Err: errs.ErrGraphNotFound}
	}

	e := &Engine{
		cache:     cache,
		start:     start,
		proto:     proto,
		lidx:      1,
		direction: DirectionRight,
		edgeState: make(map[entity.GraphID]*edgeRecord),
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	if e.arenaHint > 0 {
		e.edgeQueue = make([]queueItem, 0, e.arenaHint)
		e.edgeState = make(map[entity.GraphID]*edgeRecord, e.arenaHint)
	}

	return e, nil
}

func (e *Engine) recordFor(id entity.GraphID) *edgeRecord {
	r, ok := e.edgeState[id]
	if !ok {
		r = &edgeRecord{}
		e.edgeState[id] = r
	}

	return r
}

func (e *Engine) matchCached(edge entity.Edge) (bool, error) {
	r := e.recordFor(edge.ID())
	if r.hasBeenMatched {
		return r.matched, nil
	}

	ok, err := e.proto.matches(edge)
	if err != nil {
		return false, err
	}

	r.hasBeenMatched = true
	r.matched = ok

	return ok, nil
}

func (e *Engine) candidateEdges(vertex entity.GraphID) []entity.Edge {
	switch e.direction {
	case DirectionRight:
		return e.cache.OutEdges(vertex)
	case DirectionLeft:
		return e.cache.InEdges(vertex)
	default:
		out := append([]entity.Edge(nil), e.cache.OutEdges(vertex)...)
		out = append(out, e.cache.InEdges(vertex)...)
		out = append(out, e.cache.SelfEdges(vertex)...)

		return out
	}
}

// nextVertex implements spec §4.5's next_vertex(edge): RIGHT returns the
// edge's end, LEFT returns its start, NONE picks the endpoint opposite the
// parent vertex it was discovered from.
func nextVertex(direction Direction, edge entity.Edge, parent entity.GraphID) (entity.GraphID, error) {
	switch direction {
	case DirectionRight:
		return edge.EndID(), nil
	case DirectionLeft:
		return edge.StartID(), nil
	default:
		v, ok := edge.OtherEnd(parent)
		if !ok {
			return 0, &errs.InternalError{Detail: "direction NONE: parent vertex not incident to edge", Err: errs.ErrInvariantBreach}
		}

		return v, nil
	}
}

func (e *Engine) ensureStarted() error {
	if e.started {
		return nil
	}

	e.started = true

	if _, ok := e.cache.GetVertex(e.start); !ok {
		// Missing start vertex: emit zero rows, not an error (spec §4.5).
		e.done = true
		return nil
	}

	for _, cand := range e.candidateEdges(e.start) {
		ok, err := e.matchCached(cand)
		if err != nil {
			return err
		}

		if ok {
			e.edgeQueue = append(e.edgeQueue, queueItem{edge: cand, parent: e.start})
		}
	}

	return nil
}

func (e *Engine) pathLen() int { return len(e.pathQueue) }

func (e *Engine) withinUpper(n int) bool { return !e.hasUidx || n <= e.uidx }

// Next advances the DFS and returns one matching row, or ok=false once
// edge_queue is exhausted (spec §4.5 Termination). The row is a vertex-
// bracketed Path — spec §4.5's informally-named "partial_path" blob is this
// same [start_vertex, edge_1, vertex_1, ..., edge_k, end_vertex] shape, not
// the edge-bracketed Partial-route of §3.
func (e *Engine) Next() (entity.Path, bool, error) {
	var zero entity.Path

	if e.hasEnd {
		if _, ok := e.cache.GetVertex(e.end); !ok {
			return zero, false, nil
		}
	}

	if err := e.ensureStarted(); err != nil {
		return zero, false, err
	}

	if e.done {
		return zero, false, nil
	}

	for len(e.edgeQueue) > 0 {
		top := e.edgeQueue[len(e.edgeQueue)-1]
		rec := e.recordFor(top.edge.ID())

		if rec.usedInPath {
			if e.pathLen() > 0 && e.pathQueue[e.pathLen()-1].edge.ID() == top.edge.ID() {
				// Backtracking: pop both, clear the flag (spec §4.5
				// invariant 3, first sub-case).
				e.edgeQueue = e.edgeQueue[:len(e.edgeQueue)-1]
				e.pathQueue = e.pathQueue[:e.pathLen()-1]
				rec.usedInPath = false

				continue
			}

			// Loop-inducing candidate: pop from edge_queue only, skip
			// (invariant 3, second sub-case).
			e.edgeQueue = e.edgeQueue[:len(e.edgeQueue)-1]

			continue
		}

		rec.usedInPath = true
		nv, err := nextVertex(e.direction, top.edge, top.parent)
		if err != nil {
			return zero, false, err
		}

		e.pathQueue = append(e.pathQueue, pathStep{edge: top.edge, vertex: nv})

		if e.withinUpper(e.pathLen()) && (!e.hasUidx || e.pathLen() < e.uidx) {
			for _, cand := range e.candidateEdges(nv) {
				cr := e.recordFor(cand.ID())
				if cr.usedInPath {
					continue
				}

				ok, err := e.matchCached(cand)
				if err != nil {
					return zero, false, err
				}

				if ok {
					e.edgeQueue = append(e.edgeQueue, queueItem{edge: cand, parent: nv})
				}
			}
		}

		emit := false

		switch {
		case e.hasEnd:
			if nv == e.end && e.lidx <= e.pathLen() && e.withinUpper(e.pathLen()) {
				emit = true
			}
		default:
			if e.lidx <= e.pathLen() && e.withinUpper(e.pathLen()) {
				emit = true
			}
		}

		if emit {
			row, err := e.materialize()
			if err != nil {
				return zero, false, err
			}

			return row, true, nil
		}
	}

	e.done = true

	return zero, false, nil
}

// materialize builds the [start_vertex, edge_1, vertex_1, ..., edge_k,
// end_vertex] partial_path blob by walking path_queue bottom-up and
// rehydrating vertices via the graph cache (spec §4.5 Emission).
func (e *Engine) materialize() (entity.Path, error) {
	startV, ok := e.cache.GetVertex(e.start)
	if !ok {
		return entity.Path{}, &errs.InternalError{Detail: "start vertex vanished mid-traversal", Err: errs.ErrInvariantBreach}
	}

	edges := make([]entity.Edge, 0, e.pathLen())
	nodes := make([]entity.Vertex, 0, e.pathLen()+1)
	nodes = append(nodes, startV)

	for _, step := range e.pathQueue {
		edges = append(edges, step.edge)

		vx, ok := e.cache.GetVertex(step.vertex)
		if !ok {
			return entity.Path{}, &errs.InternalError{Detail: "path vertex vanished mid-traversal", Err: errs.ErrInvariantBreach}
		}

		nodes = append(nodes, vx)
	}

	return entity.BuildPath(nodes, edges)
}
