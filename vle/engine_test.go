package vle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/entity"
	"github.com/postgraph/gtype/value"
	"github.com/postgraph/gtype/vle"
)

// fakeCache is an in-memory vle.GraphCache backed by plain maps, built
// directly from entity.Vertex/entity.Edge values — no store, no codec.
type fakeCache struct {
	vertices map[entity.GraphID]entity.Vertex
	out      map[entity.GraphID][]entity.Edge
	in       map[entity.GraphID][]entity.Edge
	self     map[entity.GraphID][]entity.Edge
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		vertices: make(map[entity.GraphID]entity.Vertex),
		out:      make(map[entity.GraphID][]entity.Edge),
		in:       make(map[entity.GraphID][]entity.Edge),
		self:     make(map[entity.GraphID][]entity.Edge),
	}
}

func (c *fakeCache) addVertex(vx entity.Vertex) { c.vertices[vx.ID()] = vx }

func (c *fakeCache) addEdge(e entity.Edge) {
	if e.StartID() == e.EndID() {
		c.self[e.StartID()] = append(c.self[e.StartID()], e)
		return
	}

	c.out[e.StartID()] = append(c.out[e.StartID()], e)
	c.in[e.EndID()] = append(c.in[e.EndID()], e)
}

func (c *fakeCache) GetVertex(id entity.GraphID) (entity.Vertex, bool) {
	vx, ok := c.vertices[id]
	return vx, ok
}

func (c *fakeCache) GetEdge(id entity.GraphID) (entity.Edge, bool) {
	for _, edges := range c.out {
		for _, e := range edges {
			if e.ID() == id {
				return e, true
			}
		}
	}

	return entity.Edge{}, false
}

func (c *fakeCache) OutEdges(id entity.GraphID) []entity.Edge  { return c.out[id] }
func (c *fakeCache) InEdges(id entity.GraphID) []entity.Edge   { return c.in[id] }
func (c *fakeCache) SelfEdges(id entity.GraphID) []entity.Edge { return c.self[id] }

func emptyObj(t *testing.T) value.Value {
	t.Helper()

	b := container.New()
	b.BeginObject()

	blob, err := b.End()
	require.NoError(t, err)

	v, err := value.Parse(blob)
	require.NoError(t, err)

	return v
}

// chainGraph builds A -(E1)-> B -(E2)-> C -(E3)-> D, all labeled "E".
func chainGraph(t *testing.T) (*fakeCache, []entity.Vertex) {
	t.Helper()

	props := emptyObj(t)

	ids := []entity.GraphID{
		entity.MakeGraphID(1, 1),
		entity.MakeGraphID(1, 2),
		entity.MakeGraphID(1, 3),
		entity.MakeGraphID(1, 4),
	}

	cache := newFakeCache()

	verts := make([]entity.Vertex, len(ids))
	for i, id := range ids {
		vx, err := entity.BuildVertex(id, "N", props)
		require.NoError(t, err)
		verts[i] = vx
		cache.addVertex(vx)
	}

	for i := 0; i < len(ids)-1; i++ {
		e, err := entity.BuildEdge(entity.MakeGraphID(1, uint64(100+i)), ids[i], ids[i+1], "E", props)
		require.NoError(t, err)
		cache.addEdge(e)
	}

	return cache, verts
}

func drain(t *testing.T, e *vle.Engine) []entity.Path {
	t.Helper()

	var rows []entity.Path
	for {
		row, ok, err := e.Next()
		require.NoError(t, err)
		if !ok {
			return rows
		}
		rows = append(rows, row)
	}
}

func TestEngineNilCacheErrors(t *testing.T) {
	_, err := vle.New(nil, entity.MakeGraphID(1, 1), vle.MatchPrototype{})
	require.Error(t, err)
}

func TestEngineMissingStartVertexYieldsZeroRows(t *testing.T) {
	cache, _ := chainGraph(t)

	missing := entity.MakeGraphID(9, 9)

	e, err := vle.New(cache, missing, vle.MatchPrototype{})
	require.NoError(t, err)

	rows := drain(t, e)
	require.Empty(t, rows)
}

func TestEnginePathsFromEmitsAllBoundedRows(t *testing.T) {
	cache, verts := chainGraph(t)

	e, err := vle.New(cache, verts[0].ID(), vle.MatchPrototype{}, vle.WithBounds(1, 2))
	require.NoError(t, err)

	rows := drain(t, e)
	require.NotEmpty(t, rows)

	for _, row := range rows {
		require.LessOrEqual(t, row.Size(), 2)
		require.Equal(t, verts[0].ID(), row.StartVertex().ID())
	}
}

func TestEnginePathsBetweenOnlyEmitsRowsReachingEnd(t *testing.T) {
	cache, verts := chainGraph(t)

	e, err := vle.New(cache, verts[0].ID(), vle.MatchPrototype{},
		vle.WithEnd(verts[2].ID()), vle.WithBounds(1, 5))
	require.NoError(t, err)

	rows := drain(t, e)
	require.NotEmpty(t, rows)

	for _, row := range rows {
		require.Equal(t, verts[2].ID(), row.EndVertex().ID())
	}
}

func TestEngineMissingEndVertexYieldsZeroRows(t *testing.T) {
	cache, verts := chainGraph(t)

	e, err := vle.New(cache, verts[0].ID(), vle.MatchPrototype{}, vle.WithEnd(entity.MakeGraphID(9, 9)))
	require.NoError(t, err)

	rows := drain(t, e)
	require.Empty(t, rows)
}

func TestEngineLabelFilterExcludesNonMatching(t *testing.T) {
	cache, verts := chainGraph(t)

	e, err := vle.New(cache, verts[0].ID(),
		vle.MatchPrototype{Label: "NOPE", HasLabel: true}, vle.WithBounds(1, 3))
	require.NoError(t, err)

	rows := drain(t, e)
	require.Empty(t, rows)
}

func TestEngineUndirectedNoneFollowsBothWays(t *testing.T) {
	props := emptyObj(t)
	cache := newFakeCache()

	a, err := entity.BuildVertex(entity.MakeGraphID(1, 1), "N", props)
	require.NoError(t, err)
	b, err := entity.BuildVertex(entity.MakeGraphID(1, 2), "N", props)
	require.NoError(t, err)
	cache.addVertex(a)
	cache.addVertex(b)

	// Single edge B -> A; from A, only DirectionNone can reach B.
	edge, err := entity.BuildEdge(entity.MakeGraphID(1, 50), b.ID(), a.ID(), "E", props)
	require.NoError(t, err)
	cache.addEdge(edge)

	e, err := vle.New(cache, a.ID(), vle.MatchPrototype{}, vle.WithDirection(vle.DirectionNone), vle.WithBounds(1, 1))
	require.NoError(t, err)

	rows := drain(t, e)
	require.Len(t, rows, 1)
	require.Equal(t, b.ID(), rows[0].EndVertex().ID())
}

func TestEngineArenaHintPresizesQueues(t *testing.T) {
	cache, verts := chainGraph(t)

	e, err := vle.New(cache, verts[0].ID(), vle.MatchPrototype{}, vle.WithArenaHint(8), vle.WithBounds(1, 1))
	require.NoError(t, err)

	rows := drain(t, e)
	require.Len(t, rows, 1)
}

func TestEnforceEdgeUniquenessDetectsDuplicateAcrossPaths(t *testing.T) {
	cache, verts := chainGraph(t)

	e, err := vle.New(cache, verts[0].ID(), vle.MatchPrototype{}, vle.WithBounds(1, 1))
	require.NoError(t, err)

	rows := drain(t, e)
	require.Len(t, rows, 1)

	require.True(t, vle.EnforceEdgeUniqueness(rows[0]))
	require.False(t, vle.EnforceEdgeUniqueness(rows[0], rows[0]))
}
