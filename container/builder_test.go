package container_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/postgraph/gtype/container"
)

func TestBuilderArrayRoundTrip(t *testing.T) {
	b := container.New()
	b.BeginArray()

	for _, s := range []string{"alpha", "beta", "gamma"} {
		e, p, err := container.MakeString(s)
		require.NoError(t, err)
		require.NoError(t, b.PutRaw(e, p))
	}

	blob, err := b.End()
	require.NoError(t, err)

	view, err := container.Parse(blob)
	require.NoError(t, err)
	require.Equal(t, container.KindArray, view.Header.Kind)
	require.Equal(t, 3, view.Header.Count)

	entries, payloads, err := view.Elems()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "alpha", string(payloads[0]))
	require.Equal(t, "beta", string(payloads[1]))
	require.Equal(t, "gamma", string(payloads[2]))
}

func TestBuilderObjectSortsAndDedupsKeys(t *testing.T) {
	b := container.New()
	b.BeginObject()

	for _, kv := range []struct{ k, v string }{
		{"zeta", "1"},
		{"alpha", "2"},
		{"alpha", "3"}, // last-write-wins
	} {
		require.NoError(t, b.Key(kv.k))

		e, p, err := container.MakeString(kv.v)
		require.NoError(t, err)
		require.NoError(t, b.PutRaw(e, p))
	}

	blob, err := b.End()
	require.NoError(t, err)

	view, err := container.Parse(blob)
	require.NoError(t, err)
	require.Equal(t, 2, view.Header.Count)

	ve, vp, ok, err := view.Find("alpha")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "3", string(vp))
	_ = ve
}

func TestBuilderNestedContainers(t *testing.T) {
	inner := container.New()
	inner.BeginArray()

	e, p := container.MakeBool(true)
	require.NoError(t, inner.PutRaw(e, p))

	innerBlob, err := inner.End()
	require.NoError(t, err)

	outer := container.New()
	outer.BeginObject()
	require.NoError(t, outer.Key("flags"))
	require.NoError(t, outer.PutContainer(innerBlob))

	blob, err := outer.End()
	require.NoError(t, err)

	view, err := container.Parse(blob)
	require.NoError(t, err)

	fe, fp, ok, err := view.Find("flags")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, container.EntryContainer, fe.Type)

	nested, err := container.Parse(fp)
	require.NoError(t, err)
	require.Equal(t, container.KindArray, nested.Header.Kind)
	require.Equal(t, 1, nested.Header.Count)
}

func TestBuildRawScalar(t *testing.T) {
	e, p, err := container.MakeString("hello")
	require.NoError(t, err)

	blob, err := container.BuildRawScalar(e, p)
	require.NoError(t, err)

	view, err := container.Parse(blob)
	require.NoError(t, err)
	require.True(t, view.IsRawScalar())
}

func TestBuilderArrayStrideOffsetOver32Children(t *testing.T) {
	b := container.New()
	b.BeginArray()

	const n = 40 // > Stride (32): exercises the second block's stride offset.

	want := make([]string, n)
	for i := 0; i < n; i++ {
		s := fmt.Sprintf("e%03d", i) // fixed 4-byte payload, no alignment padding
		want[i] = s

		e, p, err := container.MakeString(s)
		require.NoError(t, err)
		require.NoError(t, b.PutRaw(e, p))
	}

	blob, err := b.End()
	require.NoError(t, err)

	view, err := container.Parse(blob)
	require.NoError(t, err)
	require.Equal(t, n, view.Header.Count)

	_, payloads, err := view.Elems()
	require.NoError(t, err)
	require.Len(t, payloads, n)

	for i, p := range payloads {
		require.Equal(t, want[i], string(p), "element %d", i)
	}
}

func TestBuilderObjectStrideOffsetOver32Keys(t *testing.T) {
	b := container.New()
	b.BeginObject()

	const n = 40

	for i := 0; i < n; i++ {
		require.NoError(t, b.Key(fmt.Sprintf("k%03d", i)))

		e, p, err := container.MakeString(fmt.Sprintf("v%03d", i))
		require.NoError(t, err)
		require.NoError(t, b.PutRaw(e, p))
	}

	blob, err := b.End()
	require.NoError(t, err)

	view, err := container.Parse(blob)
	require.NoError(t, err)
	require.Equal(t, n, view.Header.Count)

	for i := 0; i < n; i++ {
		key := fmt.Sprintf("k%03d", i)

		_, vb, ok, err := view.Find(key)
		require.NoError(t, err)
		require.True(t, ok, "key %s", key)
		require.Equal(t, fmt.Sprintf("v%03d", i), string(vb))
	}
}

func TestBuilderEndOnEmptyStackErrors(t *testing.T) {
	b := container.New()
	_, err := b.End()
	require.Error(t, err)
}
