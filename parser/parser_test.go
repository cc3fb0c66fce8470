package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/parser"
	"github.com/postgraph/gtype/value"
)

func TestParseBareScalarProducesRawScalar(t *testing.T) {
	blob, err := parser.Parse(`42`)
	require.NoError(t, err)

	view, err := container.Parse(blob)
	require.NoError(t, err)
	require.True(t, view.IsRawScalar())

	v, err := value.Parse(blob)
	require.NoError(t, err)

	i, ok := v.AsInt64()
	require.True(t, ok)
	require.Equal(t, int64(42), i)
}

func TestParseObjectRoundTrip(t *testing.T) {
	blob, err := parser.Parse(`{"name": "alice", "age": 30}`)
	require.NoError(t, err)

	view, err := container.Parse(blob)
	require.NoError(t, err)
	require.Equal(t, container.KindObject, view.Header.Kind)
	require.Equal(t, 2, view.Header.Count)

	_, payload, ok, err := view.Find("name")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "alice", string(payload))
}

func TestParseNestedArrayInObject(t *testing.T) {
	blob, err := parser.Parse(`{"tags": ["a", "b", "c"]}`)
	require.NoError(t, err)

	view, err := container.Parse(blob)
	require.NoError(t, err)

	entry, payload, ok, err := view.Find("tags")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, container.EntryContainer, entry.Type)

	nested, err := container.Parse(payload)
	require.NoError(t, err)
	require.Equal(t, container.KindArray, nested.Header.Kind)
	require.Equal(t, 3, nested.Header.Count)
}

func TestParseTopLevelArrayOfObjects(t *testing.T) {
	blob, err := parser.Parse(`[{"a": 1}, {"a": 2}]`)
	require.NoError(t, err)

	view, err := container.Parse(blob)
	require.NoError(t, err)
	require.Equal(t, container.KindArray, view.Header.Kind)
	require.Equal(t, 2, view.Header.Count)
}

func TestParseAnnotationRetypesScalar(t *testing.T) {
	blob, err := parser.Parse(`"123.456" :: numeric`)
	require.NoError(t, err)

	v, err := value.Parse(blob)
	require.NoError(t, err)
	require.Equal(t, value.KindNumeric, v.Kind())
}

func TestParseUnknownAnnotationErrors(t *testing.T) {
	_, err := parser.Parse(`"x" :: bogus`)
	require.Error(t, err)
}

func TestParseUnexpectedEOFErrors(t *testing.T) {
	_, err := parser.Parse(`{"a":`)
	require.Error(t, err)
}

func TestParseTrailingGarbageErrors(t *testing.T) {
	_, err := parser.Parse(`1 2`)
	require.Error(t, err)
}

func TestParseWithMaxDepthOverride(t *testing.T) {
	_, err := parser.Parse(`[[[1]]]`, parser.WithMaxDepth(2))
	require.Error(t, err)

	_, err = parser.Parse(`[[[1]]]`, parser.WithMaxDepth(10))
	require.NoError(t, err)
}

func TestParseDeepNestingHitsRecursionGuard(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 600; i++ {
		sb.WriteByte('[')
	}
	for i := 0; i < 600; i++ {
		sb.WriteByte(']')
	}

	_, err := parser.Parse(sb.String())
	require.Error(t, err)
}
