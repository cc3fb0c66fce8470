package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
	"github.com/postgraph/gtype/value"
)

func buildObject(t *testing.T, pairs map[string]value.Value) value.Value {
	t.Helper()

	b := container.New()
	b.BeginObject()

	for k, v := range pairs {
		require.NoError(t, b.Key(k))
		require.NoError(t, b.PutRaw(v.Entry(), v.Payload()))
	}

	blob, err := b.End()
	require.NoError(t, err)

	v, err := value.Parse(blob)
	require.NoError(t, err)

	return v
}

func TestScalarRoundTrip(t *testing.T) {
	cases := []value.Value{
		value.Null(),
		value.Bool(true),
		value.Bool(false),
		value.Integer(-42),
		value.Float(3.25),
		value.String("hello, gtype"),
	}

	for _, v := range cases {
		blob, err := v.Bytes()
		require.NoError(t, err)

		got, err := value.Parse(blob)
		require.NoError(t, err)
		require.Equal(t, v.Kind(), got.Kind())

		eq, err := value.Equal(v, got)
		require.NoError(t, err)
		require.True(t, eq)
	}
}

func TestCompareOrdering(t *testing.T) {
	lt, err := value.Lt(value.Integer(1), value.Integer(2))
	require.NoError(t, err)
	require.True(t, lt)

	gt, err := value.Gt(value.Float(2.5), value.Integer(2))
	require.NoError(t, err)
	require.True(t, gt)

	eq, err := value.Eq(value.String("a"), value.String("a"))
	require.NoError(t, err)
	require.True(t, eq)
}

func TestArithAddIntegerAndFloat(t *testing.T) {
	sum, err := value.Add(value.Integer(2), value.Float(1.5))
	require.NoError(t, err)

	f, ok := sum.AsFloat64()
	require.True(t, ok)
	require.InDelta(t, 3.5, f, 1e-9)
}

func TestArithIntegerOverflowErrors(t *testing.T) {
	_, err := value.Add(value.Integer(math.MaxInt64), value.Integer(1))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrIntegerOverflow)

	_, err = value.Sub(value.Integer(math.MinInt64), value.Integer(1))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrIntegerUnderflow)
}

func TestNumericFromString(t *testing.T) {
	n, err := value.NumericFromString("123.456")
	require.NoError(t, err)
	require.Equal(t, value.KindNumeric, n.Kind())

	d, ok := n.AsNumeric()
	require.True(t, ok)
	require.Equal(t, "123.456", d.String())
}

func TestCoerceToInteger(t *testing.T) {
	v, err := value.ToInteger(value.String("17"))
	require.NoError(t, err)

	i, ok := v.AsInt64()
	require.True(t, ok)
	require.Equal(t, int64(17), i)
}

func TestContainsObjectPattern(t *testing.T) {
	doc := buildObject(t, map[string]value.Value{
		"name": value.String("alice"),
		"age":  value.Integer(30),
	})
	pattern := buildObject(t, map[string]value.Value{
		"name": value.String("alice"),
	})
	mismatch := buildObject(t, map[string]value.Value{
		"name": value.String("bob"),
	})

	ok, err := value.Contains(doc, pattern)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = value.Contains(doc, mismatch)
	require.NoError(t, err)
	require.False(t, ok)
}
