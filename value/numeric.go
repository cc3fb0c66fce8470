package value

import (
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
)

func encodeInt64(i int64) []byte {
	b := make([]byte, 8)
	wireOrder.PutUint64(b, uint64(i))

	return b
}

func decodeInt64(b []byte) int64 { return int64(wireOrder.Uint64(b)) }

func encodeFloat64(f float64) []byte {
	b := make([]byte, 8)
	wireOrder.PutUint64(b, math.Float64bits(f))

	return b
}

func decodeFloat64(b []byte) float64 { return math.Float64frombits(wireOrder.Uint64(b)) }

// Integer builds an INTEGER scalar (i64), one of the two fast-path
// NUMERIC-family extended scalars (spec §9, the other being FLOAT).
func Integer(i int64) Value {
	e, p, _ := container.MakeExtended(container.ExtInteger, encodeInt64(i))
	return Value{entry: e, payload: p}
}

// Float builds a FLOAT scalar (f64).
func Float(f float64) Value {
	e, p, _ := container.MakeExtended(container.ExtFloat, encodeFloat64(f))
	return Value{entry: e, payload: p}
}

// Numeric builds a NUMERIC scalar from an arbitrary-precision decimal.
func Numeric(d *apd.Decimal) Value {
	e, p, _ := container.MakeNumeric(d.String())
	return Value{entry: e, payload: p}
}

// NumericFromString parses text as an arbitrary-precision decimal and builds
// a NUMERIC scalar.
func NumericFromString(text string) (Value, error) {
	d, _, err := apd.NewFromString(text)
	if err != nil {
		return Value{}, &errs.ParseError{Err: err, Excerpt: text}
	}

	return Numeric(d), nil
}

// AsInt64 returns v's integer value, if v is an INTEGER.
func (v Value) AsInt64() (int64, bool) {
	scalar, ok := v.extScalarOf(container.ExtInteger)
	if !ok {
		return 0, false
	}

	return decodeInt64(scalar), true
}

// AsFloat64 returns v's float value, if v is a FLOAT.
func (v Value) AsFloat64() (float64, bool) {
	scalar, ok := v.extScalarOf(container.ExtFloat)
	if !ok {
		return 0, false
	}

	return decodeFloat64(scalar), true
}

// AsNumeric returns v's decimal value, if v is a NUMERIC.
func (v Value) AsNumeric() (*apd.Decimal, bool) {
	if v.entry.Type != container.EntryNumeric {
		return nil, false
	}

	d, _, err := apd.NewFromString(string(v.payload))
	if err != nil {
		return nil, false
	}

	return d, true
}

func (v Value) extScalarOf(want container.ExtType) ([]byte, bool) {
	if v.entry.Type != container.EntryExtended {
		return nil, false
	}

	t, rest, err := container.ParseExtHeader(v.payload)
	if err != nil || t != want {
		return nil, false
	}

	return rest, true
}

// isNumericFamily reports whether v is INTEGER, FLOAT, or NUMERIC.
func (v Value) isNumericFamily() bool {
	switch v.Kind() {
	case KindInteger, KindFloat, KindNumeric:
		return true
	default:
		return false
	}
}

// AsDecimal returns any NUMERIC-family value (INTEGER, FLOAT, or NUMERIC) as
// an apd.Decimal, for use by the promoted-arithmetic path in arith.go.
func (v Value) AsDecimal() (*apd.Decimal, bool) {
	switch v.Kind() {
	case KindInteger:
		i, _ := v.AsInt64()
		return apd.New(i, 0), true
	case KindFloat:
		f, _ := v.AsFloat64()
		d, _, err := apd.NewFromString(strconv.FormatFloat(f, 'g', -1, 64))
		if err != nil {
			return nil, false
		}

		return d, true
	case KindNumeric:
		return v.AsNumeric()
	default:
		return nil, false
	}
}

