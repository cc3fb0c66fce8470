package value

import (
	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
)

// RANGE payloads are a 1-byte bound-inclusivity/infinity flag set followed
// by length-prefixed lower and upper bound blobs (each a complete, embedded
// gtype scalar produced by Value.Bytes; a zero length means an infinite
// bound on that side). MULTIRANGE payloads are a count followed by that
// many length-prefixed RANGE blobs. Range elements are restricted to the
// NUMERIC family or a temporal scalar — PostgreSQL supports arbitrary
// discrete/continuous range subtypes, but gtype's graph-property domain
// only ever needs numeric and temporal ranges (recorded in DESIGN.md).
const (
	rangeLowerInclusive = 1 << 0
	rangeUpperInclusive = 1 << 1
	rangeLowerInfinite  = 1 << 2
	rangeUpperInfinite  = 1 << 3
)

// RangeBounds describes one RANGE's endpoints and inclusivity, per
// PostgreSQL's "[]/[)/(]/()" bound-flag notation.
type RangeBounds struct {
	Lower          Value
	Upper          Value
	LowerInclusive bool
	UpperInclusive bool
	LowerInfinite  bool
	UpperInfinite  bool
}

func encodeBound(v Value, infinite bool) ([]byte, error) {
	if infinite {
		return make([]byte, 4), nil
	}

	blob, err := v.Bytes()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 4+len(blob))
	wireOrder.PutUint32(out[:4], uint32(len(blob)))
	copy(out[4:], blob)

	return out, nil
}

func decodeBound(b []byte) (Value, []byte, error) {
	if len(b) < 4 {
		return Value{}, nil, errs.ErrInvalidEntry
	}

	n := wireOrder.Uint32(b[:4])
	rest := b[4:]

	if n == 0 {
		return Value{}, rest, nil
	}

	if uint32(len(rest)) < n {
		return Value{}, nil, errs.ErrInvalidEntry
	}

	v, err := Parse(rest[:n])
	if err != nil {
		return Value{}, nil, err
	}

	return v, rest[n:], nil
}

// Range builds a RANGE scalar.
func Range(b RangeBounds) (Value, error) {
	for _, bound := range []struct {
		v        Value
		infinite bool
	}{{b.Lower, b.LowerInfinite}, {b.Upper, b.UpperInfinite}} {
		if !bound.infinite && !bound.v.isNumericFamily() && !isTemporal(bound.v.Kind()) {
			return Value{}, &errs.TypeError{Op: "range", Left: bound.v.Kind().String(), Err: errs.ErrTypeMismatch}
		}
	}

	flags := byte(0)
	if b.LowerInclusive {
		flags |= rangeLowerInclusive
	}

	if b.UpperInclusive {
		flags |= rangeUpperInclusive
	}

	if b.LowerInfinite {
		flags |= rangeLowerInfinite
	}

	if b.UpperInfinite {
		flags |= rangeUpperInfinite
	}

	lo, err := encodeBound(b.Lower, b.LowerInfinite)
	if err != nil {
		return Value{}, err
	}

	hi, err := encodeBound(b.Upper, b.UpperInfinite)
	if err != nil {
		return Value{}, err
	}

	scalar := make([]byte, 0, 1+len(lo)+len(hi))
	scalar = append(scalar, flags)
	scalar = append(scalar, lo...)
	scalar = append(scalar, hi...)

	e, p, err := container.MakeExtended(container.ExtRange, scalar)
	if err != nil {
		return Value{}, err
	}

	return Value{entry: e, payload: p}, nil
}

// AsRange decodes v's bounds, if v is a RANGE.
func (v Value) AsRange() (RangeBounds, bool) {
	s, ok := v.extScalarOf(container.ExtRange)
	if !ok || len(s) < 1 {
		return RangeBounds{}, false
	}

	flags := s[0]
	rest := s[1:]

	lower, rest, err := decodeBound(rest)
	if err != nil {
		return RangeBounds{}, false
	}

	upper, _, err := decodeBound(rest)
	if err != nil {
		return RangeBounds{}, false
	}

	return RangeBounds{
		Lower:          lower,
		Upper:          upper,
		LowerInclusive: flags&rangeLowerInclusive != 0,
		UpperInclusive: flags&rangeUpperInclusive != 0,
		LowerInfinite:  flags&rangeLowerInfinite != 0,
		UpperInfinite:  flags&rangeUpperInfinite != 0,
	}, true
}

// RangeContainsValue implements '@>' between a range and a scalar element.
func RangeContainsValue(r, elem Value) (bool, error) {
	b, ok := r.AsRange()
	if !ok {
		return false, &errs.TypeError{Op: "@>", Left: r.Kind().String(), Right: elem.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	if !b.LowerInfinite {
		c, err := Compare(b.Lower, elem)
		if err != nil {
			return false, err
		}

		if c > 0 || (c == 0 && !b.LowerInclusive) {
			return false, nil
		}
	}

	if !b.UpperInfinite {
		c, err := Compare(elem, b.Upper)
		if err != nil {
			return false, err
		}

		if c > 0 || (c == 0 && !b.UpperInclusive) {
			return false, nil
		}
	}

	return true, nil
}

// RangeOverlaps implements '&&' between two ranges.
func RangeOverlaps(a, b Value) (bool, error) {
	ba, ok := a.AsRange()
	if !ok {
		return false, &errs.TypeError{Op: "&&", Left: a.Kind().String(), Right: b.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	bb, ok := b.AsRange()
	if !ok {
		return false, &errs.TypeError{Op: "&&", Left: a.Kind().String(), Right: b.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	if !ba.UpperInfinite && !bb.LowerInfinite {
		c, err := Compare(ba.Upper, bb.Lower)
		if err != nil {
			return false, err
		}

		if c < 0 || (c == 0 && !(ba.UpperInclusive && bb.LowerInclusive)) {
			return false, nil
		}
	}

	if !bb.UpperInfinite && !ba.LowerInfinite {
		c, err := Compare(bb.Upper, ba.Lower)
		if err != nil {
			return false, err
		}

		if c < 0 || (c == 0 && !(bb.UpperInclusive && ba.LowerInclusive)) {
			return false, nil
		}
	}

	return true, nil
}

// Multirange builds a MULTIRANGE scalar from a set of RANGE values.
func Multirange(ranges []Value) (Value, error) {
	scalar := make([]byte, 4)
	wireOrder.PutUint32(scalar, uint32(len(ranges)))

	for _, r := range ranges {
		blob, err := r.Bytes()
		if err != nil {
			return Value{}, err
		}

		lenBuf := make([]byte, 4)
		wireOrder.PutUint32(lenBuf, uint32(len(blob)))
		scalar = append(scalar, lenBuf...)
		scalar = append(scalar, blob...)
	}

	e, p, err := container.MakeExtended(container.ExtMultirange, scalar)
	if err != nil {
		return Value{}, err
	}

	return Value{entry: e, payload: p}, nil
}

// AsMultirange decodes v's member ranges, if v is a MULTIRANGE.
func (v Value) AsMultirange() ([]Value, bool) {
	s, ok := v.extScalarOf(container.ExtMultirange)
	if !ok || len(s) < 4 {
		return nil, false
	}

	n := wireOrder.Uint32(s[:4])
	rest := s[4:]
	out := make([]Value, 0, n)

	for i := uint32(0); i < n; i++ {
		if len(rest) < 4 {
			return nil, false
		}

		l := wireOrder.Uint32(rest[:4])
		rest = rest[4:]

		if uint32(len(rest)) < l {
			return nil, false
		}

		rv, err := Parse(rest[:l])
		if err != nil {
			return nil, false
		}

		out = append(out, rv)
		rest = rest[l:]
	}

	return out, true
}
