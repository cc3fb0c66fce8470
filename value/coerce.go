package value

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/postgraph/gtype/errs"
)

// ToInteger implements toInteger(): numeric-family narrowing, string
// parsing, and bool-to-{0,1} (spec §4.2 coercion table).
func ToInteger(v Value) (Value, error) {
	switch v.Kind() {
	case KindInteger:
		return v, nil
	case KindFloat:
		f, _ := v.AsFloat64()
		return Integer(int64(f)), nil
	case KindNumeric:
		d, _ := v.AsNumeric()
		i, err := d.Int64()
		if err != nil {
			return Value{}, &errs.DomainError{Detail: "numeric does not fit in integer", Err: errs.ErrCoercionFailed}
		}

		return Integer(i), nil
	case KindBool:
		b, _ := v.AsBool()
		if b {
			return Integer(1), nil
		}

		return Integer(0), nil
	case KindString:
		s, _ := v.AsString()

		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return Value{}, &errs.ParseError{Err: errs.ErrCoercionFailed, Excerpt: s}
		}

		return Integer(i), nil
	default:
		return Value{}, coerceErr("toInteger", v)
	}
}

// ToFloat implements toFloat().
func ToFloat(v Value) (Value, error) {
	switch v.Kind() {
	case KindFloat:
		return v, nil
	case KindInteger:
		i, _ := v.AsInt64()
		return Float(float64(i)), nil
	case KindNumeric:
		d, _ := v.AsNumeric()
		f, err := d.Float64()
		if err != nil {
			return Value{}, &errs.DomainError{Detail: "numeric does not fit in float", Err: errs.ErrCoercionFailed}
		}

		return Float(f), nil
	case KindString:
		s, _ := v.AsString()

		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return Value{}, &errs.ParseError{Err: errs.ErrCoercionFailed, Excerpt: s}
		}

		return Float(f), nil
	default:
		return Value{}, coerceErr("toFloat", v)
	}
}

// ToNumeric implements toNumeric().
func ToNumeric(v Value) (Value, error) {
	switch v.Kind() {
	case KindNumeric:
		return v, nil
	case KindInteger:
		i, _ := v.AsInt64()
		return Numeric(apd.New(i, 0)), nil
	case KindFloat:
		f, _ := v.AsFloat64()
		return NumericFromString(strconv.FormatFloat(f, 'g', -1, 64))
	case KindString:
		s, _ := v.AsString()
		return NumericFromString(strings.TrimSpace(s))
	default:
		return Value{}, coerceErr("toNumeric", v)
	}
}

// ToStringValue implements toString(): the text-form renderer for every
// scalar family, reused by the parser's render path.
func ToStringValue(v Value) (Value, error) {
	s, err := RenderText(v)
	if err != nil {
		return Value{}, err
	}

	return String(s), nil
}

// RenderText produces the canonical text form of any gtype scalar.
func RenderText(v Value) (string, error) {
	if s, ok := v.renderAsText(); ok {
		return s, nil
	}

	if v.Kind() == KindBool {
		b, _ := v.AsBool()
		return strconv.FormatBool(b), nil
	}

	if s, ok := v.renderTemporal(); ok {
		return s, nil
	}

	if s, ok := v.renderNetwork(); ok {
		return s, nil
	}

	if v.IsNull() {
		return "", nil
	}

	return "", coerceErr("toString", v)
}

// ToTimestamp implements toTimestamp(): string parse (RFC3339/XSD) or
// integer-micros-since-epoch.
func ToTimestamp(v Value) (Value, error) {
	switch v.Kind() {
	case KindTimestamp, KindTimestampTZ:
		return v, nil
	case KindString:
		s, _ := v.AsString()

		t, err := time.Parse(xsdLayout, s)
		if err != nil {
			t, err = time.Parse(time.RFC3339, s)
			if err != nil {
				return Value{}, &errs.ParseError{Err: errs.ErrCoercionFailed, Excerpt: s}
			}
		}

		return Timestamp(t), nil
	case KindInteger:
		i, _ := v.AsInt64()
		return Timestamp(time.UnixMicro(i)), nil
	default:
		return Value{}, coerceErr("toTimestamp", v)
	}
}

// ToTimestampTZ implements toTimestampTz().
func ToTimestampTZ(v Value) (Value, error) {
	ts, err := ToTimestamp(v)
	if err != nil {
		return Value{}, err
	}

	t, _ := ts.AsTimestamp()

	return TimestampTZ(t), nil
}

// ToDate implements toDate().
func ToDate(v Value) (Value, error) {
	switch v.Kind() {
	case KindDate:
		return v, nil
	case KindTimestamp, KindTimestampTZ:
		t, _ := v.AsTimestamp()
		return Date(t), nil
	case KindString:
		s, _ := v.AsString()

		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return Value{}, &errs.ParseError{Err: errs.ErrCoercionFailed, Excerpt: s}
		}

		return Date(t), nil
	default:
		return Value{}, coerceErr("toDate", v)
	}
}

// ToTime implements toTime() (microseconds since midnight).
func ToTime(v Value) (Value, error) {
	switch v.Kind() {
	case KindTime:
		return v, nil
	case KindTimeTZ:
		m, _ := v.AsTimeMicros()
		return TimeOfDay(m), nil
	case KindString:
		s, _ := v.AsString()

		t, err := time.Parse("15:04:05.999999", s)
		if err != nil {
			return Value{}, &errs.ParseError{Err: errs.ErrCoercionFailed, Excerpt: s}
		}

		micros := int64(t.Hour())*3600e6 + int64(t.Minute())*60e6 + int64(t.Second())*1e6 + int64(t.Nanosecond())/1000

		return TimeOfDay(micros), nil
	default:
		return Value{}, coerceErr("toTime", v)
	}
}

// ToTimeTZ implements toTimeTz() with a UTC (zero-offset) zone.
func ToTimeTZ(v Value) (Value, error) {
	t, err := ToTime(v)
	if err != nil {
		return Value{}, err
	}

	m, _ := t.AsTimeMicros()

	return TimeTZ(m, 0), nil
}

// ToInterval implements toInterval() from an ISO-8601-ish "PnMnDTnS" string.
func ToInterval(v Value) (Value, error) {
	switch v.Kind() {
	case KindInterval:
		return v, nil
	case KindString:
		s, _ := v.AsString()

		var months, days int32

		var micros int64

		if _, err := fmt.Sscanf(s, "P%dM%dDT%dS", &months, &days, &micros); err != nil {
			return Value{}, &errs.ParseError{Err: errs.ErrCoercionFailed, Excerpt: s}
		}

		return Interval(months, days, micros*1_000_000), nil
	default:
		return Value{}, coerceErr("toInterval", v)
	}
}

// ToVector implements toVector() from an ARRAY-like sequence of numeric
// Values (callers pass the already-decoded elements; the container-level
// ARRAY walk happens in the entity/container layers).
func ToVector(elems []Value) (Value, error) {
	fs := make([]float64, len(elems))

	for i, e := range elems {
		f, err := ToFloat(e)
		if err != nil {
			return Value{}, err
		}

		fs[i], _ = f.AsFloat64()
	}

	return NewVector(fs)
}

// ToInet implements toInet().
func ToInet(v Value) (Value, error) {
	switch v.Kind() {
	case KindInet, KindCidr:
		p, _ := v.AsInet()
		return Inet(p), nil
	case KindString:
		s, _ := v.AsString()
		return InetFromString(s)
	default:
		return Value{}, coerceErr("toInet", v)
	}
}

// ToCidr implements toCidr().
func ToCidr(v Value) (Value, error) {
	switch v.Kind() {
	case KindCidr:
		return v, nil
	case KindInet:
		p, _ := v.AsInet()
		return Cidr(p.Masked()), nil
	case KindString:
		s, _ := v.AsString()
		return CidrFromString(s)
	default:
		return Value{}, coerceErr("toCidr", v)
	}
}

// ToMacaddr implements toMacaddr() (6-byte EUI-48).
func ToMacaddr(v Value) (Value, error) {
	switch v.Kind() {
	case KindMac:
		return v, nil
	case KindMac8:
		hw, _ := v.AsMac()
		return Mac(net.HardwareAddr(hw[:6])), nil
	case KindString:
		s, _ := v.AsString()
		return MacFromString(s)
	default:
		return Value{}, coerceErr("toMacaddr", v)
	}
}

// ToMacaddr8 implements toMacaddr8() (8-byte EUI-64, expanding a bare
// EUI-48 by inserting FF:FE between its third and fourth bytes; no bit of
// the address is inverted).
func ToMacaddr8(v Value) (Value, error) {
	switch v.Kind() {
	case KindMac8:
		return v, nil
	case KindMac:
		hw, _ := v.AsMac()
		expanded := net.HardwareAddr{hw[0], hw[1], hw[2], 0xFF, 0xFE, hw[3], hw[4], hw[5]}

		return Mac8(expanded), nil
	case KindString:
		s, _ := v.AsString()
		return MacFromString(s)
	default:
		return Value{}, coerceErr("toMacaddr8", v)
	}
}

func coerceErr(fn string, v Value) error {
	return &errs.TypeError{Op: fn, Left: v.Kind().String(), Err: errs.ErrCoercionFailed}
}
