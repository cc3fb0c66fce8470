package value

import (
	"fmt"
	"time"

	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
)

// Temporal scalars are encoded as fixed-width extended payloads:
//
//	TIMESTAMP/TIMESTAMPTZ: int64 microseconds since the Unix epoch (UTC)
//	DATE:                  int64 days since the Unix epoch
//	TIME:                  int64 microseconds since midnight
//	TIMETZ:                int64 microseconds since midnight, int32 zone offset seconds
//	INTERVAL:               int32 months, int32 days, int64 microseconds
//
// Output matches the XSD date-time format (spec §4.2), i.e. RFC 3339 with
// microsecond precision.
const xsdLayout = "2006-01-02T15:04:05.999999Z07:00"

func isTemporal(k Kind) bool {
	switch k {
	case KindTimestamp, KindTimestampTZ, KindDate, KindTime, KindTimeTZ:
		return true
	default:
		return false
	}
}

// Timestamp builds a TIMESTAMP scalar (naive wall-clock instant).
func Timestamp(t time.Time) Value {
	e, p, _ := container.MakeExtended(container.ExtTimestamp, encodeInt64(t.UTC().UnixMicro()))
	return Value{entry: e, payload: p}
}

// TimestampTZ builds a TIMESTAMPTZ scalar (a UTC instant).
func TimestampTZ(t time.Time) Value {
	e, p, _ := container.MakeExtended(container.ExtTimestampTZ, encodeInt64(t.UTC().UnixMicro()))
	return Value{entry: e, payload: p}
}

// Date builds a DATE scalar.
func Date(t time.Time) Value {
	days := t.UTC().Truncate(24 * time.Hour).Unix() / 86400
	e, p, _ := container.MakeExtended(container.ExtDate, encodeInt64(days))

	return Value{entry: e, payload: p}
}

// TimeOfDay builds a TIME scalar from microseconds since midnight.
func TimeOfDay(micros int64) Value {
	e, p, _ := container.MakeExtended(container.ExtTime, encodeInt64(micros))
	return Value{entry: e, payload: p}
}

// TimeTZ builds a TIMETZ scalar: microseconds since midnight plus a zone
// offset in seconds east of UTC.
func TimeTZ(micros int64, offsetSeconds int32) Value {
	buf := make([]byte, 12)
	wireOrder.PutUint64(buf[:8], uint64(micros))
	wireOrder.PutUint32(buf[8:], uint32(offsetSeconds))
	e, p, _ := container.MakeExtended(container.ExtTimeTZ, buf)

	return Value{entry: e, payload: p}
}

// Interval builds an INTERVAL scalar from its months/days/microseconds
// components (spec §3, "INTERVAL{months,days,micros}").
func Interval(months, days int32, micros int64) Value {
	buf := make([]byte, 16)
	wireOrder.PutUint32(buf[0:4], uint32(months))
	wireOrder.PutUint32(buf[4:8], uint32(days))
	wireOrder.PutUint64(buf[8:16], uint64(micros))
	e, p, _ := container.MakeExtended(container.ExtInterval, buf)

	return Value{entry: e, payload: p}
}

// AsTimestamp returns v's instant, if v is TIMESTAMP or TIMESTAMPTZ.
func (v Value) AsTimestamp() (time.Time, bool) {
	if s, ok := v.extScalarOf(container.ExtTimestamp); ok {
		return time.UnixMicro(decodeInt64(s)).UTC(), true
	}

	if s, ok := v.extScalarOf(container.ExtTimestampTZ); ok {
		return time.UnixMicro(decodeInt64(s)).UTC(), true
	}

	return time.Time{}, false
}

// AsDate returns v's calendar date, if v is a DATE.
func (v Value) AsDate() (time.Time, bool) {
	s, ok := v.extScalarOf(container.ExtDate)
	if !ok {
		return time.Time{}, false
	}

	days := decodeInt64(s)

	return time.Unix(days*86400, 0).UTC(), true
}

// AsTimeMicros returns v's microseconds-since-midnight, if v is TIME or TIMETZ.
func (v Value) AsTimeMicros() (int64, bool) {
	if s, ok := v.extScalarOf(container.ExtTime); ok {
		return decodeInt64(s), true
	}

	if s, ok := v.extScalarOf(container.ExtTimeTZ); ok {
		return decodeInt64(s[:8]), true
	}

	return 0, false
}

// AsInterval returns v's months/days/microseconds, if v is an INTERVAL.
func (v Value) AsInterval() (months, days int32, micros int64, ok bool) {
	s, ok := v.extScalarOf(container.ExtInterval)
	if !ok {
		return 0, 0, 0, false
	}

	months = int32(wireOrder.Uint32(s[0:4]))
	days = int32(wireOrder.Uint32(s[4:8]))
	micros = int64(wireOrder.Uint64(s[8:16]))

	return months, days, micros, true
}

func negateInterval(v Value) (Value, error) {
	mo, d, mi, ok := v.AsInterval()
	if !ok {
		return Value{}, &errs.TypeError{Op: "neg", Left: v.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	return Interval(-mo, -d, -mi), nil
}

func addIntervals(a, b Value) (Value, error) {
	amo, ad, ami, _ := a.AsInterval()
	bmo, bd, bmi, _ := b.AsInterval()

	return Interval(amo+bmo, ad+bd, ami+bmi), nil
}

// addIntervalToTemporal implements "timestamp ± interval → timestamp",
// "date ± interval → timestamptz" (spec §4.2): adding a calendar interval
// to a date promotes the result to a concrete instant since the interval
// may carry a sub-day component.
func addIntervalToTemporal(t, iv Value) (Value, error) {
	mo, d, mi, ok := iv.AsInterval()
	if !ok {
		return Value{}, typeErr("+", t, iv, errs.ErrTypeMismatch)
	}

	switch t.Kind() {
	case KindTimestamp:
		ts, _ := t.AsTimestamp()
		ts = ts.AddDate(0, int(mo), int(d)).Add(time.Duration(mi) * time.Microsecond)

		return Timestamp(ts), nil

	case KindTimestampTZ:
		ts, _ := t.AsTimestamp()
		ts = ts.AddDate(0, int(mo), int(d)).Add(time.Duration(mi) * time.Microsecond)

		return TimestampTZ(ts), nil

	case KindDate:
		dt, _ := t.AsDate()
		dt = dt.AddDate(0, int(mo), int(d)).Add(time.Duration(mi) * time.Microsecond)

		return TimestampTZ(dt), nil

	default:
		return Value{}, typeErr("+", t, iv, errs.ErrTypeMismatch)
	}
}

// Render produces the XSD date-time text form for temporal values.
func (v Value) renderTemporal() (string, bool) {
	switch v.Kind() {
	case KindTimestamp, KindTimestampTZ:
		t, _ := v.AsTimestamp()
		return t.Format(xsdLayout), true
	case KindDate:
		t, _ := v.AsDate()
		return t.Format("2006-01-02"), true
	case KindTime:
		micros, _ := v.AsTimeMicros()
		return fmt.Sprintf("%02d:%02d:%02d.%06d", micros/3600000000, (micros/60000000)%60, (micros/1000000)%60, micros%1000000), true
	case KindTimeTZ:
		micros, _ := v.AsTimeMicros()
		return fmt.Sprintf("%02d:%02d:%02d.%06d", micros/3600000000, (micros/60000000)%60, (micros/1000000)%60, micros%1000000), true
	case KindInterval:
		mo, d, mi, _ := v.AsInterval()
		return fmt.Sprintf("P%dM%dDT%dS", mo, d, mi/1000000), true
	default:
		return "", false
	}
}

func init() {
	container.RegisterExtComparator(container.ExtTimestamp, compareInt64Payload)
	container.RegisterExtComparator(container.ExtTimestampTZ, compareInt64Payload)
	container.RegisterExtComparator(container.ExtDate, compareInt64Payload)
	container.RegisterExtComparator(container.ExtTime, compareInt64Payload)
}

func compareInt64Payload(a, b []byte) (int, error) {
	x, y := decodeInt64(a), decodeInt64(b)

	switch {
	case x < y:
		return -1, nil
	case x > y:
		return 1, nil
	default:
		return 0, nil
	}
}
