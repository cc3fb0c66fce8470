package value

import "github.com/postgraph/gtype/container"

// Null builds the NULL scalar.
func Null() Value {
	e, p := container.MakeNull()
	return Value{entry: e, payload: p}
}

// Bool builds a BOOL scalar.
func Bool(b bool) Value {
	e, p := container.MakeBool(b)
	return Value{entry: e, payload: p}
}

// AsBool returns v's boolean value, if v is a BOOL.
func (v Value) AsBool() (bool, bool) {
	switch v.entry.Type {
	case container.EntryBoolTrue:
		return true, true
	case container.EntryBoolFalse:
		return false, true
	default:
		return false, false
	}
}

// String builds a STRING scalar. Strings longer than the 28-bit entry mask
// are rejected by the caller's Bytes()/embedding step, not here.
func String(s string) Value {
	e, p, err := container.MakeString(s)
	if err != nil {
		// length checked again, authoritatively, at embed time; a Value
		// representing an oversized string still round-trips through Kind
		// and AsString so callers can surface errs.ErrStringTooLong from Bytes().
		return Value{entry: container.Entry{Type: container.EntryString}, payload: []byte(s)}
	}

	return Value{entry: e, payload: p}
}

// AsString returns v's string payload, if v is a STRING.
func (v Value) AsString() (string, bool) {
	if v.entry.Type != container.EntryString {
		return "", false
	}

	return string(v.payload), true
}
