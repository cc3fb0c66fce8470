package container

import "github.com/postgraph/gtype/errs"

// The Make* helpers build a standalone (Entry, payload) pair for a scalar,
// usable either as an argument to Builder.push (via the Put* wrappers) or,
// via BuildRawScalar, as a complete root-level value. Centralizing them here
// means value package's scalar constructors and Builder's Put* methods
// never duplicate the length/overflow bookkeeping.

// MakeNull returns the (Entry, payload) pair for a NULL scalar.
func MakeNull() (Entry, []byte) { return Entry{Type: EntryNull}, nil }

// MakeBool returns the (Entry, payload) pair for a BOOL scalar.
func MakeBool(v bool) (Entry, []byte) {
	t := EntryBoolFalse
	if v {
		t = EntryBoolTrue
	}

	return Entry{Type: t}, nil
}

// MakeString returns the (Entry, payload) pair for a STRING scalar.
func MakeString(s string) (Entry, []byte, error) {
	if len(s) > MaxEntryValue {
		return Entry{}, nil, errs.ErrStringTooLong
	}

	return Entry{Type: EntryString, Value: uint32(len(s))}, []byte(s), nil
}

// MakeNumeric returns the (Entry, payload) pair for a NUMERIC scalar, whose
// payload is its canonical decimal text form.
func MakeNumeric(text string) (Entry, []byte, error) {
	if len(text) > MaxEntryValue {
		return Entry{}, nil, errs.ErrStringTooLong
	}

	return Entry{Type: EntryNumeric, Value: uint32(len(text))}, []byte(text), nil
}

// MakeExtended returns the (Entry, payload) pair for an extended scalar,
// prefixing scalar with its ExtType tag.
func MakeExtended(t ExtType, scalar []byte) (Entry, []byte, error) {
	payload := make([]byte, ExtHeaderSize+len(scalar))
	PutExtHeader(payload, t)
	copy(payload[ExtHeaderSize:], scalar)

	if len(payload) > MaxEntryValue {
		return Entry{}, nil, errs.ErrStringTooLong
	}

	return Entry{Type: EntryExtended, Value: uint32(len(payload))}, payload, nil
}

// MakeContainer returns the (Entry, payload) pair for a nested container
// blob (itself the output of Builder.End/Finish).
func MakeContainer(blob []byte) (Entry, []byte, error) {
	if len(blob) > MaxEntryValue {
		return Entry{}, nil, errs.ErrStringTooLong
	}

	return Entry{Type: EntryContainer, Value: uint32(len(blob))}, blob, nil
}
