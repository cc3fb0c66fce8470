// Package value implements gtype's scalar algebra (spec §4.2, component C1):
// every scalar family's text form, coercions, and operators, layered over
// the container package's binary codec. Grounded on the teacher's
// per-family file split (section/numeric_*.go, section/text_*.go) and its
// Parse([]byte) error / Bytes() []byte pair, generalized from two families
// to the full gtype scalar zoo.
package value

import (
	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
)

// Kind identifies a gtype_value variant (spec §3).
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInteger
	KindFloat
	KindNumeric
	KindBool
	KindTimestamp
	KindTimestampTZ
	KindDate
	KindTime
	KindTimeTZ
	KindInterval
	KindInet
	KindCidr
	KindMac
	KindMac8
	KindPoint
	KindLseg
	KindLine
	KindBox
	KindPathG
	KindPolygon
	KindCircle
	KindBox2D
	KindBox3D
	KindSpheroid
	KindGSerialized
	KindTSVector
	KindTSQuery
	KindBytea
	KindRange
	KindMultirange
	KindVector
	KindArray
	KindObject
	KindBinary
)

var kindNames = map[Kind]string{
	KindNull: "NULL", KindString: "STRING", KindInteger: "INTEGER", KindFloat: "FLOAT",
	KindNumeric: "NUMERIC", KindBool: "BOOL", KindTimestamp: "TIMESTAMP",
	KindTimestampTZ: "TIMESTAMPTZ", KindDate: "DATE", KindTime: "TIME", KindTimeTZ: "TIMETZ",
	KindInterval: "INTERVAL", KindInet: "INET", KindCidr: "CIDR", KindMac: "MAC", KindMac8: "MAC8",
	KindPoint: "POINT", KindLseg: "LSEG", KindLine: "LINE", KindBox: "BOX", KindPathG: "PATH_G",
	KindPolygon: "POLYGON", KindCircle: "CIRCLE", KindBox2D: "BOX2D", KindBox3D: "BOX3D",
	KindSpheroid: "SPHEROID", KindGSerialized: "GSERIALIZED", KindTSVector: "TSVECTOR",
	KindTSQuery: "TSQUERY", KindBytea: "BYTEA", KindRange: "RANGE", KindMultirange: "MULTIRANGE",
	KindVector: "VECTOR", KindArray: "ARRAY", KindObject: "OBJECT", KindBinary: "BINARY",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}

	return "UNKNOWN"
}

var extToKind = map[container.ExtType]Kind{
	container.ExtInteger: KindInteger, container.ExtFloat: KindFloat,
	container.ExtTimestamp: KindTimestamp, container.ExtTimestampTZ: KindTimestampTZ,
	container.ExtDate: KindDate, container.ExtTime: KindTime, container.ExtTimeTZ: KindTimeTZ,
	container.ExtInterval: KindInterval, container.ExtInet: KindInet, container.ExtCidr: KindCidr,
	container.ExtMac: KindMac, container.ExtMac8: KindMac8, container.ExtPoint: KindPoint,
	container.ExtLseg: KindLseg, container.ExtLine: KindLine, container.ExtBox: KindBox,
	container.ExtPathG: KindPathG, container.ExtPolygon: KindPolygon, container.ExtCircle: KindCircle,
	container.ExtBox2D: KindBox2D, container.ExtBox3D: KindBox3D, container.ExtSpheroid: KindSpheroid,
	container.ExtGSerialized: KindGSerialized, container.ExtTSVector: KindTSVector,
	container.ExtTSQuery: KindTSQuery, container.ExtBytea: KindBytea, container.ExtRange: KindRange,
	container.ExtMultirange: KindMultirange, container.ExtVector: KindVector,
}

// Value is a handle onto one decoded gtype scalar or container child: an
// (Entry, payload) pair borrowed from a container.View, or freshly built and
// not yet embedded in any container.
type Value struct {
	entry   container.Entry
	payload []byte
}

// FromEntry wraps a raw (Entry, payload) pair — typically returned by
// container.View's Elem/Find/Pairs — as a Value.
func FromEntry(e container.Entry, payload []byte) Value { return Value{entry: e, payload: payload} }

// Entry and Payload expose the raw container-level representation, for
// callers (entity, vle, container-adjacent code) that need to re-embed a
// Value as a child of another container being built.
func (v Value) Entry() container.Entry { return v.entry }
func (v Value) Payload() []byte        { return v.payload }

// Parse decodes a complete gtype blob (the output of Bytes, or of the VLE
// engine, or of the container codec's builder) into a root Value.
func Parse(blob []byte) (Value, error) {
	view, err := container.Parse(blob)
	if err != nil {
		return Value{}, err
	}

	if view.IsRawScalar() {
		e, p, err := view.Elem(0)
		if err != nil {
			return Value{}, err
		}

		return Value{entry: e, payload: p}, nil
	}

	e, p, err := container.MakeContainer(blob)
	if err != nil {
		return Value{}, err
	}

	return Value{entry: e, payload: p}, nil
}

// Bytes serializes v to a complete, self-contained gtype blob: a bare
// scalar is wrapped as a one-element raw_scalar array (spec §3).
func (v Value) Bytes() ([]byte, error) {
	if v.entry.Type == container.EntryContainer {
		return v.payload, nil
	}

	return container.BuildRawScalar(v.entry, v.payload)
}

// Kind reports v's gtype_value variant.
func (v Value) Kind() Kind {
	switch v.entry.Type {
	case container.EntryNull:
		return KindNull
	case container.EntryBoolTrue, container.EntryBoolFalse:
		return KindBool
	case container.EntryString:
		return KindString
	case container.EntryNumeric:
		return KindNumeric
	case container.EntryExtended:
		t, _, err := container.ParseExtHeader(v.payload)
		if err != nil {
			return KindNull
		}

		if k, ok := extToKind[t]; ok {
			return k
		}

		return KindBinary
	case container.EntryContainer:
		view, err := container.Parse(v.payload)
		if err != nil {
			return KindNull
		}

		switch view.Header.Kind {
		case container.KindObject:
			return KindObject
		case container.KindBinary:
			return KindBinary
		default:
			return KindArray
		}
	default:
		return KindNull
	}
}

// IsNull reports whether v is the NULL scalar.
func (v Value) IsNull() bool { return v.entry.Type == container.EntryNull }

// ExtScalar returns the bytes following the ExtType tag for an extended
// scalar Value, or an error if v is not EXTENDED.
func (v Value) ExtScalar() ([]byte, error) {
	if v.entry.Type != container.EntryExtended {
		return nil, errs.ErrTypeMismatch
	}

	_, rest, err := container.ParseExtHeader(v.payload)

	return rest, err
}

// View returns the decoded container.View for an ARRAY/OBJECT/BINARY Value.
func (v Value) View() (*container.View, error) {
	if v.entry.Type != container.EntryContainer {
		return nil, errs.ErrNotContainer
	}

	return container.Parse(v.payload)
}

// Equal reports whether a and b compare equal (spec §4.1 compare_orderability == 0).
func Equal(a, b Value) (bool, error) {
	c, err := Compare(a, b)
	if err != nil {
		return false, err
	}

	return c == 0, nil
}

// Compare implements the total order of spec §4.1 over two Values.
func Compare(a, b Value) (int, error) {
	return container.Compare(a.entry, a.payload, b.entry, b.payload)
}

// Contains implements spec §4.1 deep_contains(doc=a, pattern=b).
func Contains(doc, pattern Value) (bool, error) {
	return container.Contains(doc.entry, doc.payload, pattern.entry, pattern.payload)
}

// Hash implements spec §4.1 hash(value, seed).
func Hash(v Value, seed uint64) (uint64, error) {
	return container.Hash(v.entry, v.payload, seed)
}
