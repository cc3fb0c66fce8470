package container

import (
	"github.com/postgraph/gtype/errs"
)

// EntrySize is the byte size of one packed entry word.
const EntrySize = 4

// Stride is the interval at which an entry stores an absolute offset rather
// than a length, bounding random-access cost to at most Stride entries
// scanned (spec §3, glossary "Stride").
const Stride = 32

// EntryType is the 3-bit type tag carried by every entry.
type EntryType uint8

const (
	EntryNull      EntryType = 0
	EntryBoolTrue  EntryType = 1
	EntryBoolFalse EntryType = 2
	EntryString    EntryType = 3
	EntryNumeric   EntryType = 4
	EntryContainer EntryType = 5 // nested container: object, array, or binary
	EntryExtended  EntryType = 6 // extended scalar: payload starts with a 4-byte ExtType tag
)

func (t EntryType) String() string {
	switch t {
	case EntryNull:
		return "NULL"
	case EntryBoolTrue:
		return "BOOL_TRUE"
	case EntryBoolFalse:
		return "BOOL_FALSE"
	case EntryString:
		return "STRING"
	case EntryNumeric:
		return "NUMERIC"
	case EntryContainer:
		return "CONTAINER"
	case EntryExtended:
		return "EXTENDED"
	default:
		return "UNKNOWN"
	}
}

// Entry bit layout (spec §3):
//
//	bits 0-2  (3 bits): typetag
//	bit  3    (1 bit) : hasOffset — 1 if lengthOrOffset is an absolute offset
//	bits 4-31 (28 bits): lengthOrOffset
const (
	typeMask       = 0x7
	hasOffsetShift = 3
	hasOffsetBit   = 1 << hasOffsetShift
	valueShift     = 4
	valueMask      = 0x0FFFFFFF // 28 bits

	// MaxEntryValue bounds both a string's byte length and an absolute
	// offset representable in an entry (spec §5, "Strings ≤ 28-bit entry
	// mask (~256 MiB)").
	MaxEntryValue = valueMask
)

// Entry is the decoded form of one packed 32-bit entry word.
type Entry struct {
	Type      EntryType
	HasOffset bool
	Value     uint32 // a length, or (if HasOffset) an absolute byte offset
}

// Encode packs an Entry into its wire word.
func (e Entry) Encode() uint32 {
	var w uint32
	w |= uint32(e.Type) & typeMask
	if e.HasOffset {
		w |= hasOffsetBit
	}
	w |= (e.Value & valueMask) << valueShift

	return w
}

// DecodeEntry unpacks a wire word into an Entry.
func DecodeEntry(w uint32) Entry {
	return Entry{
		Type:      EntryType(w & typeMask),
		HasOffset: w&hasOffsetBit != 0,
		Value:     (w >> valueShift) & valueMask,
	}
}

// readEntry reads the i-th entry word from a container's entry table.
func readEntry(data []byte, tableOffset, i int) (Entry, error) {
	off := tableOffset + i*EntrySize
	if off+EntrySize > len(data) {
		return Entry{}, errs.ErrInvalidEntry
	}

	return DecodeEntry(wireOrder.Uint32(data[off : off+EntrySize])), nil
}

func putEntry(buf []byte, off int, e Entry) {
	wireOrder.PutUint32(buf[off:off+EntrySize], e.Encode())
}
