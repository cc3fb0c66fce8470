package container

import (
	"github.com/postgraph/gtype/errs"
)

// ExtType is the 4-byte tag prepended to the payload of every EntryExtended
// child (spec §3, "Extended-type sidecar"). New scalar families are added by
// allocating a new ExtType constant — the container walker itself never
// needs to change.
type ExtType uint32

const (
	ExtInteger ExtType = iota + 1
	ExtFloat
	ExtTimestamp
	ExtTimestampTZ
	ExtDate
	ExtTime
	ExtTimeTZ
	ExtInterval
	ExtInet
	ExtCidr
	ExtMac
	ExtMac8
	ExtPoint
	ExtLseg
	ExtLine
	ExtBox
	ExtPathG
	ExtPolygon
	ExtCircle
	ExtBox2D
	ExtBox3D
	ExtSpheroid
	ExtGSerialized
	ExtTSVector
	ExtTSQuery
	ExtBytea
	ExtRange
	ExtMultirange
	ExtVector
	ExtVertex
	ExtEdge
	ExtPath
	ExtPartialPath
	ExtVariableEdge
)

// ExtHeaderSize is the byte size of the leading ExtType tag word.
const ExtHeaderSize = 4

// PutExtHeader writes the ExtType tag at the start of buf.
func PutExtHeader(buf []byte, t ExtType) {
	wireOrder.PutUint32(buf[:ExtHeaderSize], uint32(t))
}

// ParseExtHeader reads the ExtType tag from the start of an extended
// payload, returning the tag and the remaining payload bytes.
func ParseExtHeader(data []byte) (ExtType, []byte, error) {
	if len(data) < ExtHeaderSize {
		return 0, nil, errs.ErrInvalidEntry
	}

	return ExtType(wireOrder.Uint32(data[:ExtHeaderSize])), data[ExtHeaderSize:], nil
}
