// Package container implements gtype's binary container codec (spec §3, §4.1):
// the varlena layout, its builder, its iterator, and the structural
// algorithms (compare, deep-contains, hash) that operate directly on the
// encoded bytes. Header is read with ParseHeader and written with
// Header.Bytes, generalized from two fixed numeric/text layouts to one
// recursive, self-describing layout.
package container

import (
	"github.com/postgraph/gtype/errs"
	"github.com/postgraph/gtype/internal/endian"
)

// wireOrder is the byte order every multi-byte container field is encoded
// with, regardless of host architecture (spec §3).
var wireOrder = endian.LittleEndian()

// HeaderSize is the byte size of a container's leading header word.
const HeaderSize = 4

// Bit layout of the 32-bit header word (spec §3):
//
//	bits 0-11  (12 bits): Count  — number of children, 0..4095
//	bits 12-15 ( 4 bits): Kind   — container kind (ARRAY/OBJECT/BINARY)
//	bits 16-31 (16 bits): Subtype — composite-entity refinement, or 0
const (
	countMask   = 0x0FFF
	kindShift   = 12
	kindMask    = 0xF
	subtyShift  = 16
	MaxCount    = countMask
)

// Header is the fixed 4-byte leading word of a container.
type Header struct {
	Count   int
	Kind    Kind
	Subtype Subtype
}

// Encode packs the header into its 32-bit wire representation.
func (h Header) Encode() uint32 {
	var w uint32
	w |= uint32(h.Count) & countMask
	w |= (uint32(h.Kind) & kindMask) << kindShift
	w |= uint32(h.Subtype) << subtyShift

	return w
}

// DecodeHeader unpacks a 32-bit word into a Header.
func DecodeHeader(w uint32) Header {
	return Header{
		Count:   int(w & countMask),
		Kind:    Kind((w >> kindShift) & kindMask),
		Subtype: Subtype(w >> subtyShift),
	}
}

// ParseHeader reads the header word from the start of a container's bytes.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeader
	}

	return DecodeHeader(wireOrder.Uint32(data[:HeaderSize])), nil
}

// Bytes serializes the header to its 4-byte wire form.
func (h Header) Bytes() []byte {
	buf := make([]byte, HeaderSize)
	wireOrder.PutUint32(buf, h.Encode())

	return buf
}
