package container

import (
	"bytes"
	"sort"

	"github.com/postgraph/gtype/errs"
)

// View is a borrowed, read-only handle onto a parsed container's bytes. It
// must not outlive the buffer it was parsed from (spec §3 Lifecycle:
// "Iterators borrow the buffer and must not outlive it").
type View struct {
	Header        Header
	data          []byte
	entryTableOff int
	dataOff       int
	numEntries    int // Count for ARRAY/BINARY, 2*Count for OBJECT
}

// Parse reads a container's header and entry table from data. data must
// contain at least one full container (it may have trailing bytes, e.g.
// when data is itself a slice of a larger parent payload).
func Parse(data []byte) (*View, error) {
	hdr, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	n := hdr.Count
	if hdr.Kind == KindObject {
		n *= 2
	}

	entryTableOff := HeaderSize
	dataOff := entryTableOff + n*EntrySize

	if dataOff > len(data) {
		return nil, errs.ErrInvalidEntry
	}

	return &View{Header: hdr, data: data, entryTableOff: entryTableOff, dataOff: dataOff, numEntries: n}, nil
}

// Bytes returns the full backing buffer this view was parsed from.
func (v *View) Bytes() []byte { return v.data }

func (v *View) entryAt(i int) (Entry, error) { return readEntry(v.data, v.entryTableOff, i) }

// offsetOf returns the absolute (from payload start) byte offset of child i,
// scanning at most Stride preceding entries (spec §3 invariant 2).
//
// The stride entry at the end of each block stores the cumulative aligned
// length of every child up to and including itself — i.e. the offset at
// which the following entry begins (Builder.closePositional/closeObject fold
// the stride entry's own aligned length into cum before storing it), so base
// already accounts for entry j and the scan below starts fresh at j+1.
func (v *View) offsetOf(i int) (int, error) {
	if i < 0 || i >= v.numEntries {
		return 0, errs.ErrIndexOutOfRange
	}

	block := i / Stride

	base := 0
	start := 0

	if block > 0 {
		j := block*Stride - 1

		e, err := v.entryAt(j)
		if err != nil {
			return 0, err
		}

		if !e.HasOffset {
			return 0, errs.ErrInvalidStrideOffset
		}

		base = int(e.Value)
		start = j + 1
	}

	cum := base

	for k := start; k < i; k++ {
		e, err := v.entryAt(k)
		if err != nil {
			return 0, err
		}

		cum += align4(int(e.Value))
	}

	return cum, nil
}

// payloadAt returns the raw bytes of child i.
func (v *View) payloadAt(i int) (Entry, []byte, error) {
	e, err := v.entryAt(i)
	if err != nil {
		return Entry{}, nil, err
	}

	off, err := v.offsetOf(i)
	if err != nil {
		return Entry{}, nil, err
	}

	start := v.dataOff + off

	var end int
	if e.HasOffset {
		// e.Value holds an absolute offset (where the following entry
		// begins), not this entry's own length.
		end = v.dataOff + int(e.Value)
	} else {
		end = start + int(e.Value)
	}

	if end > len(v.data) || end < start {
		return Entry{}, nil, errs.ErrInvalidEntry
	}

	return e, v.data[start:end], nil
}

// IsRawScalar reports whether this view is a one-element raw_scalar wrapper
// array (spec §3, "raw_scalar").
func (v *View) IsRawScalar() bool {
	return v.Header.Kind == KindArray && v.Header.Subtype == SubtypeRawScalar && v.Header.Count == 1
}

// Elem returns element i of an ARRAY or BINARY container.
func (v *View) Elem(i int) (Entry, []byte, error) {
	if v.Header.Kind == KindObject {
		return Entry{}, nil, errs.ErrNotArray
	}

	if i < 0 || i >= v.Header.Count {
		return Entry{}, nil, errs.ErrIndexOutOfRange
	}

	return v.payloadAt(i)
}

// Pair is one decoded object member.
type Pair struct {
	Key        string
	Entry      Entry
	ValueBytes []byte
}

// Pairs decodes every member of an OBJECT container, in sorted-key order
// (the container's canonical, on-disk order).
func (v *View) Pairs() ([]Pair, error) {
	if v.Header.Kind != KindObject {
		return nil, errs.ErrNotObject
	}

	n := v.Header.Count
	out := make([]Pair, n)

	for i := 0; i < n; i++ {
		_, kb, err := v.payloadAt(i)
		if err != nil {
			return nil, err
		}

		ve, vb, err := v.payloadAt(n + i)
		if err != nil {
			return nil, err
		}

		out[i] = Pair{Key: string(kb), Entry: ve, ValueBytes: vb}
	}

	return out, nil
}

// Find does a binary search for key over an OBJECT container's sorted keys
// (spec §4.1, "Find on objects is binary search over sorted keys").
func (v *View) Find(key string) (Entry, []byte, bool, error) {
	if v.Header.Kind != KindObject {
		return Entry{}, nil, false, errs.ErrNotObject
	}

	n := v.Header.Count

	idx := sort.Search(n, func(i int) bool {
		_, kb, err := v.payloadAt(i)
		if err != nil {
			return false
		}

		return string(kb) >= key
	})

	if idx >= n {
		return Entry{}, nil, false, nil
	}

	_, kb, err := v.payloadAt(idx)
	if err != nil {
		return Entry{}, nil, false, err
	}

	if string(kb) != key {
		return Entry{}, nil, false, nil
	}

	ve, vb, err := v.payloadAt(n + idx)
	if err != nil {
		return Entry{}, nil, false, err
	}

	return ve, vb, true, nil
}

// Elems decodes every element of an ARRAY or BINARY container in order.
func (v *View) Elems() ([]Entry, [][]byte, error) {
	if v.Header.Kind == KindObject {
		return nil, nil, errs.ErrNotArray
	}

	n := v.Header.Count
	entries := make([]Entry, n)
	payloads := make([][]byte, n)

	for i := 0; i < n; i++ {
		e, p, err := v.payloadAt(i)
		if err != nil {
			return nil, nil, err
		}

		entries[i] = e
		payloads[i] = p
	}

	return entries, payloads, nil
}

// Equal reports whether two parsed containers are byte-for-byte identical
// after accounting for nothing — gtype blobs are canonical, so structural
// equality is byte equality for values built by this package's own Builder.
func Equal(a, b []byte) bool { return bytes.Equal(a, b) }
