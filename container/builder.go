package container

import (
	"sort"

	"github.com/postgraph/gtype/errs"
	"github.com/postgraph/gtype/internal/pool"
)

// child is one pending entry/payload pair inside an open frame, kept
// unsorted for objects until Close reorders them by key.
type child struct {
	key     string // object children only
	entry   Entry
	payload []byte
}

// frame is one level of the builder's parse-state stack (spec §3,
// "Builders construct depth-first using a parse-state stack").
type frame struct {
	kind     Kind
	subtype  Subtype
	children []child
	pendKey  string
	haveKey  bool
}

// Builder constructs container blobs depth-first, mirroring the token
// stream of spec §4.1: BEGIN_ARRAY/BEGIN_OBJECT/KEY/VALUE/ELEM/END_ARRAY/
// END_OBJECT collapse into BeginArray/BeginObject/Key/Put*/End method calls
// on a stack of partial containers, the way the teacher's encoder builds a
// blob through Start.../End... pairing (blob/numeric_encoder.go).
type Builder struct {
	stack []*frame
}

// New creates an empty Builder.
func New() *Builder { return &Builder{} }

// Depth reports how many frames are currently open.
func (b *Builder) Depth() int { return len(b.stack) }

func (b *Builder) top() (*frame, error) {
	if len(b.stack) == 0 {
		return nil, errs.ErrBuilderStackEmpty
	}

	return b.stack[len(b.stack)-1], nil
}

// BeginArray opens a new array frame.
func (b *Builder) BeginArray() { b.stack = append(b.stack, &frame{kind: KindArray}) }

// BeginArrayWithSubtype opens a new array frame tagged with subtype — used
// by composite entities (Path/Route/Traversal, PartialRoute/VariableEdge)
// that share ARRAY's physical layout but distinguish their logical shape
// purely through the header's Subtype field.
func (b *Builder) BeginArrayWithSubtype(subtype Subtype) {
	b.stack = append(b.stack, &frame{kind: KindArray, subtype: subtype})
}

// BeginObject opens a new object frame.
func (b *Builder) BeginObject() { b.stack = append(b.stack, &frame{kind: KindObject}) }

// BeginBinary opens a new fixed-field composite-entity frame (vertex/edge).
func (b *Builder) BeginBinary(subtype Subtype) {
	b.stack = append(b.stack, &frame{kind: KindBinary, subtype: subtype})
}

// Key records the next object member's key; the following Put*/Elem call
// supplies its value.
func (b *Builder) Key(k string) error {
	f, err := b.top()
	if err != nil {
		return err
	}

	if f.kind != KindObject {
		return errs.ErrBuilderStackMismatch
	}

	f.pendKey = k
	f.haveKey = true

	return nil
}

func (b *Builder) push(e Entry, payload []byte) error {
	f, err := b.top()
	if err != nil {
		return err
	}

	c := child{entry: e, payload: payload}
	if f.kind == KindObject {
		if !f.haveKey {
			return errs.ErrBuilderStackMismatch
		}

		c.key = f.pendKey
		f.haveKey = false
		f.pendKey = ""
	}

	f.children = append(f.children, c)

	return nil
}

// PutNull appends a NULL child to the current frame.
func (b *Builder) PutNull() error {
	e, p := MakeNull()
	return b.push(e, p)
}

// PutBool appends a BOOL_TRUE/BOOL_FALSE child.
func (b *Builder) PutBool(v bool) error {
	e, p := MakeBool(v)
	return b.push(e, p)
}

// PutString appends a STRING child.
func (b *Builder) PutString(s string) error {
	e, p, err := MakeString(s)
	if err != nil {
		return err
	}

	return b.push(e, p)
}

// PutNumeric appends a NUMERIC child whose payload is its canonical decimal
// text form (the "slow path" arbitrary-precision family of spec §3).
func (b *Builder) PutNumeric(text string) error {
	e, p, err := MakeNumeric(text)
	if err != nil {
		return err
	}

	return b.push(e, p)
}

// PutExtended appends an EXTENDED child: payload is prefixed with the
// ExtType tag so the generic container walker never needs to know about
// individual scalar families (spec §9, "Extended-type sidecar").
func (b *Builder) PutExtended(t ExtType, scalar []byte) error {
	e, p, err := MakeExtended(t, scalar)
	if err != nil {
		return err
	}

	return b.push(e, p)
}

// PutRaw appends an already-built (Entry, payload) pair as-is — used by
// callers (entity, vle) that hold a pre-decoded child, such as a borrowed
// property Value or a composite entity embedded into a Path array, without
// needing to re-derive its Entry from scratch.
func (b *Builder) PutRaw(e Entry, payload []byte) error {
	return b.push(e, payload)
}

// PutContainer embeds an already-built nested container blob (itself the
// output of End/Finish) as a CONTAINER child — used for nested
// arrays/objects, a vertex/edge's properties field, and composite-entity
// elements inside a Path/Route/VariableEdge array.
func (b *Builder) PutContainer(blob []byte) error {
	e, p, err := MakeContainer(blob)
	if err != nil {
		return err
	}

	return b.push(e, p)
}

// End closes the current frame, finalizes its header and entry table, and
// returns the resulting self-contained blob. If the stack has a parent
// frame, the caller is still responsible for pushing the result into it via
// PutContainer — End never does this automatically, since the caller may
// instead want the blob as the final top-level result.
func (b *Builder) End() ([]byte, error) {
	if len(b.stack) == 0 {
		return nil, errs.ErrBuilderStackEmpty
	}

	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	return closeFrame(f)
}

// Finish closes every remaining open frame from the innermost outward,
// automatically threading each closed container into its parent via
// PutContainer, and returns the outermost blob. It is an error to call
// Finish with an empty stack.
func (b *Builder) Finish() ([]byte, error) {
	if len(b.stack) == 0 {
		return nil, errs.ErrUnterminatedBuild
	}

	var blob []byte

	for len(b.stack) > 0 {
		var err error

		blob, err = b.End()
		if err != nil {
			return nil, err
		}

		if len(b.stack) > 0 {
			if err := b.PutContainer(blob); err != nil {
				return nil, err
			}
		}
	}

	return blob, nil
}

// BuildRawScalar wraps a single scalar entry/payload pair as a one-element
// array with SubtypeRawScalar — the canonical root form for a bare scalar
// value (spec §3, "raw_scalar").
func BuildRawScalar(e Entry, payload []byte) ([]byte, error) {
	f := &frame{kind: KindArray, subtype: SubtypeRawScalar, children: []child{{entry: e, payload: payload}}}

	return closeFrame(f)
}

func align4(n int) int { return (n + 3) &^ 3 }

// closeFrame finalizes a frame's header/entry-table/payload into one
// contiguous, 4-byte-aligned buffer (spec §3 Lifecycle: "on close, bytes are
// copied into a single contiguous buffer").
func closeFrame(f *frame) ([]byte, error) {
	switch f.kind {
	case KindObject:
		return closeObject(f)
	default:
		return closePositional(f)
	}
}

// closePositional serializes KindArray/KindBinary frames: children keep
// their insertion order.
func closePositional(f *frame) ([]byte, error) {
	count := len(f.children)
	if count > MaxCount {
		return nil, errs.ErrStringTooLong
	}

	buf := pool.Get()
	defer pool.Put(buf)

	hdr := Header{Count: count, Kind: f.kind, Subtype: f.subtype}
	buf.Write(hdr.Bytes())

	entryTableOff := buf.Len()
	buf.Pad(count * EntrySize)

	cum := 0
	entries := make([]Entry, count)

	for i, c := range f.children {
		e := c.entry
		length := align4(len(c.payload))

		if i%Stride == Stride-1 {
			// Stride entries store the offset inclusive of their own payload,
			// i.e. where the next entry begins, so this entry's length must
			// be folded into cum before it is stored (offsetOf relies on
			// this to recover a block's starting offset without needing the
			// stride entry's own length separately).
			cum += length
			e.HasOffset = true
			e.Value = uint32(cum)
		} else {
			e.HasOffset = false
			e.Value = uint32(len(c.payload))
			cum += length
		}
		entries[i] = e

		buf.Write(c.payload)
		pad := length - len(c.payload)
		buf.Pad(pad)
	}

	out := append([]byte(nil), buf.Bytes()...)
	for i, e := range entries {
		putEntry(out, entryTableOff+i*EntrySize, e)
	}

	return out, nil
}

// closeObject serializes a KindObject frame: keys sorted, duplicates
// resolved last-write-wins, then laid out as all keys followed by all
// values (spec §3 "Objects").
func closeObject(f *frame) ([]byte, error) {
	// Last-write-wins: later occurrences of a key overwrite earlier ones.
	byKey := make(map[string]child, len(f.children))
	order := make([]string, 0, len(f.children))

	for _, c := range f.children {
		if _, exists := byKey[c.key]; !exists {
			order = append(order, c.key)
		}
		byKey[c.key] = c
	}

	sort.Strings(order)

	count := len(order)
	if count > MaxCount {
		return nil, errs.ErrStringTooLong
	}

	buf := pool.Get()
	defer pool.Put(buf)

	hdr := Header{Count: count, Kind: KindObject, Subtype: f.subtype}
	buf.Write(hdr.Bytes())

	entryTableOff := buf.Len()
	buf.Pad(2 * count * EntrySize)

	entries := make([]Entry, 2*count)
	cum := 0

	// Keys first, in sorted order.
	for i, k := range order {
		kb := []byte(k)
		e := Entry{Type: EntryString}
		length := align4(len(kb))

		idx := i
		if idx%Stride == Stride-1 {
			cum += length
			e.HasOffset = true
			e.Value = uint32(cum)
		} else {
			e.Value = uint32(len(kb))
			cum += length
		}
		entries[idx] = e

		buf.Write(kb)
		pad := length - len(kb)
		buf.Pad(pad)
	}

	// Then values, in matching order.
	for i, k := range order {
		c := byKey[k]
		e := c.entry
		length := align4(len(c.payload))

		idx := count + i
		if idx%Stride == Stride-1 {
			cum += length
			e.HasOffset = true
			e.Value = uint32(cum)
		} else {
			e.Value = uint32(len(c.payload))
			cum += length
		}
		entries[idx] = e

		buf.Write(c.payload)
		pad := length - len(c.payload)
		buf.Pad(pad)
	}

	out := append([]byte(nil), buf.Bytes()...)
	for i, e := range entries {
		putEntry(out, entryTableOff+i*EntrySize, e)
	}

	return out, nil
}
