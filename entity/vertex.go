package entity

import (
	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
	"github.com/postgraph/gtype/value"
)

// Vertex is `id(i64) | label_len(entry) | label_bytes | properties(object)`
// (spec §3).
type Vertex struct {
	id         GraphID
	label      string
	properties value.Value
	blob       []byte
}

// BuildVertex fails with a SchemaError if properties is not an OBJECT (spec
// §4.3, "build_vertex(id, label, properties) fails with TypeError if
// properties is not an object" — raised here as the SchemaError category
// since it is a composite-entity construction rule, per errs.SchemaError's
// doc comment).
func BuildVertex(id GraphID, label string, properties value.Value) (Vertex, error) {
	if properties.Kind() != value.KindObject {
		return Vertex{}, &errs.SchemaError{Entity: "vertex", Detail: "properties must be an object", Err: errs.ErrPropertiesNotObj}
	}

	idVal := value.Integer(id.Int64())

	b := container.New()
	b.BeginBinary(container.SubtypeVertex)

	if err := b.PutRaw(idVal.Entry(), idVal.Payload()); err != nil {
		return Vertex{}, err
	}

	if err := b.PutString(label); err != nil {
		return Vertex{}, err
	}

	propBlob, err := properties.Bytes()
	if err != nil {
		return Vertex{}, err
	}

	if err := b.PutContainer(propBlob); err != nil {
		return Vertex{}, err
	}

	blob, err := b.End()
	if err != nil {
		return Vertex{}, err
	}

	return Vertex{id: id, label: label, properties: properties, blob: blob}, nil
}

func parseVertex(blob []byte, view *container.View) (Vertex, error) {
	entries, payloads, err := view.Elems()
	if err != nil {
		return Vertex{}, err
	}

	if len(entries) != 3 {
		return Vertex{}, &errs.SchemaError{Entity: "vertex", Detail: "expected 3 fields", Err: errs.ErrBadAlternation}
	}

	idVal := value.FromEntry(entries[0], payloads[0])

	id, ok := idOf(idVal)
	if !ok {
		return Vertex{}, &errs.SchemaError{Entity: "vertex", Detail: "id is not an integer", Err: errs.ErrBadAlternation}
	}

	labelVal := value.FromEntry(entries[1], payloads[1])

	label, ok := labelVal.AsString()
	if !ok {
		return Vertex{}, &errs.SchemaError{Entity: "vertex", Detail: "label is not a string", Err: errs.ErrBadAlternation}
	}

	propsVal := value.FromEntry(entries[2], payloads[2])

	return Vertex{id: id, label: label, properties: propsVal, blob: blob}, nil
}

// ParseVertex decodes a Vertex blob.
func ParseVertex(blob []byte) (Vertex, error) {
	k, view, err := kindOf(blob)
	if err != nil {
		return Vertex{}, err
	}

	if k != KindVertex {
		return Vertex{}, &errs.SchemaError{Entity: "vertex", Detail: "blob is not a vertex", Err: errs.ErrBadAlternation}
	}

	return parseVertex(blob, view)
}

func (vx Vertex) Kind() Kind               { return KindVertex }
func (vx Vertex) ID() GraphID              { return vx.id }
func (vx Vertex) Label() string            { return vx.label }
func (vx Vertex) Properties() value.Value  { return vx.properties }
func (vx Vertex) Bytes() ([]byte, error)   { return vx.blob, nil }
func (vx Vertex) AsValue() (value.Value, error) { return value.Parse(vx.blob) }
