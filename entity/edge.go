package entity

import (
	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
	"github.com/postgraph/gtype/value"
)

// Edge is `id | start_id | end_id | label_len | label_bytes | properties`
// (spec §3).
type Edge struct {
	id         GraphID
	startID    GraphID
	endID      GraphID
	label      string
	properties value.Value
	blob       []byte
}

// BuildEdge fails with a SchemaError if properties is not an OBJECT (spec
// §4.3).
func BuildEdge(id, startID, endID GraphID, label string, properties value.Value) (Edge, error) {
	if properties.Kind() != value.KindObject {
		return Edge{}, &errs.SchemaError{Entity: "edge", Detail: "properties must be an object", Err: errs.ErrPropertiesNotObj}
	}

	b := container.New()
	b.BeginBinary(container.SubtypeEdge)

	for _, gid := range []GraphID{id, startID, endID} {
		v := value.Integer(gid.Int64())
		if err := b.PutRaw(v.Entry(), v.Payload()); err != nil {
			return Edge{}, err
		}
	}

	if err := b.PutString(label); err != nil {
		return Edge{}, err
	}

	propBlob, err := properties.Bytes()
	if err != nil {
		return Edge{}, err
	}

	if err := b.PutContainer(propBlob); err != nil {
		return Edge{}, err
	}

	blob, err := b.End()
	if err != nil {
		return Edge{}, err
	}

	return Edge{id: id, startID: startID, endID: endID, label: label, properties: properties, blob: blob}, nil
}

func parseEdge(blob []byte, view *container.View) (Edge, error) {
	entries, payloads, err := view.Elems()
	if err != nil {
		return Edge{}, err
	}

	if len(entries) != 5 {
		return Edge{}, &errs.SchemaError{Entity: "edge", Detail: "expected 5 fields", Err: errs.ErrBadAlternation}
	}

	ids := make([]GraphID, 3)

	for i := 0; i < 3; i++ {
		v := value.FromEntry(entries[i], payloads[i])

		id, ok := idOf(v)
		if !ok {
			return Edge{}, &errs.SchemaError{Entity: "edge", Detail: "id field is not an integer", Err: errs.ErrBadAlternation}
		}

		ids[i] = id
	}

	labelVal := value.FromEntry(entries[3], payloads[3])

	label, ok := labelVal.AsString()
	if !ok {
		return Edge{}, &errs.SchemaError{Entity: "edge", Detail: "label is not a string", Err: errs.ErrBadAlternation}
	}

	propsVal := value.FromEntry(entries[4], payloads[4])

	return Edge{id: ids[0], startID: ids[1], endID: ids[2], label: label, properties: propsVal, blob: blob}, nil
}

// ParseEdge decodes an Edge blob.
func ParseEdge(blob []byte) (Edge, error) {
	k, view, err := kindOf(blob)
	if err != nil {
		return Edge{}, err
	}

	if k != KindEdge {
		return Edge{}, &errs.SchemaError{Entity: "edge", Detail: "blob is not an edge", Err: errs.ErrBadAlternation}
	}

	return parseEdge(blob, view)
}

func (e Edge) Kind() Kind              { return KindEdge }
func (e Edge) ID() GraphID             { return e.id }
func (e Edge) StartID() GraphID        { return e.startID }
func (e Edge) EndID() GraphID          { return e.endID }
func (e Edge) Label() string           { return e.label }
func (e Edge) Properties() value.Value { return e.properties }
func (e Edge) Bytes() ([]byte, error)  { return e.blob, nil }

// OtherEnd returns the endpoint id opposite from, matching the VLE engine's
// next_vertex(edge) rule for direction NONE (spec §4.5). It reports false
// when from is neither endpoint.
func (e Edge) OtherEnd(from GraphID) (GraphID, bool) {
	switch from {
	case e.startID:
		return e.endID, true
	case e.endID:
		return e.startID, true
	default:
		return 0, false
	}
}
