package parser

import "github.com/postgraph/gtype/value"

// Render produces the text out-form of a parsed document's root scalar —
// the inverse of Parse for the raw_scalar case. Composite documents
// (objects/arrays/composite entities) are rendered by their own String()
// methods; this only covers the scalar text-form renderer spec §4.2/§4.4
// share (value.RenderText).
func Render(v value.Value) (string, error) { return value.RenderText(v) }
