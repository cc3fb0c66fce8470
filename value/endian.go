package value

import "github.com/postgraph/gtype/internal/endian"

// wireOrder is the byte order every extended-scalar payload (numeric,
// temporal, network, geometric, tsearch, range, vector) is packed with,
// matching container's own wire order (container/header.go).
var wireOrder = endian.LittleEndian()
