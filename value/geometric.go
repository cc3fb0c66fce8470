package value

import (
	"math"

	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
)

// Geometric scalar payloads are flat little-endian float64 arrays, sized per
// family (spec §3's POINT/LSEG/LINE/BOX/PATH_G/POLYGON/CIRCLE/BOX2D/BOX3D/
// SPHEROID). PATH_G and POLYGON are variable-length (a uint32 point count
// followed by that many (x,y) pairs; PATH_G puts a 1-byte closed flag before
// the count); the rest are fixed-width. GSERIALIZED is kept
// as an opaque WKB/EWKB byte blob — gtype does not interpret its contents,
// only carries it (spec's Non-goals exclude a full geometry engine).

func encodeFloats(fs ...float64) []byte {
	buf := make([]byte, 8*len(fs))
	for i, f := range fs {
		wireOrder.PutUint64(buf[8*i:8*i+8], math.Float64bits(f))
	}

	return buf
}

func decodeFloats(b []byte) []float64 {
	n := len(b) / 8
	out := make([]float64, n)

	for i := 0; i < n; i++ {
		out[i] = math.Float64frombits(wireOrder.Uint64(b[8*i : 8*i+8]))
	}

	return out
}

// Point builds a POINT scalar.
func Point(x, y float64) Value {
	e, p, _ := container.MakeExtended(container.ExtPoint, encodeFloats(x, y))
	return Value{entry: e, payload: p}
}

// AsPoint returns v's (x, y), if v is a POINT.
func (v Value) AsPoint() (x, y float64, ok bool) {
	s, ok := v.extScalarOf(container.ExtPoint)
	if !ok {
		return 0, 0, false
	}

	f := decodeFloats(s)

	return f[0], f[1], true
}

// PointDistance implements POINT-to-POINT Euclidean distance.
func PointDistance(a, b Value) (float64, error) {
	ax, ay, ok := a.AsPoint()
	if !ok {
		return 0, &errs.TypeError{Op: "distance", Left: a.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	bx, by, ok := b.AsPoint()
	if !ok {
		return 0, &errs.TypeError{Op: "distance", Left: b.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	return math.Hypot(ax-bx, ay-by), nil
}

// Lseg builds an LSEG scalar from two endpoints.
func Lseg(x1, y1, x2, y2 float64) Value {
	e, p, _ := container.MakeExtended(container.ExtLseg, encodeFloats(x1, y1, x2, y2))
	return Value{entry: e, payload: p}
}

// Line builds a LINE scalar in Ax + By + C = 0 form.
func Line(a, b, c float64) Value {
	e, p, _ := container.MakeExtended(container.ExtLine, encodeFloats(a, b, c))
	return Value{entry: e, payload: p}
}

// Box builds a BOX scalar from two opposing corners.
func Box(x1, y1, x2, y2 float64) Value {
	lo := math.Min(x1, x2)
	hi := math.Max(x1, x2)
	bl := math.Min(y1, y2)
	bh := math.Max(y1, y2)
	e, p, _ := container.MakeExtended(container.ExtBox, encodeFloats(lo, bl, hi, bh))

	return Value{entry: e, payload: p}
}

// BoxContainsPoint implements BOX '@>' POINT.
func BoxContainsPoint(box, pt Value) (bool, error) {
	s, ok := box.extScalarOf(container.ExtBox)
	if !ok {
		return false, &errs.TypeError{Op: "@>", Left: box.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	f := decodeFloats(s)

	x, y, ok := pt.AsPoint()
	if !ok {
		return false, &errs.TypeError{Op: "@>", Left: pt.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	return x >= f[0] && x <= f[2] && y >= f[1] && y <= f[3], nil
}

// PathG builds a PATH_G scalar: a possibly-closed sequence of points.
func PathG(closed bool, points [][2]float64) Value {
	scalar := make([]byte, 1+4+16*len(points))
	if closed {
		scalar[0] = 1
	}

	wireOrder.PutUint32(scalar[1:5], uint32(len(points)))

	for i, pt := range points {
		off := 5 + 16*i
		wireOrder.PutUint64(scalar[off:off+8], math.Float64bits(pt[0]))
		wireOrder.PutUint64(scalar[off+8:off+16], math.Float64bits(pt[1]))
	}

	e, p, _ := container.MakeExtended(container.ExtPathG, scalar)

	return Value{entry: e, payload: p}
}

// AsPathG decodes v's closedness and points, if v is a PATH_G.
func (v Value) AsPathG() (closed bool, points [][2]float64, ok bool) {
	s, ok := v.extScalarOf(container.ExtPathG)
	if !ok || len(s) < 5 {
		return false, nil, false
	}

	closed = s[0] == 1
	n := wireOrder.Uint32(s[1:5])
	points = make([][2]float64, n)

	for i := uint32(0); i < n; i++ {
		off := 5 + 16*i
		points[i][0] = math.Float64frombits(wireOrder.Uint64(s[off : off+8]))
		points[i][1] = math.Float64frombits(wireOrder.Uint64(s[off+8 : off+16]))
	}

	return closed, points, true
}

// Polygon builds a POLYGON scalar from its vertex ring.
func Polygon(points [][2]float64) Value {
	scalar := make([]byte, 4+16*len(points))
	wireOrder.PutUint32(scalar[:4], uint32(len(points)))

	for i, pt := range points {
		off := 4 + 16*i
		wireOrder.PutUint64(scalar[off:off+8], math.Float64bits(pt[0]))
		wireOrder.PutUint64(scalar[off+8:off+16], math.Float64bits(pt[1]))
	}

	e, p, _ := container.MakeExtended(container.ExtPolygon, scalar)

	return Value{entry: e, payload: p}
}

// AsPolygon decodes v's vertex ring, if v is a POLYGON.
func (v Value) AsPolygon() ([][2]float64, bool) {
	s, ok := v.extScalarOf(container.ExtPolygon)
	if !ok || len(s) < 4 {
		return nil, false
	}

	n := wireOrder.Uint32(s[:4])
	points := make([][2]float64, n)

	for i := uint32(0); i < n; i++ {
		off := 4 + 16*i
		points[i][0] = math.Float64frombits(wireOrder.Uint64(s[off : off+8]))
		points[i][1] = math.Float64frombits(wireOrder.Uint64(s[off+8 : off+16]))
	}

	return points, true
}

// PolygonContainsPoint implements POLYGON '@>' POINT via ray casting.
func PolygonContainsPoint(poly, pt Value) (bool, error) {
	points, ok := poly.AsPolygon()
	if !ok {
		return false, &errs.TypeError{Op: "@>", Left: poly.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	x, y, ok := pt.AsPoint()
	if !ok {
		return false, &errs.TypeError{Op: "@>", Left: pt.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	inside := false
	n := len(points)

	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := points[i][0], points[i][1]
		xj, yj := points[j][0], points[j][1]

		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}

	return inside, nil
}

// Circle builds a CIRCLE scalar from a center point and radius.
func Circle(cx, cy, r float64) Value {
	e, p, _ := container.MakeExtended(container.ExtCircle, encodeFloats(cx, cy, r))
	return Value{entry: e, payload: p}
}

// CircleContainsPoint implements CIRCLE '@>' POINT.
func CircleContainsPoint(c, pt Value) (bool, error) {
	s, ok := c.extScalarOf(container.ExtCircle)
	if !ok {
		return false, &errs.TypeError{Op: "@>", Left: c.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	f := decodeFloats(s)

	x, y, ok := pt.AsPoint()
	if !ok {
		return false, &errs.TypeError{Op: "@>", Left: pt.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	return math.Hypot(x-f[0], y-f[1]) <= f[2], nil
}

// Box2D builds a BOX2D scalar (a 2D axis-aligned bounding box, as used by
// PostGIS extents).
func Box2D(xmin, ymin, xmax, ymax float64) Value {
	e, p, _ := container.MakeExtended(container.ExtBox2D, encodeFloats(xmin, ymin, xmax, ymax))
	return Value{entry: e, payload: p}
}

// Box3D builds a BOX3D scalar.
func Box3D(xmin, ymin, zmin, xmax, ymax, zmax float64) Value {
	e, p, _ := container.MakeExtended(container.ExtBox3D, encodeFloats(xmin, ymin, zmin, xmax, ymax, zmax))
	return Value{entry: e, payload: p}
}

// Spheroid builds a SPHEROID scalar (semi-major axis, inverse flattening).
func Spheroid(semiMajorAxis, inverseFlattening float64) Value {
	e, p, _ := container.MakeExtended(container.ExtSpheroid, encodeFloats(semiMajorAxis, inverseFlattening))
	return Value{entry: e, payload: p}
}

// GSerialized builds a GSERIALIZED scalar from an opaque WKB/EWKB blob.
func GSerialized(wkb []byte) Value {
	e, p, _ := container.MakeExtended(container.ExtGSerialized, wkb)
	return Value{entry: e, payload: p}
}

// AsGSerialized returns v's raw WKB/EWKB bytes, if v is a GSERIALIZED.
func (v Value) AsGSerialized() ([]byte, bool) {
	return v.extScalarOf(container.ExtGSerialized)
}

func init() {
	container.RegisterExtComparator(container.ExtPoint, compareFloatsPayload)
	container.RegisterExtComparator(container.ExtBox2D, compareFloatsPayload)
	container.RegisterExtComparator(container.ExtBox3D, compareFloatsPayload)
}

func compareFloatsPayload(a, b []byte) (int, error) {
	fa, fb := decodeFloats(a), decodeFloats(b)

	n := len(fa)
	if len(fb) < n {
		n = len(fb)
	}

	for i := 0; i < n; i++ {
		switch {
		case fa[i] < fb[i]:
			return -1, nil
		case fa[i] > fb[i]:
			return 1, nil
		}
	}

	return len(fa) - len(fb), nil
}
