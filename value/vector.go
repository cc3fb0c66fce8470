package value

import (
	"math"

	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
)

// MaxVectorDimension bounds VECTOR width (spec §4.2 Open Question: ANN
// index support). Chosen to match pgvector's ivfflat/hnsw ceiling so a
// future ANNCandidateSource implementation over a borrowed index has a
// familiar dimension budget to work against.
const MaxVectorDimension = 16000

// Vector payloads are a little-endian uint32 dimension count followed by
// that many little-endian float64 elements.
func encodeVector(elems []float64) []byte {
	buf := make([]byte, 4+8*len(elems))
	wireOrder.PutUint32(buf[:4], uint32(len(elems)))

	for i, f := range elems {
		wireOrder.PutUint64(buf[4+8*i:4+8*i+8], math.Float64bits(f))
	}

	return buf
}

func decodeVector(b []byte) []float64 {
	n := wireOrder.Uint32(b[:4])
	elems := make([]float64, n)

	for i := range elems {
		elems[i] = math.Float64frombits(wireOrder.Uint64(b[4+8*i : 4+8*i+8]))
	}

	return elems
}

// NewVector builds a VECTOR scalar from its elements. Dimension must be
// 1..MaxVectorDimension (spec §4.2, "negative or zero dimension is an
// error").
func NewVector(elems []float64) (Value, error) {
	if len(elems) == 0 {
		return Value{}, &errs.DomainError{Detail: "vector dimension must be positive", Err: errs.ErrNegativeDimension}
	}

	if len(elems) > MaxVectorDimension {
		return Value{}, &errs.LimitExceeded{Limit: "vector dimension", Got: int64(len(elems)), Max: MaxVectorDimension, Err: errs.ErrVectorTooWide}
	}

	e, p, err := container.MakeExtended(container.ExtVector, encodeVector(elems))
	if err != nil {
		return Value{}, err
	}

	return Value{entry: e, payload: p}, nil
}

// AsVector returns v's elements, if v is a VECTOR.
func (v Value) AsVector() ([]float64, bool) {
	s, ok := v.extScalarOf(container.ExtVector)
	if !ok {
		return nil, false
	}

	return decodeVector(s), true
}

// vectorElementwise implements VECTOR +/-/* against another VECTOR of the
// same dimension (spec §4.2).
func vectorElementwise(a, b Value, fn func(x, y float64) float64) (Value, error) {
	va, _ := a.AsVector()
	vb, _ := b.AsVector()

	if len(va) != len(vb) {
		return Value{}, &errs.DomainError{Detail: "vector dimension mismatch", Err: errs.ErrDimensionMismatch}
	}

	out := make([]float64, len(va))
	for i := range va {
		out[i] = fn(va[i], vb[i])
		if err := checkFinite(out[i]); err != nil {
			return Value{}, err
		}
	}

	return NewVector(out)
}

// VectorDistance computes one of the named distance metrics between two
// equal-dimension vectors (spec §4.2 "distance functions").
func VectorDistance(metric string, a, b Value) (float64, error) {
	va, _ := a.AsVector()
	vb, _ := b.AsVector()

	if len(va) != len(vb) {
		return 0, &errs.DomainError{Detail: "vector dimension mismatch", Err: errs.ErrDimensionMismatch}
	}

	switch metric {
	case "l2":
		return math.Sqrt(sumSq(va, vb)), nil
	case "l2_squared":
		return sumSq(va, vb), nil
	case "inner_product":
		return dot(va, vb), nil
	case "negative_inner_product":
		return -dot(va, vb), nil
	case "cosine":
		na, nb := norm(va), norm(vb)
		if na == 0 || nb == 0 {
			return 0, &errs.DomainError{Detail: "cosine distance of zero vector", Err: errs.ErrDivideByZero}
		}

		return 1 - dot(va, vb)/(na*nb), nil
	case "spherical":
		na, nb := norm(va), norm(vb)
		if na == 0 || nb == 0 {
			return 0, &errs.DomainError{Detail: "spherical distance of zero vector", Err: errs.ErrDivideByZero}
		}

		cos := dot(va, vb) / (na * nb)
		cos = math.Max(-1, math.Min(1, cos))

		return math.Acos(cos), nil
	case "l1":
		var sum float64
		for i := range va {
			sum += math.Abs(va[i] - vb[i])
		}

		return sum, nil
	default:
		return 0, &errs.DomainError{Detail: "unknown vector distance metric: " + metric, Err: errs.ErrTypeMismatch}
	}
}

func sumSq(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return sum
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}

	return sum
}

func norm(a []float64) float64 {
	return math.Sqrt(dot(a, a))
}

// ANNCandidateSource is implemented by a borrowed approximate-nearest-
// -neighbor index (e.g. an IVFFlat or HNSW structure maintained outside
// this package) to supply candidate vertex/edge ids for a VECTOR proximity
// predicate without this package needing to own index construction (spec
// §4.2 Open Question: ANN indexing is out of scope for gtype itself).
type ANNCandidateSource interface {
	Candidates(query []float64, k int) ([]uint64, error)
}

func init() {
	container.RegisterExtComparator(container.ExtVector, compareVectorPayload)
}

func compareVectorPayload(a, b []byte) (int, error) {
	va, vb := decodeVector(a), decodeVector(b)

	n := len(va)
	if len(vb) < n {
		n = len(vb)
	}

	for i := 0; i < n; i++ {
		switch {
		case va[i] < vb[i]:
			return -1, nil
		case va[i] > vb[i]:
			return 1, nil
		}
	}

	return len(va) - len(vb), nil
}
