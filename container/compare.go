package container

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// rank implements the fixed kind ordering of spec §4.1:
// NULL < BOOL < STRING < NUMERIC-family < (other extended scalars) < ARRAY
// < OBJECT < BINARY.
//
// The spec's rank list does not place the non-numeric extended scalar
// families (temporal, network, geometric, tsearch, range, vector, bytea)
// anywhere explicit; resolved here as a single
// tier between NUMERIC-family and ARRAY, ordered first by ExtType and then
// by a per-family comparator.
func rank(t EntryType, ext ExtType) int {
	switch t {
	case EntryNull:
		return 0
	case EntryBoolTrue, EntryBoolFalse:
		return 1
	case EntryString:
		return 2
	case EntryNumeric:
		return 3
	case EntryExtended:
		if ext == ExtInteger || ext == ExtFloat {
			return 3
		}

		return 4
	case EntryContainer:
		return 5 // refined by Kind in Compare
	default:
		return 99
	}
}

// ExtComparator compares two extended-scalar payloads of the same ExtType.
// value package families register one via RegisterExtComparator so C2's
// generic walker never needs family-specific knowledge beyond int/float
// (which spec mandates be unified with NUMERIC for ordering purposes).
type ExtComparator func(a, b []byte) (int, error)

var extComparators = map[ExtType]ExtComparator{}

// RegisterExtComparator installs the ordering comparator for an extended
// scalar family. Called from value package init()s.
func RegisterExtComparator(t ExtType, cmp ExtComparator) { extComparators[t] = cmp }

func decodeInt64(payload []byte) int64 {
	return int64(wireOrder.Uint64(payload))
}

func decodeFloat64(payload []byte) float64 {
	return math.Float64frombits(wireOrder.Uint64(payload))
}

// numericReal returns a comparable arbitrary-precision real for any
// NUMERIC-family entry: the NUMERIC text form, or ExtInteger/ExtFloat
// decoded and re-expressed as apd.Decimal.
func numericReal(t EntryType, ext ExtType, payload []byte) (*apd.Decimal, error) {
	switch {
	case t == EntryNumeric:
		d, _, err := apd.NewFromString(string(payload))
		return d, err
	case t == EntryExtended && ext == ExtInteger:
		scalar := payload[ExtHeaderSize:]
		return apd.New(decodeInt64(scalar), 0), nil
	case t == EntryExtended && ext == ExtFloat:
		scalar := payload[ExtHeaderSize:]
		d, _, err := apd.NewFromString(strconv.FormatFloat(decodeFloat64(scalar), 'g', -1, 64))
		return d, err
	default:
		return apd.New(0, 0), nil
	}
}

// Compare implements spec §4.1 compare_orderability: a total order over
// gtype values, recursive over containers. a and b are raw (Entry, payload)
// pairs as returned by View.Elem/View.Find/View.payloadAt.
func Compare(ea Entry, pa []byte, eb Entry, pb []byte) (int, error) {
	var extA, extB ExtType

	if ea.Type == EntryExtended {
		t, _, err := ParseExtHeader(pa)
		if err != nil {
			return 0, err
		}

		extA = t
	}

	if eb.Type == EntryExtended {
		t, _, err := ParseExtHeader(pb)
		if err != nil {
			return 0, err
		}

		extB = t
	}

	ra, rb := rank(ea.Type, extA), rank(eb.Type, extB)

	// CONTAINER entries need their Kind to refine the rank (ARRAY/OBJECT/BINARY).
	if ea.Type == EntryContainer {
		va, err := Parse(pa)
		if err != nil {
			return 0, err
		}

		ra = containerRank(va.Header.Kind)
	}

	if eb.Type == EntryContainer {
		vb, err := Parse(pb)
		if err != nil {
			return 0, err
		}

		rb = containerRank(vb.Header.Kind)
	}

	if ra != rb {
		return sign(ra - rb), nil
	}

	switch {
	case ea.Type == EntryNull:
		return 0, nil
	case ea.Type == EntryBoolTrue || ea.Type == EntryBoolFalse:
		av, bv := ea.Type == EntryBoolTrue, eb.Type == EntryBoolTrue
		if av == bv {
			return 0, nil
		}

		if !av {
			return -1, nil
		}

		return 1, nil
	case ea.Type == EntryString:
		return strings.Compare(string(pa), string(pb)), nil
	case ra == 3: // NUMERIC-family
		da, err := numericReal(ea.Type, extA, pa)
		if err != nil {
			return 0, err
		}

		db, err := numericReal(eb.Type, extB, pb)
		if err != nil {
			return 0, err
		}

		return da.Cmp(db), nil
	case ea.Type == EntryExtended:
		if extA != extB {
			return sign(int(extA) - int(extB)), nil
		}

		if cmp, ok := extComparators[extA]; ok {
			sa, sb := pa[ExtHeaderSize:], pb[ExtHeaderSize:]
			return cmp(sa, sb)
		}

		return bytes.Compare(pa, pb), nil
	case ea.Type == EntryContainer:
		va, err := Parse(pa)
		if err != nil {
			return 0, err
		}

		vb, err := Parse(pb)
		if err != nil {
			return 0, err
		}

		return compareContainers(va, vb)
	default:
		return bytes.Compare(pa, pb), nil
	}
}

func containerRank(k Kind) int {
	switch k {
	case KindArray:
		return 5
	case KindObject:
		return 6
	case KindBinary:
		return 7
	default:
		return 8
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// compareContainers compares two containers of the same Kind: arrays
// lexicographically element-by-element, objects by sorted (key, value)
// pairs, and falls back to length when one is a prefix of the other.
func compareContainers(a, b *View) (int, error) {
	if a.Header.Kind != b.Header.Kind {
		return sign(containerRank(a.Header.Kind) - containerRank(b.Header.Kind)), nil
	}

	switch a.Header.Kind {
	case KindObject:
		pa, err := a.Pairs()
		if err != nil {
			return 0, err
		}

		pb, err := b.Pairs()
		if err != nil {
			return 0, err
		}

		n := min(len(pa), len(pb))
		for i := 0; i < n; i++ {
			if c := strings.Compare(pa[i].Key, pb[i].Key); c != 0 {
				return c, nil
			}

			c, err := Compare(pa[i].Entry, pa[i].ValueBytes, pb[i].Entry, pb[i].ValueBytes)
			if err != nil {
				return 0, err
			}

			if c != 0 {
				return c, nil
			}
		}

		return sign(len(pa) - len(pb)), nil
	default: // ARRAY, BINARY
		ea, pda, err := a.Elems()
		if err != nil {
			return 0, err
		}

		eb, pdb, err := b.Elems()
		if err != nil {
			return 0, err
		}

		n := min(len(ea), len(eb))
		for i := 0; i < n; i++ {
			c, err := Compare(ea[i], pda[i], eb[i], pdb[i])
			if err != nil {
				return 0, err
			}

			if c != 0 {
				return c, nil
			}
		}

		return sign(len(ea) - len(eb)), nil
	}
}
