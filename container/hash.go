package container

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// Container-boundary mix bytes (spec §4.1 hash: "combined via rotate-and-XOR
// on container boundaries ({, }, [, ])").
const (
	boundaryObjOpen  = '{'
	boundaryObjClose = '}'
	boundaryArrOpen  = '['
	boundaryArrClose = ']'
)

// ExtHasher hashes an extended scalar's payload (post ExtType-tag) into the
// running accumulator. value package families register one; unregistered
// families fall back to hashing the raw tagged payload.
type ExtHasher func(payload []byte, seed uint64) uint64

var extHashers = map[ExtType]ExtHasher{}

// RegisterExtHasher installs the hasher for an extended scalar family.
func RegisterExtHasher(t ExtType, h ExtHasher) { extHashers[t] = h }

func rotMix(acc uint64, h uint64) uint64 {
	return bits.RotateLeft64(acc, 1) ^ h
}

func hashBytes(tag byte, payload []byte, seed uint64) uint64 {
	h := xxhash.New()
	h.Write([]byte{tag})
	h.Write(payload)

	return h.Sum64() ^ seed
}

// Hash implements spec §4.1 hash(value, seed): a stable hash over scalars,
// combined via rotate-and-XOR at container boundaries so that equal values
// (per Compare) always hash equal.
func Hash(e Entry, payload []byte, seed uint64) (uint64, error) {
	switch e.Type {
	case EntryNull:
		return hashBytes('n', nil, seed), nil
	case EntryBoolTrue:
		return hashBytes('b', []byte{1}, seed), nil
	case EntryBoolFalse:
		return hashBytes('b', []byte{0}, seed), nil
	case EntryString:
		return hashBytes('s', payload, seed), nil
	case EntryNumeric:
		real, err := numericReal(EntryNumeric, 0, payload)
		if err != nil {
			return 0, err
		}

		real.Reduce(real)
		if real.IsZero() {
			real.Negative = false
		}

		return hashBytes('N', []byte(real.String()), seed), nil
	case EntryExtended:
		ext, scalar, err := ParseExtHeader(payload)
		if err != nil {
			return 0, err
		}

		if ext == ExtInteger || ext == ExtFloat {
			// NUMERIC-family values that compare equal must hash equal,
			// so integer/float/numeric share one canonical hash domain.
			real, err := numericReal(EntryExtended, ext, payload)
			if err != nil {
				return 0, err
			}

			real.Reduce(real)
			if real.IsZero() {
				real.Negative = false
			}

			return hashBytes('N', []byte(real.String()), seed), nil
		}

		if h, ok := extHashers[ext]; ok {
			return h(scalar, seed), nil
		}

		return hashBytes(byte('x')+byte(ext), payload, seed), nil
	case EntryContainer:
		v, err := Parse(payload)
		if err != nil {
			return 0, err
		}

		return hashContainer(v, seed)
	default:
		return hashBytes('?', payload, seed), nil
	}
}

func hashContainer(v *View, seed uint64) (uint64, error) {
	switch v.Header.Kind {
	case KindObject:
		acc := rotMix(seed, uint64(boundaryObjOpen))

		pairs, err := v.Pairs()
		if err != nil {
			return 0, err
		}

		for _, p := range pairs {
			acc = rotMix(acc, hashBytes('k', []byte(p.Key), seed))

			vh, err := Hash(p.Entry, p.ValueBytes, seed)
			if err != nil {
				return 0, err
			}

			acc = rotMix(acc, vh)
		}

		return rotMix(acc, uint64(boundaryObjClose)), nil
	default: // ARRAY, BINARY
		acc := rotMix(seed, uint64(boundaryArrOpen))

		entries, payloads, err := v.Elems()
		if err != nil {
			return 0, err
		}

		for i := range entries {
			eh, err := Hash(entries[i], payloads[i], seed)
			if err != nil {
				return 0, err
			}

			acc = rotMix(acc, eh)
		}

		return rotMix(acc, uint64(boundaryArrClose)), nil
	}
}
