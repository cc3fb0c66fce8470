package value

import (
	"github.com/postgraph/gtype/compress"
	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
	"github.com/postgraph/gtype/format"
)

// BYTEA payloads are a 1-byte codec tag followed by the (possibly
// compressed) raw bytes. Reusing the teacher's Compressor/Decompressor
// split lets gtype offer the same raw/S2/LZ4/Zstd tradeoffs for large
// binary properties that the teacher offers for numeric/text payloads,
// without this package owning any codec implementation itself.
var byteaCodecTypes = map[format.CompressionType]bool{
	format.CompressionNone: true,
	format.CompressionS2:   true,
	format.CompressionLZ4:  true,
	format.CompressionZstd: true,
}

// Bytea builds a BYTEA scalar, compressing raw with the given codec.
func Bytea(raw []byte, codec format.CompressionType) (Value, error) {
	if !byteaCodecTypes[codec] {
		return Value{}, &errs.DomainError{Detail: "unsupported bytea codec", Err: errs.ErrUnsupportedCodec}
	}

	c, err := compress.GetCodec(codec)
	if err != nil {
		return Value{}, &errs.DomainError{Detail: "unsupported bytea codec", Err: errs.ErrUnsupportedCodec}
	}

	compressed, err := c.Compress(raw)
	if err != nil {
		return Value{}, &errs.DomainError{Detail: "bytea compression failed", Err: err}
	}

	scalar := make([]byte, 1+len(compressed))
	scalar[0] = byte(codec)
	copy(scalar[1:], compressed)

	e, p, err := container.MakeExtended(container.ExtBytea, scalar)
	if err != nil {
		return Value{}, err
	}

	return Value{entry: e, payload: p}, nil
}

// AsBytea returns v's decompressed raw bytes, if v is a BYTEA.
func (v Value) AsBytea() ([]byte, error) {
	s, ok := v.extScalarOf(container.ExtBytea)
	if !ok {
		return nil, &errs.TypeError{Op: "as_bytea", Left: v.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	if len(s) < 1 {
		return nil, errs.ErrInvalidEntry
	}

	codec := format.CompressionType(s[0])

	c, err := compress.GetCodec(codec)
	if err != nil {
		return nil, &errs.DomainError{Detail: "unsupported bytea codec", Err: errs.ErrUnsupportedCodec}
	}

	return c.Decompress(s[1:])
}

func init() {
	container.RegisterExtComparator(container.ExtBytea, compareBytesRawPayload)
}

func compareBytesRawPayload(a, b []byte) (int, error) {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1, nil
			}

			return 1, nil
		}
	}

	return len(a) - len(b), nil
}
