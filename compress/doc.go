// Package compress provides the compression codecs BYTEA scalars can opt
// into (value/bytea.go): None, Zstd, S2, and LZ4, selected by
// format.CompressionType.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): no compression, fastest.
//   - Zstd (format.CompressionZstd): best ratio, moderate speed.
//   - S2 (format.CompressionS2): balanced ratio and speed.
//   - LZ4 (format.CompressionLZ4): fastest decompression.
//
// All four implement the Codec interface (Compressor + Decompressor) and
// are safe for concurrent use.
package compress
