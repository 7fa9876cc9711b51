package binary

import (
	"io"
)

// SafeWriter wraps io.Writer with position tracking.
type SafeWriter struct {
	w io.Writer
}

// NewSafeWriter creates a new SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{w: w}
}

// WriteBytes writes raw bytes to the underlying writer.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	_, err := sw.w.Write(b)
	return err
}

// Append appends val to b in the given byte order.
func Append[T Unsigned](b []byte, val T, endian Endianness) []byte {
	return append(b, encode(val, endian)...)
}

// Put overwrites the start of b with val in the given byte order.
// b must hold at least the width of T.
func Put[T Unsigned](b []byte, val T, endian Endianness) {
	copy(b, encode(val, endian))
}
