// Package binary provides bounds-checked reading and offset-tracked writing
// of the byte layouts shared by the container adapters.
package binary

import (
	"github.com/simonhull/tagsync/internal/types"
)

// SafeReader wraps an in-memory container image with bounds checking.
// Every failed read reports what was being read and where.
type SafeReader struct {
	data []byte
	path string
}

// NewSafeReader creates a SafeReader over data. path is only used in errors.
func NewSafeReader(data []byte, path string) *SafeReader {
	return &SafeReader{data: data, path: path}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the number of bytes available.
func (sr *SafeReader) Size() int64 {
	return int64(len(sr.data))
}

// Bytes returns the n bytes at off without copying.
func (sr *SafeReader) Bytes(off int64, n int, what string) ([]byte, error) {
	size := int64(len(sr.data))
	if off < 0 || n < 0 || (off >= size && n > 0) || off+int64(n) > size {
		return nil, &types.OutOfBoundsError{
			Path:   sr.path,
			What:   what,
			Offset: off,
			Length: n,
			Size:   size,
		}
	}
	return sr.data[off : off+int64(n)], nil
}

// Read reads a big-endian value of type T at off.
func Read[T Unsigned](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, BigEndian)
}

// ReadEndian reads a value of type T at off with the given byte order.
func ReadEndian[T Unsigned](sr *SafeReader, off int64, what string, endian Endianness) (T, error) {
	b, err := sr.Bytes(off, sizeOf[T](), what)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](b, endian), nil
}

// Reader provides sequential reading with automatic offset tracking.
type Reader struct {
	*SafeReader
	offset int64
	endian Endianness
}

// NewReader creates a big-endian Reader starting at offset.
func NewReader(sr *SafeReader, offset int64) *Reader {
	return &Reader{SafeReader: sr, offset: offset}
}

// NewReaderLE creates a little-endian Reader starting at offset.
func NewReaderLE(sr *SafeReader, offset int64) *Reader {
	return &Reader{SafeReader: sr, offset: offset, endian: LittleEndian}
}

// ReadValue reads a value in the reader's byte order and advances.
func ReadValue[T Unsigned](r *Reader, what string) (T, error) {
	val, err := ReadEndian[T](r.SafeReader, r.offset, what, r.endian)
	if err != nil {
		return val, err
	}
	r.offset += int64(sizeOf[T]())
	return val, nil
}

// ReadBytes returns the next n bytes without copying and advances.
func (r *Reader) ReadBytes(n int, what string) ([]byte, error) {
	b, err := r.SafeReader.Bytes(r.offset, n, what)
	if err != nil {
		return nil, err
	}
	r.offset += int64(n)
	return b, nil
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ChainReader allows chaining multiple reads with deferred error checking.
type ChainReader struct {
	*Reader
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(r *Reader) *ChainReader {
	return &ChainReader{Reader: r}
}

// ReadChained reads a value, recording the first error.
// After a failure it returns zero values without reading.
func ReadChained[T Unsigned](cr *ChainReader, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}

	val, err := ReadValue[T](cr.Reader, what)
	if err != nil {
		cr.err = err
	}
	return val
}

// Bytes reads n bytes, recording the first error.
func (cr *ChainReader) Bytes(n int, what string) []byte {
	if cr.err != nil {
		return nil
	}

	b, err := cr.Reader.ReadBytes(n, what)
	if err != nil {
		cr.err = err
	}
	return b
}

// String reads a string, recording the first error.
func (cr *ChainReader) String(length int, what string) string {
	return string(cr.Bytes(length, what))
}

// Error returns the first error encountered, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}
