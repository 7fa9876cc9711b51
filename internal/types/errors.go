package types

import (
	"fmt"
	"path/filepath"
)

// ClassificationError is returned when a path's extension is not one of
// the four supported container kinds.
type ClassificationError struct {
	Path string
}

func (e *ClassificationError) Error() string {
	ext := filepath.Ext(e.Path)
	if ext == "" {
		return fmt.Sprintf("%s: unsupported container: no file extension", e.Path)
	}
	return fmt.Sprintf("%s: unsupported container extension %q", e.Path, ext)
}

// ParseError is returned when container bytes cannot be interpreted as a
// valid instance of their kind (corrupt header, truncated file).
//
// Reads recover from ParseError locally; writes wrap it in a WriteError.
type ParseError struct {
	Err    error
	Path   string
	Reason string
	Offset int64
	Kind   Kind
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s container at offset %d: %s", e.Path, e.Kind, e.Offset, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteError is returned for any failure while serializing or persisting
// tag or cover data.
type WriteError struct {
	Err  error
	Path string
	Op   string // "write tags", "write cover"
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// CodecError reports a failed copy between two files. Err is the read or
// write failure that stopped the copy.
type CodecError struct {
	Err error
	Op  string // "copy tags", "copy cover"
	Src string
	Dst string
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("%s %s -> %s: %v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }

// OutOfBoundsError is returned when a read would go past the end of the data.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset < 0 || e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}
