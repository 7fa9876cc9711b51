package tagsync

import (
	"github.com/simonhull/tagsync/internal/types"
)

// ClassificationError is an alias to types.ClassificationError.
// Re-exporting from internal/types to maintain public API.
type ClassificationError = types.ClassificationError

// ParseError is an alias to types.ParseError.
// Re-exporting from internal/types to maintain public API.
type ParseError = types.ParseError

// WriteError is an alias to types.WriteError.
// Re-exporting from internal/types to maintain public API.
type WriteError = types.WriteError

// CodecError is an alias to types.CodecError.
// Re-exporting from internal/types to maintain public API.
type CodecError = types.CodecError

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// Re-exporting from internal/types to maintain public API.
type OutOfBoundsError = types.OutOfBoundsError
