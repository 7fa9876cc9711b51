package tagsync

import (
	"github.com/simonhull/tagsync/internal/registry"
	"github.com/simonhull/tagsync/internal/types"
)

// Kind is an alias to types.Kind.
// Re-exporting from internal/types to maintain public API.
type Kind = types.Kind

// Re-export all container kinds.
const (
	KindUnsupported  = types.KindUnsupported
	KindFrameTagged  = types.KindFrameTagged
	KindBlockComment = types.KindBlockComment
	KindOggComment   = types.KindOggComment
	KindAtomBox      = types.KindAtomBox
)

// Classify maps a path to its container kind by lowercase extension:
// .mp3, .flac, .ogg and .m4a. Anything else is KindUnsupported.
// The file is never opened.
func Classify(path string) Kind {
	return types.Classify(path)
}

// Kinds returns the container kinds with a registered adapter, in
// ascending order.
func Kinds() []Kind {
	return registry.Kinds()
}
