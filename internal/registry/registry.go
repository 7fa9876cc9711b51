// Package registry maps container kinds to the adapters that read and
// write them.
package registry

import (
	"slices"
	"sync"

	"github.com/simonhull/tagsync/internal/types"
)

// Adapter translates between a container's native metadata and the
// canonical model. Adapters work on whole-file byte images; the caller
// owns all file I/O.
type Adapter interface {
	// ReadTags returns the canonical tags stored in data.
	// Malformed containers yield a *types.ParseError.
	ReadTags(data []byte, path string) (types.Tags, error)

	// ReadCover returns the front cover, or nil when the file has none.
	ReadCover(data []byte, path string) (*types.Cover, error)

	// WriteTags returns a new image of the file with every canonical
	// field replaced by tags. Empty values remove the native tag.
	WriteTags(data []byte, path string, tags types.Tags) ([]byte, error)

	// WriteCover returns a new image of the file whose pictures are
	// replaced by cover as the single front cover.
	WriteCover(data []byte, path string, cover types.Cover) ([]byte, error)
}

var (
	mu       sync.RWMutex
	adapters = make(map[types.Kind]Adapter)
)

// Register registers the adapter for a kind, replacing any previous one.
// Adapter packages call it from init.
func Register(kind types.Kind, a Adapter) {
	mu.Lock()
	defer mu.Unlock()
	adapters[kind] = a
}

// Get returns the adapter for kind, or nil when none is registered.
func Get(kind types.Kind) Adapter {
	mu.RLock()
	defer mu.RUnlock()
	return adapters[kind]
}

// Kinds returns the registered kinds in ascending order.
func Kinds() []types.Kind {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]types.Kind, 0, len(adapters))
	for k := range adapters {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
