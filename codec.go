package tagsync

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/simonhull/tagsync/internal/registry"
	"github.com/simonhull/tagsync/internal/types"

	// Register the container adapters.
	_ "github.com/simonhull/tagsync/internal/flac"
	_ "github.com/simonhull/tagsync/internal/m4a"
	_ "github.com/simonhull/tagsync/internal/mp3"
	_ "github.com/simonhull/tagsync/internal/ogg"
)

// Codec reads and writes canonical tags and covers.
//
// A Codec holds configuration only. Every call opens the file, performs
// the whole parse or rewrite and closes it before returning. Calls on
// different files may run concurrently; calls on the same path must be
// serialized by the caller.
type Codec struct {
	opts options
}

// New returns a Codec configured by opts.
//
// Example:
//
//	codec := tagsync.New(tagsync.WithBackup(".bak"), tagsync.WithValidation())
//	err := codec.SetTags("song.flac", tags)
func New(opts ...Option) *Codec {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Codec{opts: *o}
}

// Default is the zero-configuration codec behind the package-level
// functions.
var Default = New()

// adapter classifies path and returns its adapter.
func adapter(path string) (types.Kind, registry.Adapter, error) {
	kind := types.Classify(path)
	if !kind.Supported() {
		return kind, nil, &types.ClassificationError{Path: path}
	}

	a := registry.Get(kind)
	if a == nil {
		return kind, nil, fmt.Errorf("%s: no adapter registered for %s", path, kind)
	}
	return kind, a, nil
}

// load classifies path and reads the whole file.
func load(path string) (types.Kind, registry.Adapter, []byte, error) {
	kind, a, err := adapter(path)
	if err != nil {
		return kind, nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return kind, nil, nil, fmt.Errorf("read file: %w", err)
	}
	return kind, a, data, nil
}

// recovered reports whether err is a parse failure that reads turn into
// "no tags" or "no cover", logging it when so.
func (c *Codec) recovered(err error, path, op string) bool {
	var pe *types.ParseError
	if !errors.As(err, &pe) {
		return false
	}
	c.opts.logger.Debug("unreadable metadata treated as empty",
		slog.String("path", path),
		slog.String("op", op),
		slog.String("kind", pe.Kind.String()),
		slog.Any("error", err),
	)
	return true
}

// GetTags returns the canonical tags of the file at path.
//
// A file whose container cannot be parsed yields empty tags and a nil
// error. Unsupported extensions yield a *ClassificationError; a missing or
// unreadable file yields the underlying I/O error.
func (c *Codec) GetTags(path string) (Tags, error) {
	_, a, data, err := load(path)
	if err != nil {
		return types.NewTags(), err
	}

	tags, err := a.ReadTags(data, path)
	if err != nil {
		if c.recovered(err, path, "read tags") {
			return types.NewTags(), nil
		}
		return types.NewTags(), err
	}
	return tags, nil
}

// GetCover returns the front cover of the file at path, or nil when it
// has none. Parse failures are treated like GetTags treats them.
func (c *Codec) GetCover(path string) (*Cover, error) {
	_, a, data, err := load(path)
	if err != nil {
		return nil, err
	}

	cover, err := a.ReadCover(data, path)
	if err != nil {
		if c.recovered(err, path, "read cover") {
			return nil, nil
		}
		return nil, err
	}
	return cover, nil
}

// SetTags replaces every canonical field of the file at path with tags.
// Empty values delete the corresponding native tag.
//
// Any failure, including a container that cannot be parsed, is returned
// as a *WriteError.
func (c *Codec) SetTags(path string, tags Tags) error {
	return c.write(path, opWriteTags,
		func(a registry.Adapter, data []byte) ([]byte, error) {
			return a.WriteTags(data, path, tags)
		},
		func(kind types.Kind, a registry.Adapter, data []byte) error {
			return verifyTags(kind, a, data, path, tags)
		},
	)
}

// SetCover replaces every embedded picture of the file at path with cover
// as the single front cover.
func (c *Codec) SetCover(path string, cover Cover) error {
	if !cover.Valid() {
		return &types.WriteError{Path: path, Op: opWriteCover, Err: errors.New("cover has no image data")}
	}

	return c.write(path, opWriteCover,
		func(a registry.Adapter, data []byte) ([]byte, error) {
			return a.WriteCover(data, path, cover)
		},
		func(_ types.Kind, a registry.Adapter, data []byte) error {
			return verifyCover(a, data, path, cover)
		},
	)
}

// GetTags reads tags with the Default codec.
func GetTags(path string) (Tags, error) {
	return Default.GetTags(path)
}

// GetCover reads the cover with the Default codec.
func GetCover(path string) (*Cover, error) {
	return Default.GetCover(path)
}

// SetTags writes tags with the Default codec.
func SetTags(path string, tags Tags) error {
	return Default.SetTags(path, tags)
}

// SetCover writes the cover with the Default codec.
func SetCover(path string, cover Cover) error {
	return Default.SetCover(path, cover)
}
