// Package mp3 reads and writes the canonical tags and cover of MP3 files
// through their leading ID3v2 tag.
package mp3

import (
	"bytes"
	"fmt"

	"github.com/bogem/id3v2/v2"

	"github.com/simonhull/tagsync/internal/registry"
	"github.com/simonhull/tagsync/internal/types"
)

// adapter implements registry.Adapter for ID3v2-tagged MP3 streams.
type adapter struct{}

// parse returns the file's tag and the length of the tag region it was
// read from. Files without a tag get a fresh, empty ID3v2.4 tag, and so
// do files tagged ID3v2.2 or older: their frames read as empty and are
// replaced by the fresh tag on write.
func parse(data []byte, path string) (*id3v2.Tag, int64, error) {
	size, err := tagRegion(data, path)
	if err != nil {
		return nil, 0, err
	}

	if size == 0 || data[3] < minVersion {
		return id3v2.NewEmptyTag(), size, nil
	}

	tag, err := id3v2.ParseReader(bytes.NewReader(data[:size]), id3v2.Options{Parse: true})
	if err != nil {
		return nil, 0, parseError(path, 0, "unreadable ID3v2 tag", err)
	}
	return tag, size, nil
}

// ReadTags implements registry.Adapter.
func (adapter) ReadTags(data []byte, path string) (types.Tags, error) {
	tag, _, err := parse(data, path)
	if err != nil {
		return types.NewTags(), err
	}
	return readFrames(tag), nil
}

// ReadCover implements registry.Adapter.
func (adapter) ReadCover(data []byte, path string) (*types.Cover, error) {
	tag, _, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	return readPicture(tag), nil
}

// WriteTags implements registry.Adapter.
func (adapter) WriteTags(data []byte, path string, tags types.Tags) ([]byte, error) {
	tag, size, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	writeFrames(tag, tags)
	return render(tag, data[size:])
}

// WriteCover implements registry.Adapter.
func (adapter) WriteCover(data []byte, path string, cover types.Cover) ([]byte, error) {
	tag, size, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	writePicture(tag, cover)
	return render(tag, data[size:])
}

// render serializes tag in front of the audio stream. A tag left without
// frames is dropped entirely.
func render(tag *id3v2.Tag, audio []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(tag.Size() + len(audio))

	if tag.HasFrames() {
		if _, err := tag.WriteTo(&buf); err != nil {
			return nil, fmt.Errorf("serialize ID3v2 tag: %w", err)
		}
	}
	buf.Write(audio)
	return buf.Bytes(), nil
}

func init() {
	registry.Register(types.KindFrameTagged, adapter{})
}
