package ogg

import (
	"github.com/go-flac/flacvorbis/v2"

	"github.com/simonhull/tagsync/internal/registry"
	"github.com/simonhull/tagsync/internal/types"
	"github.com/simonhull/tagsync/internal/vorbis"
)

// adapter implements registry.Adapter for Ogg Vorbis and Ogg Opus streams.
type adapter struct{}

// comments parses the header region and decodes its comment packet.
func comments(data []byte, path string) (*headerSet, *flacvorbis.MetaDataBlockVorbisComment, error) {
	h, err := readHeaders(data, path)
	if err != nil {
		return nil, nil, err
	}

	body, err := h.comment(path)
	if err != nil {
		return nil, nil, err
	}

	c, err := vorbis.Parse(body)
	if err != nil {
		return nil, nil, parseError(path, h.pages[0].Size, "malformed comment header", err)
	}
	return h, c, nil
}

// ReadTags implements registry.Adapter.
func (adapter) ReadTags(data []byte, path string) (types.Tags, error) {
	_, c, err := comments(data, path)
	if err != nil {
		return types.NewTags(), err
	}
	return vorbis.ReadTags(c), nil
}

// ReadCover implements registry.Adapter. The MIME type is always sniffed
// from the image bytes.
func (adapter) ReadCover(data []byte, path string) (*types.Cover, error) {
	_, c, err := comments(data, path)
	if err != nil {
		return nil, err
	}

	cover, err := vorbis.ReadPicture(c)
	if err != nil {
		return nil, parseError(path, 0, "malformed "+vorbis.PictureKey, err)
	}
	return cover, nil
}

// WriteTags implements registry.Adapter.
func (adapter) WriteTags(data []byte, path string, tags types.Tags) ([]byte, error) {
	h, c, err := comments(data, path)
	if err != nil {
		return nil, err
	}
	if err := vorbis.ApplyTags(c, tags); err != nil {
		return nil, err
	}
	return h.rewrite(data, path, vorbis.Marshal(c))
}

// WriteCover implements registry.Adapter.
func (adapter) WriteCover(data []byte, path string, cover types.Cover) ([]byte, error) {
	h, c, err := comments(data, path)
	if err != nil {
		return nil, err
	}
	if err := vorbis.SetPicture(c, cover); err != nil {
		return nil, err
	}
	return h.rewrite(data, path, vorbis.Marshal(c))
}

func init() {
	registry.Register(types.KindOggComment, adapter{})
}
