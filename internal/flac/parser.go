// Package flac reads and writes the canonical tags and cover of FLAC
// streams through their VORBIS_COMMENT and PICTURE metadata blocks.
package flac

import (
	"github.com/go-flac/go-flac/v2"

	"github.com/simonhull/tagsync/internal/registry"
	"github.com/simonhull/tagsync/internal/types"
	"github.com/simonhull/tagsync/internal/vorbis"
)

// adapter implements registry.Adapter for FLAC streams.
type adapter struct{}

// ReadTags implements registry.Adapter. A stream without a comment block
// has no tags.
func (adapter) ReadTags(data []byte, path string) (types.Tags, error) {
	s, err := parseStream(data, path)
	if err != nil {
		return types.NewTags(), err
	}

	i := s.find(flac.VorbisComment)
	if i < 0 {
		return types.NewTags(), nil
	}

	cmts, err := vorbis.Parse(s.blocks[i].Data)
	if err != nil {
		return types.NewTags(), parseError(path, 0, "malformed VORBIS_COMMENT block", err)
	}
	return vorbis.ReadTags(cmts), nil
}

// ReadCover implements registry.Adapter. The first PICTURE block wins,
// whatever its picture type.
func (adapter) ReadCover(data []byte, path string) (*types.Cover, error) {
	s, err := parseStream(data, path)
	if err != nil {
		return nil, err
	}

	i := s.find(flac.Picture)
	if i < 0 {
		return nil, nil
	}

	pic, err := vorbis.DecodePicture(s.blocks[i].Data)
	if err != nil {
		return nil, parseError(path, 0, "malformed PICTURE block", err)
	}
	if len(pic.ImageData) == 0 {
		return nil, nil
	}

	cover := types.NewCover(pic.ImageData, pic.MIME)
	return &cover, nil
}

// WriteTags implements registry.Adapter. Comments outside the canonical
// set and the vendor string are kept; a missing comment block is created
// right after STREAMINFO.
func (adapter) WriteTags(data []byte, path string, tags types.Tags) ([]byte, error) {
	s, err := parseStream(data, path)
	if err != nil {
		return nil, err
	}

	i := s.find(flac.VorbisComment)
	cmts := vorbis.New()
	if i >= 0 {
		if cmts, err = vorbis.Parse(s.blocks[i].Data); err != nil {
			return nil, parseError(path, 0, "malformed VORBIS_COMMENT block", err)
		}
	}

	if err := vorbis.ApplyTags(cmts, tags); err != nil {
		return nil, err
	}

	block := cmts.Marshal()
	if i >= 0 {
		s.blocks[i] = &block
	} else {
		s.blocks = append(s.blocks[:1], append([]*flac.MetaDataBlock{&block}, s.blocks[1:]...)...)
	}
	return s.bytes()
}

// WriteCover implements registry.Adapter. Every PICTURE block is dropped
// and a single front cover is added ahead of any trailing padding.
func (adapter) WriteCover(data []byte, path string, cover types.Cover) ([]byte, error) {
	s, err := parseStream(data, path)
	if err != nil {
		return nil, err
	}

	s.removeAll(flac.Picture)
	block := vorbis.NewPicture(cover).Marshal()
	s.insert(&block)
	return s.bytes()
}

func init() {
	registry.Register(types.KindBlockComment, adapter{})
}
