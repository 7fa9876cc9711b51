package m4a

import (
	"github.com/simonhull/tagsync/internal/binary"
	"github.com/simonhull/tagsync/internal/registry"
	"github.com/simonhull/tagsync/internal/types"
)

// adapter implements registry.Adapter for MP4 audio files.
type adapter struct{}

// itemListAtom parses data and returns its ilst atom, or nil when the file
// has no item list.
func itemListAtom(data []byte, path string) (*binary.SafeReader, *Atom, error) {
	atoms, err := Parse(data, path)
	if err != nil {
		return nil, nil, err
	}

	moov := find(atoms, "moov")
	if moov == nil {
		return nil, nil, parseError(path, 0, "no moov atom", nil)
	}
	return binary.NewSafeReader(data, path), moov.Find("udta", "meta", "ilst"), nil
}

// ReadTags implements registry.Adapter.
func (adapter) ReadTags(data []byte, path string) (types.Tags, error) {
	sr, ilst, err := itemListAtom(data, path)
	if err != nil || ilst == nil {
		return types.NewTags(), err
	}

	tags, err := readItems(sr, ilst)
	if err != nil {
		return types.NewTags(), parseError(path, ilst.Offset, "malformed item list", err)
	}
	return tags, nil
}

// ReadCover implements registry.Adapter.
func (adapter) ReadCover(data []byte, path string) (*types.Cover, error) {
	sr, ilst, err := itemListAtom(data, path)
	if err != nil || ilst == nil {
		return nil, err
	}

	cover, err := readCover(sr, ilst)
	if err != nil {
		return nil, parseError(path, ilst.Offset, "malformed covr item", err)
	}
	return cover, nil
}

// WriteTags implements registry.Adapter. The track total is always
// written as 0.
func (adapter) WriteTags(data []byte, path string, tags types.Tags) ([]byte, error) {
	return rewrite(data, path, func(ilst *node) error {
		return setItems(ilst, tags)
	})
}

// WriteCover implements registry.Adapter.
func (adapter) WriteCover(data []byte, path string, cover types.Cover) ([]byte, error) {
	return rewrite(data, path, func(ilst *node) error {
		setCover(ilst, cover)
		return nil
	})
}

func init() {
	registry.Register(types.KindAtomBox, adapter{})
}
