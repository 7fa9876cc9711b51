// Package vorbis maps Vorbis comment headers and FLAC picture blocks to the
// canonical model.
//
// FLAC stores both natively as metadata blocks. Ogg streams carry the same
// comment body inside their second header packet and embed the picture
// block base64-encoded under METADATA_BLOCK_PICTURE.
package vorbis

import (
	"strings"

	"github.com/go-flac/flacvorbis/v2"
	"github.com/go-flac/go-flac/v2"

	"github.com/simonhull/tagsync/internal/types"
)

// PictureKey is the comment key holding a base64 picture block.
const PictureKey = "METADATA_BLOCK_PICTURE"

var fieldKeys = map[types.Field]string{
	types.FieldTitle:       "TITLE",
	types.FieldArtist:      "ARTIST",
	types.FieldAlbum:       "ALBUM",
	types.FieldYear:        "DATE",
	types.FieldTrack:       "TRACKNUMBER",
	types.FieldGenre:       "GENRE",
	types.FieldComment:     "COMMENT",
	types.FieldAlbumArtist: "ALBUMARTIST",
	types.FieldComposer:    "COMPOSER",
}

// Key returns the upper-case comment key for a canonical field.
func Key(f types.Field) string {
	return fieldKeys[f]
}

// Parse decodes a comment body: vendor string, comment count and
// length-prefixed KEY=VALUE entries, all little-endian.
func Parse(body []byte) (*flacvorbis.MetaDataBlockVorbisComment, error) {
	return flacvorbis.ParseFromMetaDataBlock(flac.MetaDataBlock{
		Type: flac.VorbisComment,
		Data: body,
	})
}

// New returns an empty comment block with the library's vendor string.
func New() *flacvorbis.MetaDataBlockVorbisComment {
	return flacvorbis.New()
}

// Marshal encodes a comment block back to its body bytes.
func Marshal(c *flacvorbis.MetaDataBlockVorbisComment) []byte {
	return c.Marshal().Data
}

// splitComment splits "KEY=VALUE". Entries without '=' report ok == false.
func splitComment(comment string) (key, value string, ok bool) {
	return strings.Cut(comment, "=")
}

// Lookup returns the first value stored under key, ignoring key case.
func Lookup(c *flacvorbis.MetaDataBlockVorbisComment, key string) (string, bool) {
	for _, cmt := range c.Comments {
		k, v, ok := splitComment(cmt)
		if ok && strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// ReadTags extracts the canonical tags. Keys match case-insensitively and
// the first occurrence of a repeated key wins.
func ReadTags(c *flacvorbis.MetaDataBlockVorbisComment) types.Tags {
	tags := types.NewTags()
	for _, f := range types.Fields() {
		if v, ok := Lookup(c, fieldKeys[f]); ok {
			tags.Set(f, v)
		}
	}
	return tags
}

// Remove deletes every comment under key, ignoring key case.
// The remaining comments keep their order.
func Remove(c *flacvorbis.MetaDataBlockVorbisComment, key string) {
	kept := c.Comments[:0]
	for _, cmt := range c.Comments {
		if k, _, ok := splitComment(cmt); ok && strings.EqualFold(k, key) {
			continue
		}
		kept = append(kept, cmt)
	}
	c.Comments = kept
}

// ApplyTags replaces all nine canonical keys with tags. Empty values are
// removed, others are written once under their upper-case key.
// Comments outside the canonical set are left untouched.
func ApplyTags(c *flacvorbis.MetaDataBlockVorbisComment, tags types.Tags) error {
	for f, v := range tags.All() {
		key := fieldKeys[f]
		Remove(c, key)
		if v == "" {
			continue
		}
		if err := c.Add(key, v); err != nil {
			return err
		}
	}
	return nil
}
