package vorbis

import (
	"encoding/base64"
	"fmt"

	"github.com/go-flac/flacpicture/v2"
	"github.com/go-flac/flacvorbis/v2"
	"github.com/go-flac/go-flac/v2"

	"github.com/simonhull/tagsync/internal/types"
)

// CoverDescription is written as the description of every embedded cover.
const CoverDescription = "Cover"

// NewPicture builds the front-cover picture block for cover.
// Dimensions are filled in when the image header can be read.
func NewPicture(cover types.Cover) *flacpicture.MetadataBlockPicture {
	w, h := cover.Dimensions()
	depth := uint32(24)
	if cover.IsPNG() {
		depth = 32
	}
	return &flacpicture.MetadataBlockPicture{
		PictureType: flacpicture.PictureTypeFrontCover,
		MIME:        cover.MIME,
		Description: CoverDescription,
		Width:       uint32(w),
		Height:      uint32(h),
		ColorDepth:  depth,
		ImageData:   cover.Data,
	}
}

// EncodePicture serializes cover as a picture block body: type, MIME,
// description, dimensions, color depth, color count and image data, all
// length fields big-endian.
func EncodePicture(cover types.Cover) []byte {
	return NewPicture(cover).Marshal().Data
}

// DecodePicture parses a picture block body.
func DecodePicture(body []byte) (*flacpicture.MetadataBlockPicture, error) {
	pic, err := flacpicture.ParseFromMetaDataBlock(flac.MetaDataBlock{
		Type: flac.Picture,
		Data: body,
	})
	if err != nil {
		return nil, fmt.Errorf("decode picture block: %w", err)
	}
	return pic, nil
}

// EncodePictureBase64 returns the METADATA_BLOCK_PICTURE value for cover.
func EncodePictureBase64(cover types.Cover) string {
	return base64.StdEncoding.EncodeToString(EncodePicture(cover))
}

// DecodePictureBase64 decodes a METADATA_BLOCK_PICTURE value.
func DecodePictureBase64(value string) (*flacpicture.MetadataBlockPicture, error) {
	body, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", PictureKey, err)
	}
	return DecodePicture(body)
}

// ReadPicture returns the first picture embedded in the comments, or nil.
// The MIME type is sniffed from the image bytes; the stored one is ignored.
func ReadPicture(c *flacvorbis.MetaDataBlockVorbisComment) (*types.Cover, error) {
	value, ok := Lookup(c, PictureKey)
	if !ok {
		return nil, nil
	}

	pic, err := DecodePictureBase64(value)
	if err != nil {
		return nil, err
	}
	if len(pic.ImageData) == 0 {
		return nil, nil
	}

	cover := types.NewCover(pic.ImageData, types.SniffMIME(pic.ImageData))
	return &cover, nil
}

// SetPicture replaces every embedded picture with cover.
func SetPicture(c *flacvorbis.MetaDataBlockVorbisComment, cover types.Cover) error {
	Remove(c, PictureKey)
	return c.Add(PictureKey, EncodePictureBase64(cover))
}
