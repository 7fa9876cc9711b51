package mp3

import (
	"github.com/bogem/id3v2/v2"

	"github.com/simonhull/tagsync/internal/types"
)

const coverDescription = "Cover"

// readPicture returns the first attached picture, whatever its type.
func readPicture(tag *id3v2.Tag) *types.Cover {
	for _, f := range tag.GetFrames(framePicture) {
		pf, ok := f.(id3v2.PictureFrame)
		if !ok || len(pf.Picture) == 0 {
			continue
		}
		cover := types.NewCover(pf.Picture, pf.MimeType)
		return &cover
	}
	return nil
}

// writePicture removes every attached picture and adds cover as the
// single front cover.
func writePicture(tag *id3v2.Tag, cover types.Cover) {
	tag.DeleteFrames(framePicture)
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    textEncoding(tag),
		MimeType:    cover.MIME,
		PictureType: id3v2.PTFrontCover,
		Description: coverDescription,
		Picture:     cover.Data,
	})
}
