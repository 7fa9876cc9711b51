package mp3

import (
	"github.com/bogem/id3v2/v2"

	"github.com/simonhull/tagsync/internal/types"
)

const (
	frameYear       = "TDRC"
	frameYearLegacy = "TYER"
	frameComment    = "COMM"
	framePicture    = "APIC"

	commentLanguage = "eng"
)

// textFrames maps the canonical fields stored as plain text frames.
// Year and comment have their own rules.
var textFrames = map[types.Field]string{
	types.FieldTitle:       "TIT2",
	types.FieldArtist:      "TPE1",
	types.FieldAlbum:       "TALB",
	types.FieldTrack:       "TRCK",
	types.FieldGenre:       "TCON",
	types.FieldAlbumArtist: "TPE2",
	types.FieldComposer:    "TCOM",
}

// textEncoding picks the widest encoding the tag version supports.
// UTF-8 only exists from ID3v2.4 on.
func textEncoding(tag *id3v2.Tag) id3v2.Encoding {
	if tag.Version() >= 4 {
		return id3v2.EncodingUTF8
	}
	return id3v2.EncodingUTF16
}

func readFrames(tag *id3v2.Tag) types.Tags {
	tags := types.NewTags()

	for f, id := range textFrames {
		tags.Set(f, tag.GetTextFrame(id).Text)
	}

	tags.Year = tag.GetTextFrame(frameYear).Text
	if tags.Year == "" {
		tags.Year = tag.GetTextFrame(frameYearLegacy).Text
	}

	if cf, ok := findComment(tag); ok {
		tags.Comment = cf.Text
	}

	return tags
}

func writeFrames(tag *id3v2.Tag, tags types.Tags) {
	enc := textEncoding(tag)

	for f, id := range textFrames {
		tag.DeleteFrames(id)
		if v := tags.Get(f); v != "" {
			tag.AddTextFrame(id, enc, v)
		}
	}

	tag.DeleteFrames(frameYear)
	tag.DeleteFrames(frameYearLegacy)
	if tags.Year != "" {
		id := frameYear
		if tag.Version() < 4 {
			id = frameYearLegacy
		}
		tag.AddTextFrame(id, enc, tags.Year)
	}

	writeComment(tag, enc, tags.Comment)
}

// isDefaultComment reports whether cf occupies the slot the codec owns:
// English language with no description.
func isDefaultComment(cf id3v2.CommentFrame) bool {
	return cf.Language == commentLanguage && cf.Description == ""
}

func findComment(tag *id3v2.Tag) (id3v2.CommentFrame, bool) {
	for _, f := range tag.GetFrames(frameComment) {
		cf, ok := f.(id3v2.CommentFrame)
		if ok && isDefaultComment(cf) {
			return cf, true
		}
	}
	return id3v2.CommentFrame{}, false
}

// writeComment replaces the default comment slot and re-adds every other
// comment frame unchanged.
func writeComment(tag *id3v2.Tag, enc id3v2.Encoding, text string) {
	var others []id3v2.CommentFrame
	for _, f := range tag.GetFrames(frameComment) {
		if cf, ok := f.(id3v2.CommentFrame); ok && !isDefaultComment(cf) {
			others = append(others, cf)
		}
	}

	tag.DeleteFrames(frameComment)
	for _, cf := range others {
		tag.AddCommentFrame(cf)
	}

	if text != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding: enc,
			Language: commentLanguage,
			Text:     text,
		})
	}
}
