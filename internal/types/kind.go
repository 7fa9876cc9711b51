// Package types provides the format-independent values exchanged with
// callers: the canonical tag set, cover images, container kinds and the
// error taxonomy shared by every adapter.
package types

import (
	"path/filepath"
	"strings"
)

// Kind identifies the binary container family of an audio file.
//
// Kind is derived from the file extension alone; the file is never opened
// to decide it.
type Kind int

const (
	// KindUnsupported is returned for any extension outside the four
	// supported containers.
	KindUnsupported Kind = iota // Unsupported
	// KindFrameTagged is an MP3 stream carrying an ID3v2 tag.
	KindFrameTagged // FrameTagged
	// KindBlockComment is a FLAC stream with Vorbis comment and picture blocks.
	KindBlockComment // BlockComment
	// KindOggComment is an Ogg stream whose comment header holds the tags.
	KindOggComment // OggComment
	// KindAtomBox is an MP4/M4A file with iTunes-style ilst atoms.
	KindAtomBox // AtomBox
)

var kindNames = [...]string{
	KindUnsupported:  "Unsupported",
	KindFrameTagged:  "FrameTagged",
	KindBlockComment: "BlockComment",
	KindOggComment:   "OggComment",
	KindAtomBox:      "AtomBox",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnsupported]
	}
	return kindNames[k]
}

// Extensions returns the lowercase file extensions mapped to this kind.
func (k Kind) Extensions() []string {
	switch k {
	case KindFrameTagged:
		return []string{".mp3"}
	case KindBlockComment:
		return []string{".flac"}
	case KindOggComment:
		return []string{".ogg"}
	case KindAtomBox:
		return []string{".m4a"}
	default:
		return nil
	}
}

// Supported reports whether k is one of the four container kinds.
func (k Kind) Supported() bool {
	return k > KindUnsupported && int(k) < len(kindNames)
}

var kindByExt = map[string]Kind{
	".mp3":  KindFrameTagged,
	".flac": KindBlockComment,
	".ogg":  KindOggComment,
	".m4a":  KindAtomBox,
}

// Classify maps a path to its container kind by lowercase extension.
//
// Unknown extensions yield KindUnsupported.
func Classify(path string) Kind {
	return kindByExt[strings.ToLower(filepath.Ext(path))]
}
