package tagsync

import (
	"github.com/simonhull/tagsync/internal/types"
)

// Cover is an alias to types.Cover.
// Re-exporting from internal/types to maintain public API.
type Cover = types.Cover

// MIME types reported for covers.
const (
	MIMEJPEG = types.MIMEJPEG
	MIMEPNG  = types.MIMEPNG
)

// NewCover returns a cover for data. An empty mime is sniffed from the
// image bytes.
func NewCover(data []byte, mime string) Cover {
	return types.NewCover(data, mime)
}

// SniffMIME returns "image/png" for data starting with the PNG signature
// and "image/jpeg" for anything else.
func SniffMIME(data []byte) string {
	return types.SniffMIME(data)
}
