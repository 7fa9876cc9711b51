package tagsync

import (
	"github.com/simonhull/tagsync/internal/types"
)

// Tags is an alias to types.Tags.
// Re-exporting from internal/types to maintain public API.
type Tags = types.Tags

// Field is an alias to types.Field.
type Field = types.Field

// Re-export the canonical fields, in canonical order.
const (
	FieldTitle       = types.FieldTitle
	FieldArtist      = types.FieldArtist
	FieldAlbum       = types.FieldAlbum
	FieldYear        = types.FieldYear
	FieldTrack       = types.FieldTrack
	FieldGenre       = types.FieldGenre
	FieldComment     = types.FieldComment
	FieldAlbumArtist = types.FieldAlbumArtist
	FieldComposer    = types.FieldComposer
)

// Fields returns the nine canonical fields in canonical order.
func Fields() []Field {
	return types.Fields()
}

// ParseField maps a canonical key such as "albumartist" to its Field.
func ParseField(key string) (Field, bool) {
	return types.ParseField(key)
}
