package types

import (
	"iter"
	"strings"
)

// Field names one of the nine canonical tag keys.
type Field int

// Canonical fields, in canonical order.
const (
	FieldTitle Field = iota
	FieldArtist
	FieldAlbum
	FieldYear
	FieldTrack
	FieldGenre
	FieldComment
	FieldAlbumArtist
	FieldComposer

	fieldCount
)

var fieldKeys = [fieldCount]string{
	FieldTitle:       "title",
	FieldArtist:      "artist",
	FieldAlbum:       "album",
	FieldYear:        "year",
	FieldTrack:       "track",
	FieldGenre:       "genre",
	FieldComment:     "comment",
	FieldAlbumArtist: "albumartist",
	FieldComposer:    "composer",
}

// String returns the canonical key ("title", "albumartist", ...).
func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldKeys[f]
}

// Fields returns all canonical fields in canonical order.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// ParseField maps a canonical key back to its Field, ignoring case.
func ParseField(key string) (Field, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, k := range fieldKeys {
		if k == key {
			return Field(i), true
		}
	}
	return 0, false
}

// Tags is the canonical tag set: nine string fields that are always
// present. A missing value is the empty string.
//
// Writing a Tags value replaces every field in the container: an empty
// field deletes the corresponding native tag, a non-empty one overwrites
// it. Callers that want to change one field read, modify and write the
// whole set.
type Tags struct {
	Title       string
	Artist      string
	Album       string
	Year        string
	Track       string
	Genre       string
	Comment     string
	AlbumArtist string
	Composer    string
}

// NewTags returns a tag set with all nine fields empty.
func NewTags() Tags {
	return Tags{}
}

func (t *Tags) field(f Field) *string {
	switch f {
	case FieldTitle:
		return &t.Title
	case FieldArtist:
		return &t.Artist
	case FieldAlbum:
		return &t.Album
	case FieldYear:
		return &t.Year
	case FieldTrack:
		return &t.Track
	case FieldGenre:
		return &t.Genre
	case FieldComment:
		return &t.Comment
	case FieldAlbumArtist:
		return &t.AlbumArtist
	case FieldComposer:
		return &t.Composer
	default:
		return nil
	}
}

// Get returns the value of f, or "" for an unknown field.
func (t Tags) Get(f Field) string {
	if p := t.field(f); p != nil {
		return *p
	}
	return ""
}

// Set assigns v to f. Unknown fields are ignored.
func (t *Tags) Set(f Field, v string) {
	if p := t.field(f); p != nil {
		*p = v
	}
}

// All iterates the fields in canonical order, including empty ones.
func (t Tags) All() iter.Seq2[Field, string] {
	return func(yield func(Field, string) bool) {
		for f := range fieldCount {
			if !yield(f, t.Get(f)) {
				return
			}
		}
	}
}

// Equal reports whether both sets hold identical values for all nine fields.
func (t Tags) Equal(other Tags) bool {
	return t == other
}

// IsEmpty reports whether every field is empty.
func (t Tags) IsEmpty() bool {
	return t == Tags{}
}

// Diff returns the fields whose values differ between t and other.
func (t Tags) Diff(other Tags) []Field {
	var out []Field
	for f, v := range t.All() {
		if other.Get(f) != v {
			out = append(out, f)
		}
	}
	return out
}
