package m4a

import (
	"strconv"
	"strings"

	"github.com/simonhull/tagsync/internal/binary"
	"github.com/simonhull/tagsync/internal/types"
)

// Item atom names. In MP4, © is the single byte 0xA9.
const (
	itemTrack = "trkn"
	itemCover = "covr"
)

var textItems = map[types.Field]string{
	types.FieldTitle:       "\xA9nam",
	types.FieldArtist:      "\xA9ART",
	types.FieldAlbum:       "\xA9alb",
	types.FieldYear:        "\xA9day",
	types.FieldGenre:       "\xA9gen",
	types.FieldComment:     "\xA9cmt",
	types.FieldAlbumArtist: "aART",
	types.FieldComposer:    "\xA9wrt",
}

// Well-known types of a data atom.
const (
	dataImplicit = 0
	dataUTF8     = 1
	dataJPEG     = 13
	dataPNG      = 14
)

// data is the decoded payload of one data atom.
type data struct {
	typ   uint32
	value []byte
}

// dataAtoms returns every data child of an ilst item.
func dataAtoms(sr *binary.SafeReader, item *Atom) ([]data, error) {
	var out []data
	for _, a := range item.Children {
		if a.Type != "data" {
			continue
		}
		if a.DataSize() < 8 {
			return nil, parseError(sr.Path(), a.Offset, "data atom shorter than its type and locale", nil)
		}

		// version (1), type (3), locale (4), value
		typ, err := binary.Read[uint32](sr, a.DataOffset(), "data type")
		if err != nil {
			return nil, err
		}
		value, err := sr.Bytes(a.DataOffset()+8, int(a.DataSize()-8), "data value")
		if err != nil {
			return nil, err
		}
		out = append(out, data{typ: typ & 0xFFFFFF, value: value})
	}
	return out, nil
}

// firstData returns the first data child of item, or ok false.
func firstData(sr *binary.SafeReader, item *Atom) (data, bool, error) {
	d, err := dataAtoms(sr, item)
	if err != nil || len(d) == 0 {
		return data{}, false, err
	}
	return d[0], true, nil
}

// readItems decodes the canonical tags from the items of ilst.
func readItems(sr *binary.SafeReader, ilst *Atom) (types.Tags, error) {
	names := make(map[string]types.Field, len(textItems))
	for f, name := range textItems {
		names[name] = f
	}

	tags := types.NewTags()
	for _, item := range ilst.Children {
		f, text := names[item.Type]
		if !text && item.Type != itemTrack {
			continue
		}

		d, ok, err := firstData(sr, item)
		if err != nil {
			return types.NewTags(), err
		}
		if !ok {
			continue
		}

		if text {
			if tags.Get(f) == "" {
				tags.Set(f, strings.TrimRight(string(d.value), "\x00"))
			}
			continue
		}

		// reserved (2), track (2), total (2), reserved (2)
		if len(d.value) >= 4 && tags.Track == "" {
			if n := int(d.value[2])<<8 | int(d.value[3]); n > 0 {
				tags.Track = strconv.Itoa(n)
			}
		}
	}
	return tags, nil
}

// readCover returns the first image of the covr item, or nil.
func readCover(sr *binary.SafeReader, ilst *Atom) (*types.Cover, error) {
	item := find(ilst.Children, itemCover)
	if item == nil {
		return nil, nil
	}

	images, err := dataAtoms(sr, item)
	if err != nil {
		return nil, err
	}
	for _, d := range images {
		if len(d.value) == 0 {
			continue
		}
		cover := types.NewCover(d.value, typeToMIME(d.typ))
		return &cover, nil
	}
	return nil, nil
}

// typeToMIME maps a covr data type to a MIME type. BMP and unknown types
// are sniffed, so they read as image/jpeg.
func typeToMIME(typ uint32) string {
	switch typ {
	case dataJPEG:
		return types.MIMEJPEG
	case dataPNG:
		return types.MIMEPNG
	default:
		return ""
	}
}

// mimeToType maps a cover MIME type to the data type written to covr.
func mimeToType(c types.Cover) uint32 {
	if c.IsPNG() {
		return dataPNG
	}
	return dataJPEG
}
