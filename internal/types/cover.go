package types

import (
	"bytes"
	"fmt"
	"strings"
)

// MIME types the codec produces.
const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
)

var (
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
)

// SniffMIME classifies image bytes by their leading signature.
//
// JPEG and PNG are recognized; anything else, including an empty slice,
// is reported as image/jpeg. It never fails.
func SniffMIME(data []byte) string {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return MIMEPNG
	case bytes.HasPrefix(data, jpegSignature):
		return MIMEJPEG
	default:
		return MIMEJPEG
	}
}

// Cover is the single front-cover image of a file.
//
// Absence of a cover is a nil *Cover, never a Cover with empty Data.
type Cover struct {
	// Image bytes, exactly as embedded.
	Data []byte

	// MIME type: "image/jpeg", "image/png", or a sniffed fallback.
	MIME string
}

// NewCover returns a cover for data, sniffing the MIME type when mime is empty.
func NewCover(data []byte, mime string) Cover {
	if mime == "" {
		mime = SniffMIME(data)
	}
	return Cover{Data: data, MIME: mime}
}

// Valid reports whether the cover carries image bytes.
func (c Cover) Valid() bool {
	return len(c.Data) > 0
}

// Equal reports whether both covers hold the same bytes and MIME type.
func (c Cover) Equal(other Cover) bool {
	return c.MIME == other.MIME && bytes.Equal(c.Data, other.Data)
}

// IsPNG reports whether the MIME type names PNG.
func (c Cover) IsPNG() bool {
	return strings.HasSuffix(strings.ToLower(c.MIME), "png")
}

// String describes the cover, e.g. "PNG 600x600, 245KB".
func (c Cover) String() string {
	dims := ""
	if w, h := c.Dimensions(); w > 0 && h > 0 {
		dims = fmt.Sprintf(" %dx%d", w, h)
	}
	return fmt.Sprintf("%s%s, %s", mimeToFormat(c.MIME), dims, formatSize(len(c.Data)))
}

// Dimensions extracts width and height from JPEG or PNG data.
// It returns 0, 0 when the image header cannot be located.
func (c Cover) Dimensions() (int, int) {
	switch {
	case bytes.HasPrefix(c.Data, pngSignature):
		return pngDimensions(c.Data)
	case bytes.HasPrefix(c.Data, jpegSignature):
		return jpegDimensions(c.Data)
	default:
		return 0, 0
	}
}

// jpegDimensions scans for a baseline, extended or progressive SOF marker.
func jpegDimensions(data []byte) (int, int) {
	for i := 0; i+9 <= len(data); i++ {
		if data[i] != 0xFF {
			continue
		}
		switch data[i+1] {
		case 0xC0, 0xC1, 0xC2:
			// FF Cn, length(2), precision(1), height(2), width(2)
			height := int(data[i+5])<<8 | int(data[i+6])
			width := int(data[i+7])<<8 | int(data[i+8])
			return width, height
		}
	}
	return 0, 0
}

// pngDimensions reads the IHDR chunk that follows the signature.
func pngDimensions(data []byte) (int, int) {
	if len(data) < 24 || string(data[12:16]) != "IHDR" {
		return 0, 0
	}
	width := int(data[16])<<24 | int(data[17])<<16 | int(data[18])<<8 | int(data[19])
	height := int(data[20])<<24 | int(data[21])<<16 | int(data[22])<<8 | int(data[23])
	return width, height
}

func formatSize(n int) string {
	const (
		KB = 1024
		MB = 1024 * KB
	)

	switch {
	case n >= MB:
		return fmt.Sprintf("%.1fMB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%dKB", n/KB)
	default:
		return fmt.Sprintf("%dB", n)
	}
}

func mimeToFormat(mime string) string {
	switch strings.ToLower(mime) {
	case MIMEJPEG, "image/jpg":
		return "JPEG"
	case MIMEPNG:
		return "PNG"
	case "image/gif":
		return "GIF"
	default:
		return "Image"
	}
}
