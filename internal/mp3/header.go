package mp3

import (
	"bytes"

	binutil "github.com/simonhull/tagsync/internal/binary"
	"github.com/simonhull/tagsync/internal/types"
)

const (
	headerSize = 10

	flagFooter = 0x10

	// minVersion is the oldest ID3v2 major version the tag library parses.
	minVersion = 3
)

var id3Magic = []byte("ID3")

// tagRegion returns the length of the leading ID3v2 tag, header and footer
// included, or 0 when data does not start with one.
func tagRegion(data []byte, path string) (int64, error) {
	if !bytes.HasPrefix(data, id3Magic) {
		return 0, nil
	}

	sr := binutil.NewSafeReader(data, path)
	header, err := sr.Bytes(0, headerSize, "ID3v2 header")
	if err != nil {
		return 0, parseError(path, 0, "truncated ID3v2 header", err)
	}

	// 0xFF in a version byte or a set high bit in the size is never valid.
	if header[3] == 0xFF || header[4] == 0xFF {
		return 0, parseError(path, 3, "invalid ID3v2 version", nil)
	}
	for _, b := range header[6:10] {
		if b&0x80 != 0 {
			return 0, parseError(path, 6, "ID3v2 size is not synchsafe", nil)
		}
	}

	size := int64(headerSize) + int64(binutil.Synchsafe(header[6:10]))
	if header[5]&flagFooter != 0 {
		size += headerSize
	}
	if size > sr.Size() {
		return 0, parseError(path, 6, "ID3v2 tag extends past end of file", nil)
	}
	return size, nil
}

func parseError(path string, offset int64, reason string, err error) *types.ParseError {
	return &types.ParseError{
		Err:    err,
		Path:   path,
		Reason: reason,
		Offset: offset,
		Kind:   types.KindFrameTagged,
	}
}
