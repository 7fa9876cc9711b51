package flac

import (
	"bytes"
	"fmt"

	"github.com/go-flac/go-flac/v2"

	binutil "github.com/simonhull/tagsync/internal/binary"
	"github.com/simonhull/tagsync/internal/types"
)

const (
	blockHeaderSize = 4
	maxBlockLength  = 1<<24 - 1

	blockTypeInvalid flac.BlockType = 127
)

var magic = []byte("fLaC")

// stream is a FLAC file split into the bytes before the metadata, the
// metadata blocks and the audio frames.
type stream struct {
	prefix []byte // leading ID3v2 tag, if any
	blocks []*flac.MetaDataBlock
	frames []byte
}

func parseError(path string, offset int64, reason string, err error) *types.ParseError {
	return &types.ParseError{
		Err:    err,
		Path:   path,
		Reason: reason,
		Offset: offset,
		Kind:   types.KindBlockComment,
	}
}

// id3Footer is the ID3v2.4 header flag announcing a 10-byte footer.
const id3Footer = 0x10

// id3Prefix returns the length of an ID3v2 tag some encoders put in front
// of the stream marker.
func id3Prefix(sr *binutil.SafeReader) int64 {
	head, err := sr.Bytes(0, 10, "ID3v2 header")
	if err != nil || !bytes.HasPrefix(head, []byte("ID3")) {
		return 0
	}
	size := 10 + int64(binutil.Synchsafe(head[6:10]))
	if head[5]&id3Footer != 0 {
		size += 10
	}
	return size
}

// parseStream splits data into metadata blocks. STREAMINFO must come first.
func parseStream(data []byte, path string) (*stream, error) {
	sr := binutil.NewSafeReader(data, path)

	start := id3Prefix(sr)
	m, err := sr.Bytes(start, len(magic), "FLAC magic bytes")
	if err != nil {
		return nil, parseError(path, start, "missing stream marker", err)
	}
	if !bytes.Equal(m, magic) {
		return nil, parseError(path, start, "invalid FLAC magic bytes", nil)
	}

	s := &stream{prefix: data[:start]}
	offset := start + int64(len(magic))
	for {
		header, err := binutil.Read[uint32](sr, offset, "metadata block header")
		if err != nil {
			return nil, parseError(path, offset, "truncated metadata block header", err)
		}

		isLast := header>>31 == 1
		blockType := flac.BlockType((header >> 24) & 0x7F)
		blockLength := int(header & 0x00FFFFFF)

		if blockType == blockTypeInvalid {
			return nil, parseError(path, offset, "invalid metadata block type", nil)
		}
		if len(s.blocks) == 0 && blockType != flac.StreamInfo {
			return nil, parseError(path, offset, "first metadata block is not STREAMINFO", nil)
		}

		body, err := sr.Bytes(offset+blockHeaderSize, blockLength, "metadata block")
		if err != nil {
			return nil, parseError(path, offset, fmt.Sprintf("truncated %s block", blockName(blockType)), err)
		}
		s.blocks = append(s.blocks, &flac.MetaDataBlock{Type: blockType, Data: body})

		offset += blockHeaderSize + int64(blockLength)
		if isLast {
			break
		}
	}

	s.frames = data[offset:]
	return s, nil
}

// find returns the index of the first block of type t, or -1.
func (s *stream) find(t flac.BlockType) int {
	for i, b := range s.blocks {
		if b.Type == t {
			return i
		}
	}
	return -1
}

// removeAll drops every block of type t.
func (s *stream) removeAll(t flac.BlockType) {
	kept := s.blocks[:0]
	for _, b := range s.blocks {
		if b.Type != t {
			kept = append(kept, b)
		}
	}
	s.blocks = kept
}

// insert adds b in front of any trailing padding so padding stays last.
func (s *stream) insert(b *flac.MetaDataBlock) {
	at := len(s.blocks)
	for at > 1 && s.blocks[at-1].Type == flac.Padding {
		at--
	}
	s.blocks = append(s.blocks, nil)
	copy(s.blocks[at+1:], s.blocks[at:])
	s.blocks[at] = b
}

// bytes serializes the stream, setting the last-block flag on the final
// metadata block only.
func (s *stream) bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(s.prefix)
	buf.Write(magic)
	for i, b := range s.blocks {
		if len(b.Data) > maxBlockLength {
			return nil, fmt.Errorf("%s block of %d bytes exceeds the 24-bit length field", blockName(b.Type), len(b.Data))
		}
		buf.Write(b.Marshal(i == len(s.blocks)-1))
	}
	buf.Write(s.frames)
	return buf.Bytes(), nil
}

func blockName(t flac.BlockType) string {
	switch t {
	case flac.StreamInfo:
		return "STREAMINFO"
	case flac.Padding:
		return "PADDING"
	case flac.Application:
		return "APPLICATION"
	case flac.SeekTable:
		return "SEEKTABLE"
	case flac.VorbisComment:
		return "VORBIS_COMMENT"
	case flac.CueSheet:
		return "CUESHEET"
	case flac.Picture:
		return "PICTURE"
	default:
		return fmt.Sprintf("reserved(%d)", t)
	}
}
