package testfixture

// FLAC metadata block types.
const (
	BlockStreamInfo    = 0
	BlockPadding       = 1
	BlockApplication   = 2
	BlockSeekTable     = 3
	BlockVorbisComment = 4
	BlockCueSheet      = 5
	BlockPicture       = 6
)

// FLACBlock is one metadata block body and its type.
type FLACBlock struct {
	Type byte
	Data []byte
}

// FLACFrames is the stand-in audio appended after the metadata blocks.
var FLACFrames = []byte{0xFF, 0xF8, 0x69, 0x08, 0x00, 0x13, 0x6A, 0x00, 0x01, 0x02, 0x03, 0x04}

// FLAC returns a stream with a STREAMINFO block, the given blocks and
// FLACFrames. The last-block flag is set on the final block.
func FLAC(blocks ...FLACBlock) []byte {
	streamInfo := make([]byte, 34)
	copy(streamInfo, []byte{0x10, 0x00, 0x10, 0x00}) // min/max block size 4096
	copy(streamInfo[10:], []byte{0x0A, 0xC4, 0x42, 0xF0})

	all := append([]FLACBlock{{Type: BlockStreamInfo, Data: streamInfo}}, blocks...)

	out := []byte("fLaC")
	for i, b := range all {
		typ := b.Type
		if i == len(all)-1 {
			typ |= 0x80
		}
		n := len(b.Data)
		out = append(out, typ, byte(n>>16), byte(n>>8), byte(n))
		out = append(out, b.Data...)
	}
	return append(out, FLACFrames...)
}

// VorbisCommentBody returns a comment body: vendor, count and entries,
// little-endian lengths, no framing bit.
func VorbisCommentBody(vendor string, comments ...string) []byte {
	out := concat(le32(uint32(len(vendor))), []byte(vendor), le32(uint32(len(comments))))
	for _, c := range comments {
		out = concat(out, le32(uint32(len(c))), []byte(c))
	}
	return out
}

// PictureBody returns a FLAC picture block body.
func PictureBody(pictureType uint32, mime, desc string, data []byte) []byte {
	return concat(
		be32(pictureType),
		be32(uint32(len(mime))), []byte(mime),
		be32(uint32(len(desc))), []byte(desc),
		be32(0), be32(0), be32(24), be32(0),
		be32(uint32(len(data))), data,
	)
}
