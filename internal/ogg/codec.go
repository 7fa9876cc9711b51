package ogg

import (
	"bytes"
	"errors"
)

var (
	errNoCapture   = errors.New("missing OggS capture pattern")
	errVersion     = errors.New("unsupported stream structure version")
	errCodec       = errors.New("first packet is neither a Vorbis nor an Opus identification header")
	errCommentType = errors.New("second packet is not a comment header")
)

// codec describes how a stream's header packets are laid out.
type codec struct {
	name string

	// ident prefixes the identification packet.
	ident []byte

	// comment prefixes the comment packet.
	comment []byte

	// framing reports whether the comment packet ends with a framing bit.
	framing bool

	// headers is the number of header packets before audio starts.
	headers int
}

var codecs = []codec{
	{
		name:    "Vorbis",
		ident:   []byte("\x01vorbis"),
		comment: []byte("\x03vorbis"),
		framing: true,
		headers: 3,
	},
	{
		name:    "Opus",
		ident:   []byte("OpusHead"),
		comment: []byte("OpusTags"),
		headers: 2,
	},
}

func detectCodec(first []byte) (codec, error) {
	for _, c := range codecs {
		if bytes.HasPrefix(first, c.ident) {
			return c, nil
		}
	}
	return codec{}, errCodec
}

// commentBody strips the codec prefix and framing bit from a comment packet.
func (c codec) commentBody(packet []byte) ([]byte, error) {
	if !bytes.HasPrefix(packet, c.comment) {
		return nil, errCommentType
	}
	body := packet[len(c.comment):]
	if c.framing && len(body) > 0 {
		body = body[:len(body)-1]
	}
	return body, nil
}

// commentPacket wraps a comment body back into a comment packet.
func (c codec) commentPacket(body []byte) []byte {
	out := make([]byte, 0, len(c.comment)+len(body)+1)
	out = append(out, c.comment...)
	out = append(out, body...)
	if c.framing {
		out = append(out, 0x01)
	}
	return out
}
