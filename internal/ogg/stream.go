package ogg

import (
	"bytes"
	"fmt"

	binutil "github.com/simonhull/tagsync/internal/binary"
	"github.com/simonhull/tagsync/internal/types"
)

// headerSet is the header region of the first logical stream in a file.
type headerSet struct {
	codec   codec
	serial  uint32
	packets [][]byte

	// pages are the pages, of any stream, read up to the end of the
	// last header packet.
	pages []*Page

	// end is the file offset just past the last header page.
	end int64

	// interleaved is set when another logical stream has pages inside
	// the header region.
	interleaved bool

	// spill is set when the last header page also carries audio data.
	spill bool
}

func parseError(path string, offset int64, reason string, err error) *types.ParseError {
	return &types.ParseError{
		Err:    err,
		Path:   path,
		Reason: reason,
		Offset: offset,
		Kind:   types.KindOggComment,
	}
}

// readHeaders reassembles the header packets of the first logical stream.
func readHeaders(data []byte, path string) (*headerSet, error) {
	sr := binutil.NewSafeReader(data, path)
	h := &headerSet{}

	var (
		offset  int64
		partial []byte
		started bool
	)

	for {
		page, err := readPage(sr, offset)
		if err != nil {
			return nil, parseError(path, offset, "unreadable Ogg page", err)
		}

		if !started {
			if page.Flags&flagBOS == 0 {
				return nil, parseError(path, offset, "first page does not begin a stream", nil)
			}
			h.serial = page.Serial
			started = true
		}

		h.pages = append(h.pages, page)
		offset += page.Size
		h.end = offset

		if page.Serial != h.serial {
			h.interleaved = true
			continue
		}

		pos := 0
		for i, seg := range page.Segments {
			partial = append(partial, page.Data[pos:pos+int(seg)]...)
			pos += int(seg)
			if seg == 255 {
				continue
			}

			h.packets = append(h.packets, partial)
			partial = nil

			if len(h.packets) == 1 {
				if h.codec, err = detectCodec(h.packets[0]); err != nil {
					return nil, parseError(path, page.Offset, "unknown codec", err)
				}
			}
			if len(h.packets) == h.codec.headers {
				h.spill = i < len(page.Segments)-1
				return h, nil
			}
		}
	}
}

// comment returns the comment body of the header set.
func (h *headerSet) comment(path string) ([]byte, error) {
	if len(h.packets) < 2 {
		return nil, parseError(path, 0, "missing comment header", nil)
	}
	body, err := h.codec.commentBody(h.packets[1])
	if err != nil {
		return nil, parseError(path, h.pages[0].Size, "malformed comment header", err)
	}
	return body, nil
}

// rewrite returns data with the comment packet replaced by body. The
// identification page is kept verbatim, the remaining header packets are
// laid out on new pages, and every later page of the stream is renumbered.
func (h *headerSet) rewrite(data []byte, path string, body []byte) ([]byte, error) {
	if h.interleaved {
		return nil, fmt.Errorf("%s: other logical streams are interleaved with the header pages", path)
	}
	if h.spill {
		return nil, fmt.Errorf("%s: audio data shares a page with the last header packet", path)
	}

	first := h.pages[0]
	if first.packetsEnded() != 1 || first.Segments[len(first.Segments)-1] == 255 {
		return nil, fmt.Errorf("%s: first page must hold exactly the identification header", path)
	}

	packets := make([][]byte, 0, len(h.packets)-1)
	packets = append(packets, h.codec.commentPacket(body))
	packets = append(packets, h.packets[2:]...)

	headerPages := paginate(packets, h.serial, first.Sequence+1)
	delta := uint32(len(headerPages)) - uint32(len(h.pages)-1)

	var buf bytes.Buffer
	buf.Grow(len(data) + len(body))
	sw := binutil.NewSafeWriter(&buf)
	if err := sw.WriteBytes(data[:first.Size]); err != nil {
		return nil, err
	}
	for _, p := range headerPages {
		if err := sw.WriteBytes(p.bytes()); err != nil {
			return nil, err
		}
	}

	if delta == 0 {
		if err := sw.WriteBytes(data[h.end:]); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	sr := binutil.NewSafeReader(data, path)
	for offset := h.end; offset < int64(len(data)); {
		page, err := readPage(sr, offset)
		if err != nil {
			return nil, parseError(path, offset, "unreadable Ogg page", err)
		}
		out := data[offset : offset+page.Size]
		if page.Serial == h.serial {
			page.Sequence += delta
			out = page.bytes()
		}
		if err := sw.WriteBytes(out); err != nil {
			return nil, err
		}
		offset += page.Size
	}
	return buf.Bytes(), nil
}
