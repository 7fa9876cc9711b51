// Package ogg reads and writes the canonical tags and cover of Ogg Vorbis
// and Ogg Opus files through their comment header packet.
package ogg

import (
	"bytes"

	binutil "github.com/simonhull/tagsync/internal/binary"
)

const (
	pageHeaderSize = 27
	maxSegments    = 255
	crcOffset      = 22
)

// Page header flags.
const (
	flagContinued = 0x01
	flagBOS       = 0x02
	flagEOS       = 0x04
)

// noGranule marks a page on which no packet ends.
const noGranule = -1

var capturePattern = []byte("OggS")

// Page represents an Ogg page.
type Page struct {
	Flags    byte   // 0x01 continued, 0x02 BOS, 0x04 EOS
	Granule  int64  // codec-defined position, -1 when no packet ends here
	Serial   uint32 // logical bitstream identifier
	Sequence uint32 // page sequence number within the logical bitstream
	Segments []byte // lacing values
	Data     []byte // concatenated segment payload

	// Offset and Size locate the page in the file it was read from.
	Offset int64
	Size   int64
}

// readPage reads the page at offset.
func readPage(sr *binutil.SafeReader, offset int64) (*Page, error) {
	cr := binutil.NewChainReader(binutil.NewReaderLE(sr, offset))

	pattern := cr.Bytes(len(capturePattern), "Ogg capture pattern")
	version := binutil.ReadChained[uint8](cr, "stream structure version")
	flags := binutil.ReadChained[uint8](cr, "header type")
	granule := binutil.ReadChained[uint64](cr, "granule position")
	serial := binutil.ReadChained[uint32](cr, "serial number")
	sequence := binutil.ReadChained[uint32](cr, "page sequence number")
	_ = binutil.ReadChained[uint32](cr, "page checksum")
	count := binutil.ReadChained[uint8](cr, "segment count")
	segments := cr.Bytes(int(count), "segment table")
	if err := cr.Error(); err != nil {
		return nil, err
	}

	if !bytes.Equal(pattern, capturePattern) {
		return nil, errNoCapture
	}
	if version != 0 {
		return nil, errVersion
	}

	dataSize := 0
	for _, s := range segments {
		dataSize += int(s)
	}
	data := cr.Bytes(dataSize, "page data")
	if err := cr.Error(); err != nil {
		return nil, err
	}

	return &Page{
		Flags:    flags,
		Granule:  int64(granule),
		Serial:   serial,
		Sequence: sequence,
		Segments: segments,
		Data:     data,
		Offset:   offset,
		Size:     cr.Offset() - offset,
	}, nil
}

// bytes serializes the page with a fresh checksum.
func (p *Page) bytes() []byte {
	b := make([]byte, 0, pageHeaderSize+len(p.Segments)+len(p.Data))
	b = append(b, capturePattern...)
	b = append(b, 0, p.Flags)
	b = binutil.Append(b, uint64(p.Granule), binutil.LittleEndian)
	b = binutil.Append(b, p.Serial, binutil.LittleEndian)
	b = binutil.Append(b, p.Sequence, binutil.LittleEndian)
	b = append(b, 0, 0, 0, 0, byte(len(p.Segments)))
	b = append(b, p.Segments...)
	b = append(b, p.Data...)

	binutil.Put(b[crcOffset:], checksum(b), binutil.LittleEndian)
	return b
}

// packetsEnded counts the packets that end on this page.
func (p *Page) packetsEnded() int {
	n := 0
	for _, s := range p.Segments {
		if s < 255 {
			n++
		}
	}
	return n
}

// lacing returns the segment sizes for a packet of n bytes. A packet whose
// length is a multiple of 255 ends with a zero-length segment.
func lacing(n int) []byte {
	out := make([]byte, 0, n/maxSegments+1)
	for n >= 255 {
		out = append(out, 255)
		n -= 255
	}
	return append(out, byte(n))
}

// paginate lays packets out on fresh pages starting at sequence seq.
// Pages where a packet ends carry granule 0, the others noGranule.
func paginate(packets [][]byte, serial, seq uint32) []*Page {
	var pages []*Page
	cur := &Page{Serial: serial, Sequence: seq, Granule: noGranule}

	flush := func(continued bool) {
		pages = append(pages, cur)
		cur = &Page{Serial: serial, Sequence: cur.Sequence + 1, Granule: noGranule}
		if continued {
			cur.Flags |= flagContinued
		}
	}

	for _, packet := range packets {
		rest := packet
		lace := lacing(len(packet))
		for i, l := range lace {
			if len(cur.Segments) == maxSegments {
				flush(i > 0)
			}
			cur.Segments = append(cur.Segments, l)
			cur.Data = append(cur.Data, rest[:l]...)
			rest = rest[l:]
			if i == len(lace)-1 {
				cur.Granule = 0
			}
		}
	}
	if len(cur.Segments) > 0 {
		pages = append(pages, cur)
	}
	return pages
}
