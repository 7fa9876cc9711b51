package testfixture

import "encoding/binary"

// OggSerial is the stream serial number used by the Ogg builders.
const OggSerial = 0x1234ABCD

// Ogg page header flags.
const (
	OggContinued = 0x01
	OggBOS       = 0x02
	OggEOS       = 0x04
)

var oggTable = func() (t [256]uint32) {
	for i := range t {
		r := uint32(i) << 24
		for range 8 {
			if r&0x80000000 != 0 {
				r = r<<1 ^ 0x04C11DB7
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}
	return t
}()

// OggCRC computes the page checksum with the CRC field taken as zero.
func OggCRC(page []byte) uint32 {
	var crc uint32
	for i, b := range page {
		if i >= 22 && i < 26 {
			b = 0
		}
		crc = crc<<8 ^ oggTable[byte(crc>>24)^b]
	}
	return crc
}

// OggPage builds one page holding whole packets. Every packet must fit
// the 255-entry segment table.
func OggPage(flags byte, granule int64, seq uint32, packets ...[]byte) []byte {
	var lacing, body []byte
	for _, p := range packets {
		n := len(p)
		for n >= 255 {
			lacing = append(lacing, 255)
			n -= 255
		}
		lacing = append(lacing, byte(n))
		body = append(body, p...)
	}

	page := []byte("OggS")
	page = append(page, 0x00, flags)
	page = binary.LittleEndian.AppendUint64(page, uint64(granule))
	page = binary.LittleEndian.AppendUint32(page, OggSerial)
	page = binary.LittleEndian.AppendUint32(page, seq)
	page = append(page, 0, 0, 0, 0, byte(len(lacing)))
	page = append(page, lacing...)
	page = append(page, body...)

	binary.LittleEndian.PutUint32(page[22:], OggCRC(page))
	return page
}

// VorbisIdentification returns a stereo 44.1 kHz identification header.
func VorbisIdentification() []byte {
	p := []byte("\x01vorbis")
	p = append(p, le32(0)...)
	p = append(p, 2)
	p = append(p, le32(44100)...)
	p = append(p, le32(0)...)
	p = append(p, le32(128000)...)
	p = append(p, le32(0)...)
	return append(p, 0xB8, 0x01)
}

// VorbisComment returns a comment header packet with its framing bit.
func VorbisComment(comments ...string) []byte {
	return concat([]byte("\x03vorbis"), VorbisCommentBody("fixture", comments...), []byte{0x01})
}

// VorbisSetup returns a stand-in setup header packet.
func VorbisSetup() []byte {
	return concat([]byte("\x05vorbis"), []byte{0x00, 0x42, 0x43, 0x56, 0x01, 0x00, 0x08, 0x00})
}

// OggAudioPackets are the stand-in audio packets of the final page.
var OggAudioPackets = [][]byte{{0x3C, 0x00, 0x01, 0x02}, {0x3C, 0x03, 0x04}}

// OggVorbis returns a three-page Vorbis stream: identification, comment and
// setup headers, then one audio page.
func OggVorbis(comments ...string) []byte {
	return concat(
		OggPage(OggBOS, 0, 0, VorbisIdentification()),
		OggPage(0, 0, 1, VorbisComment(comments...), VorbisSetup()),
		OggPage(OggEOS, 2048, 2, OggAudioPackets...),
	)
}

// OggOpus returns a three-page Opus stream: OpusHead, OpusTags and one
// audio page.
func OggOpus(comments ...string) []byte {
	head := []byte("OpusHead")
	head = append(head, 1, 2, 0x38, 0x01)
	head = append(head, le32(48000)...)
	head = append(head, 0, 0, 0)

	tags := concat([]byte("OpusTags"), VorbisCommentBody("fixture", comments...))

	return concat(
		OggPage(OggBOS, 0, 0, head),
		OggPage(0, 0, 1, tags),
		OggPage(OggEOS, 960, 2, OggAudioPackets...),
	)
}
