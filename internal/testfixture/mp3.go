package testfixture

// MP3Audio returns two silent MPEG-1 Layer III frames (128 kbps, 44.1 kHz).
func MP3Audio() []byte {
	const frameLen = 417

	out := make([]byte, 0, 2*frameLen)
	for range 2 {
		frame := make([]byte, frameLen)
		copy(frame, []byte{0xFF, 0xFB, 0x90, 0x64})
		out = append(out, frame...)
	}
	return out
}

// MP3 returns tag followed by MP3Audio. A nil tag gives an untagged file.
func MP3(tag []byte) []byte {
	return concat(tag, MP3Audio())
}

// ID3v23 wraps frames in an ID3v2.3 tag header.
func ID3v23(frames ...[]byte) []byte {
	body := concat(frames...)
	size := len(body)
	header := []byte{
		'I', 'D', '3', 0x03, 0x00, 0x00,
		byte(size>>21) & 0x7F, byte(size>>14) & 0x7F, byte(size>>7) & 0x7F, byte(size) & 0x7F,
	}
	return concat(header, body)
}

// ID3Frame returns an ID3v2.3 frame with a plain big-endian size.
func ID3Frame(id string, payload []byte) []byte {
	return concat([]byte(id), be32(uint32(len(payload))), []byte{0x00, 0x00}, payload)
}

// TextFrame returns an ISO-8859-1 text frame.
func TextFrame(id, text string) []byte {
	return ID3Frame(id, concat([]byte{0x00}, []byte(text)))
}

// CommentFrame returns an ISO-8859-1 COMM frame.
func CommentFrame(lang, desc, text string) []byte {
	return ID3Frame("COMM", concat([]byte{0x00}, []byte(lang), []byte(desc), []byte{0x00}, []byte(text)))
}

// PictureFrame returns an APIC frame.
func PictureFrame(mime string, pictureType byte, desc string, data []byte) []byte {
	return ID3Frame("APIC", concat(
		[]byte{0x00}, []byte(mime), []byte{0x00},
		[]byte{pictureType}, []byte(desc), []byte{0x00},
		data,
	))
}
