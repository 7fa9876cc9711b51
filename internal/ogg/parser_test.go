package ogg

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"testing"

	binutil "github.com/simonhull/tagsync/internal/binary"
	"github.com/simonhull/tagsync/internal/testfixture"
	"github.com/simonhull/tagsync/internal/types"
)

// checkStream verifies page checksums and contiguous sequence numbers and
// returns the payload of the final page.
func checkStream(t *testing.T, data []byte) []byte {
	t.Helper()

	sr := binutil.NewSafeReader(data, "out.ogg")
	var (
		offset int64
		seq    uint32
		last   *Page
	)
	for offset < int64(len(data)) {
		page, err := readPage(sr, offset)
		if err != nil {
			t.Fatalf("readPage(%d) error = %v", offset, err)
		}

		raw := data[offset : offset+page.Size]
		if got, want := binary.LittleEndian.Uint32(raw[crcOffset:]), testfixture.OggCRC(raw); got != want {
			t.Errorf("page %d checksum = %#x, want %#x", page.Sequence, got, want)
		}
		if page.Sequence != seq {
			t.Errorf("page at %d has sequence %d, want %d", offset, page.Sequence, seq)
		}

		seq++
		offset += page.Size
		last = page
	}
	if last == nil {
		t.Fatal("no pages")
	}
	return last.Data
}

func audioPayload() []byte {
	var out []byte
	for _, p := range testfixture.OggAudioPackets {
		out = append(out, p...)
	}
	return out
}

func TestReadTags(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"vorbis", testfixture.OggVorbis("TITLE=Song", "artist=Band", "TRACKNUMBER=1")},
		{"opus", testfixture.OggOpus("TITLE=Song", "artist=Band", "TRACKNUMBER=1")},
	}

	want := types.Tags{Title: "Song", Artist: "Band", Track: "1"}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := adapter{}.ReadTags(tc.data, "test.ogg")
			if err != nil {
				t.Fatalf("ReadTags() error = %v", err)
			}
			if !got.Equal(want) {
				t.Errorf("ReadTags() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestReadTags_Malformed(t *testing.T) {
	valid := testfixture.OggVorbis("TITLE=x")
	notBOS := bytes.Clone(valid)
	notBOS[5] = 0

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not ogg", []byte("RIFF....WAVEfmt ")},
		{"first page not BOS", notBOS},
		{"unknown codec", testfixture.OggPage(testfixture.OggBOS, 0, 0, []byte("\x80theora"))},
		{"truncated before comment", valid[:60]},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := adapter{}.ReadTags(tc.data, "bad.ogg")

			var pe *types.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("ReadTags() error = %v, want *types.ParseError", err)
			}
			if pe.Kind != types.KindOggComment {
				t.Errorf("Kind = %v", pe.Kind)
			}
		})
	}
}

func TestWriteTags_RoundTrip(t *testing.T) {
	tags := types.Tags{
		Title:       "Título",
		Artist:      "Artist",
		Album:       "Album",
		Year:        "2003",
		Track:       "11",
		Genre:       "Ambient",
		Comment:     "c",
		AlbumArtist: "AA",
		Composer:    "Comp",
	}

	for name, data := range map[string][]byte{
		"vorbis": testfixture.OggVorbis("TITLE=old", "ENCODER=x"),
		"opus":   testfixture.OggOpus("TITLE=old", "ENCODER=x"),
	} {
		t.Run(name, func(t *testing.T) {
			a := adapter{}
			out, err := a.WriteTags(data, "test.ogg", tags)
			if err != nil {
				t.Fatalf("WriteTags() error = %v", err)
			}

			got, err := a.ReadTags(out, "test.ogg")
			if err != nil {
				t.Fatalf("ReadTags() error = %v", err)
			}
			if !got.Equal(tags) {
				t.Errorf("round trip = %+v, want %+v", got, tags)
			}

			if !bytes.Equal(checkStream(t, out), audioPayload()) {
				t.Error("audio page was not preserved")
			}
			if !bytes.Contains(out, []byte("ENCODER=x")) {
				t.Error("non-canonical comment was dropped")
			}
			first, err := readPage(binutil.NewSafeReader(data, "test.ogg"), 0)
			if err != nil {
				t.Fatalf("readPage() error = %v", err)
			}
			if !bytes.HasPrefix(out, data[:first.Size]) {
				t.Error("identification page was modified")
			}
		})
	}
}

func TestWriteTags_KeepsSetupAndFraming(t *testing.T) {
	a := adapter{}
	out, err := a.WriteTags(testfixture.OggVorbis(), "test.ogg", types.Tags{Title: "x"})
	if err != nil {
		t.Fatalf("WriteTags() error = %v", err)
	}

	h, err := readHeaders(out, "test.ogg")
	if err != nil {
		t.Fatalf("readHeaders() error = %v", err)
	}
	if len(h.packets) != 3 {
		t.Fatalf("header packets = %d, want 3", len(h.packets))
	}
	if !bytes.Equal(h.packets[2], testfixture.VorbisSetup()) {
		t.Error("setup header changed")
	}
	comment := h.packets[1]
	if comment[len(comment)-1] != 0x01 {
		t.Error("comment header lost its framing bit")
	}
}

func TestCover_LargeImageSpansPages(t *testing.T) {
	a := adapter{}
	data := testfixture.OggVorbis("TITLE=keep")

	// 100 KB needs several pages once base64 encoded.
	img := append(testfixture.PNG(640, 480), bytes.Repeat([]byte{0x5A}, 100*1024)...)

	out, err := a.WriteCover(data, "test.ogg", types.Cover{Data: img, MIME: types.MIMEPNG})
	if err != nil {
		t.Fatalf("WriteCover() error = %v", err)
	}

	// Audio page sequence numbers must follow the grown header region.
	if !bytes.Equal(checkStream(t, out), audioPayload()) {
		t.Error("audio page was not preserved")
	}

	cover, err := a.ReadCover(out, "test.ogg")
	if err != nil {
		t.Fatalf("ReadCover() error = %v", err)
	}
	if cover == nil || cover.MIME != types.MIMEPNG || !bytes.Equal(cover.Data, img) {
		t.Fatalf("ReadCover() returned %v", cover)
	}

	tags, _ := a.ReadTags(out, "test.ogg")
	if tags.Title != "keep" {
		t.Errorf("cover write changed title to %q", tags.Title)
	}

	// Shrinking back renumbers the other way.
	out, err = a.WriteCover(out, "test.ogg", types.Cover{Data: testfixture.JPEG(1, 1), MIME: types.MIMEJPEG})
	if err != nil {
		t.Fatalf("WriteCover() error = %v", err)
	}
	checkStream(t, out)
}

func TestReadCover_JPEGScenario(t *testing.T) {
	jpeg := testfixture.JPEG(10, 10)
	block := testfixture.PictureBody(3, "image/jpeg", "", jpeg)
	data := testfixture.OggVorbis(
		"TITLE=x",
		"METADATA_BLOCK_PICTURE="+base64.StdEncoding.EncodeToString(block),
	)

	cover, err := adapter{}.ReadCover(data, "test.ogg")
	if err != nil {
		t.Fatalf("ReadCover() error = %v", err)
	}
	if cover == nil {
		t.Fatal("ReadCover() = nil")
	}
	if cover.MIME != types.MIMEJPEG || !bytes.Equal(cover.Data, jpeg) {
		t.Errorf("ReadCover() = %v", cover)
	}
}

func TestReadCover_MIMEIsSniffed(t *testing.T) {
	png := testfixture.PNG(1, 1)
	block := testfixture.PictureBody(3, "image/jpeg", "", png)
	data := testfixture.OggOpus("METADATA_BLOCK_PICTURE=" + base64.StdEncoding.EncodeToString(block))

	cover, err := adapter{}.ReadCover(data, "test.ogg")
	if err != nil {
		t.Fatalf("ReadCover() error = %v", err)
	}
	if cover == nil || cover.MIME != types.MIMEPNG {
		t.Errorf("ReadCover() = %v, want sniffed PNG", cover)
	}
}

func TestReadCover_None(t *testing.T) {
	cover, err := adapter{}.ReadCover(testfixture.OggVorbis("TITLE=x"), "test.ogg")
	if err != nil || cover != nil {
		t.Errorf("ReadCover() = %v, %v; want nil, nil", cover, err)
	}
}

func TestWrite_RejectsSpilledHeaders(t *testing.T) {
	data := bytes.Join([][]byte{
		testfixture.OggPage(testfixture.OggBOS, 0, 0, testfixture.VorbisIdentification()),
		testfixture.OggPage(0, 0, 1, testfixture.VorbisComment(), testfixture.VorbisSetup(), testfixture.OggAudioPackets[0]),
	}, nil)

	if _, err := (adapter{}).WriteTags(data, "test.ogg", types.Tags{Title: "x"}); err == nil {
		t.Error("expected error when audio shares the last header page")
	}

	// Reads still work.
	if _, err := (adapter{}).ReadTags(data, "test.ogg"); err != nil {
		t.Errorf("ReadTags() error = %v", err)
	}
}
