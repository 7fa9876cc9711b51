package vorbis

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/go-flac/flacpicture/v2"

	"github.com/simonhull/tagsync/internal/types"
)

var (
	fakeJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	fakePNG  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
)

func TestEncodeDecodePicture(t *testing.T) {
	cover := types.Cover{Data: fakePNG, MIME: types.MIMEPNG}

	pic, err := DecodePicture(EncodePicture(cover))
	if err != nil {
		t.Fatalf("DecodePicture() error = %v", err)
	}

	if pic.PictureType != flacpicture.PictureTypeFrontCover {
		t.Errorf("PictureType = %d, want front cover", pic.PictureType)
	}
	if pic.MIME != types.MIMEPNG {
		t.Errorf("MIME = %q", pic.MIME)
	}
	if pic.Description != CoverDescription {
		t.Errorf("Description = %q", pic.Description)
	}
	if pic.ColorDepth != 32 {
		t.Errorf("ColorDepth = %d, want 32 for PNG", pic.ColorDepth)
	}
	if !bytes.Equal(pic.ImageData, fakePNG) {
		t.Errorf("ImageData = %x", pic.ImageData)
	}
}

func TestEncodePicture_Layout(t *testing.T) {
	body := EncodePicture(types.Cover{Data: []byte{0xFF, 0xD8, 0xFF}, MIME: "image/jpeg"})

	// type(4) mimeLen(4) mime descLen(4) desc w h depth colors dataLen(4) data
	want := []byte{0, 0, 0, 3, 0, 0, 0, 10}
	want = append(want, "image/jpeg"...)
	want = append(want, 0, 0, 0, 5)
	want = append(want, "Cover"...)
	want = append(want,
		0, 0, 0, 0, // width
		0, 0, 0, 0, // height
		0, 0, 0, 24, // depth
		0, 0, 0, 0, // colors
		0, 0, 0, 3,
		0xFF, 0xD8, 0xFF,
	)

	if !bytes.Equal(body, want) {
		t.Errorf("EncodePicture() =\n%x\nwant\n%x", body, want)
	}
}

func TestReadPicture_SniffsMIME(t *testing.T) {
	// The stored MIME is wrong on purpose; reads trust the bytes.
	stored := EncodePicture(types.Cover{Data: fakeJPEG, MIME: "image/png"})

	c := New()
	c.Comments = []string{"metadata_block_picture=" + base64.StdEncoding.EncodeToString(stored)}

	cover, err := ReadPicture(c)
	if err != nil {
		t.Fatalf("ReadPicture() error = %v", err)
	}
	if cover == nil {
		t.Fatal("ReadPicture() = nil, want cover")
	}
	if cover.MIME != types.MIMEJPEG || !bytes.Equal(cover.Data, fakeJPEG) {
		t.Errorf("ReadPicture() = %v", cover)
	}
}

func TestReadPicture_None(t *testing.T) {
	c := New()
	c.Comments = []string{"TITLE=x"}

	cover, err := ReadPicture(c)
	if err != nil || cover != nil {
		t.Errorf("ReadPicture() = %v, %v; want nil, nil", cover, err)
	}
}

func TestReadPicture_BadBase64(t *testing.T) {
	c := New()
	c.Comments = []string{PictureKey + "=!!!not base64!!!"}

	if _, err := ReadPicture(c); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestSetPicture_ReplacesAll(t *testing.T) {
	c := New()
	c.Comments = []string{
		"TITLE=x",
		PictureKey + "=" + EncodePictureBase64(types.Cover{Data: fakeJPEG, MIME: types.MIMEJPEG}),
		"metadata_block_picture=" + EncodePictureBase64(types.Cover{Data: fakeJPEG, MIME: types.MIMEJPEG}),
	}

	if err := SetPicture(c, types.Cover{Data: fakePNG, MIME: types.MIMEPNG}); err != nil {
		t.Fatalf("SetPicture() error = %v", err)
	}

	if len(c.Comments) != 2 {
		t.Fatalf("Comments = %d entries, want 2", len(c.Comments))
	}
	cover, err := ReadPicture(c)
	if err != nil || cover == nil {
		t.Fatalf("ReadPicture() = %v, %v", cover, err)
	}
	if cover.MIME != types.MIMEPNG || !bytes.Equal(cover.Data, fakePNG) {
		t.Errorf("ReadPicture() = %v", cover)
	}
}
