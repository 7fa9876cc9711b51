package tagsync_test

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/simonhull/tagsync"
	"github.com/simonhull/tagsync/internal/testfixture"
)

func TestCopyTags_AcrossKinds(t *testing.T) {
	for _, src := range fixtures {
		for _, dst := range fixtures {
			t.Run(src.kind.String()+"->"+dst.kind.String(), func(t *testing.T) {
				srcPath := testfixture.WriteFile(t, "src-"+src.name, src.data())
				dstPath := testfixture.WriteFile(t, "dst-"+dst.name, dst.data())

				if err := tagsync.SetTags(srcPath, fullTags); err != nil {
					t.Fatalf("SetTags() error = %v", err)
				}
				if err := tagsync.CopyTagsLeftToRight(srcPath, dstPath); err != nil {
					t.Fatalf("CopyTagsLeftToRight() error = %v", err)
				}

				got, err := tagsync.GetTags(dstPath)
				if err != nil || !got.Equal(fullTags) {
					t.Errorf("destination tags = %+v, %v; want %+v", got, err, fullTags)
				}
			})
		}
	}
}

func TestCopyCover(t *testing.T) {
	srcCover := tagsync.NewCover(testfixture.PNG(32, 32), "")
	dstCover := tagsync.NewCover(testfixture.JPEG(8, 8), "")

	for _, fx := range fixtures {
		t.Run(fx.kind.String(), func(t *testing.T) {
			src := testfixture.WriteFile(t, "src.mp3", testfixture.MP3(nil))
			dst := testfixture.WriteFile(t, "dst-"+fx.name, fx.data())
			if err := tagsync.SetCover(dst, dstCover); err != nil {
				t.Fatalf("SetCover() error = %v", err)
			}

			// No cover on the source: the destination keeps its own.
			outcome, err := tagsync.CopyCoverLeftToRight(src, dst)
			if err != nil || outcome != tagsync.CopyNothingToDo {
				t.Fatalf("CopyCoverLeftToRight() = %v, %v; want %v", outcome, err, tagsync.CopyNothingToDo)
			}
			if got, _ := tagsync.GetCover(dst); got == nil || !got.Equal(dstCover) {
				t.Errorf("destination cover changed to %v", got)
			}

			if err := tagsync.SetCover(src, srcCover); err != nil {
				t.Fatalf("SetCover() error = %v", err)
			}
			outcome, err = tagsync.CopyCoverLeftToRight(src, dst)
			if err != nil || outcome != tagsync.CopyDone {
				t.Fatalf("CopyCoverLeftToRight() = %v, %v; want %v", outcome, err, tagsync.CopyDone)
			}
			if got, _ := tagsync.GetCover(dst); got == nil || !got.Equal(srcCover) {
				t.Errorf("destination cover = %v, want %v", got, srcCover)
			}
		})
	}
}

func TestCopyCover_BMPAtomIsNormalized(t *testing.T) {
	bmp := []byte("BM\x36\x00\x00\x00")
	src := testfixture.WriteFile(t, "src.m4a", testfixture.M4A(testfixture.M4ALayout{
		Items: [][]byte{testfixture.Item("covr", 27, bmp)},
	}))
	dst := testfixture.WriteFile(t, "dst.flac", testfixture.FLAC())

	outcome, err := tagsync.CopyCoverLeftToRight(src, dst)
	if err != nil || outcome != tagsync.CopyDone {
		t.Fatalf("CopyCoverLeftToRight() = %v, %v", outcome, err)
	}

	for _, path := range []string{src, dst} {
		got, err := tagsync.GetCover(path)
		if err != nil || got == nil {
			t.Fatalf("GetCover(%s) = %v, %v", path, got, err)
		}
		if got.MIME != tagsync.MIMEJPEG || !bytes.Equal(got.Data, bmp) {
			t.Errorf("GetCover(%s) = %s, want image/jpeg with the original bytes", path, got.MIME)
		}
	}
}

func TestCopy_Errors(t *testing.T) {
	good := testfixture.WriteFile(t, "good.flac", testfixture.FLAC())
	if err := tagsync.SetCover(good, tagsync.NewCover(testfixture.JPEG(1, 1), "")); err != nil {
		t.Fatal(err)
	}
	missing := t.TempDir() + "/missing.mp3"
	unsupported := testfixture.WriteFile(t, "notes.txt", []byte("hello"))

	t.Run("missing source", func(t *testing.T) {
		err := tagsync.CopyTagsLeftToRight(missing, good)

		var ce *tagsync.CodecError
		if !errors.As(err, &ce) || ce.Op != "copy tags" || ce.Src != missing || ce.Dst != good {
			t.Fatalf("error = %v, want *CodecError", err)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("cause = %v, want fs.ErrNotExist", ce.Err)
		}
	})

	t.Run("unsupported destination", func(t *testing.T) {
		outcome, err := tagsync.CopyCoverLeftToRight(good, unsupported)

		var ce *tagsync.CodecError
		var we *tagsync.WriteError
		if !errors.As(err, &ce) || !errors.As(err, &we) {
			t.Fatalf("error = %v, want *CodecError wrapping *WriteError", err)
		}
		if outcome != tagsync.CopyNothingToDo {
			t.Errorf("outcome = %v", outcome)
		}
	})
}

func TestCopyOutcome_String(t *testing.T) {
	if tagsync.CopyDone.String() != "copied" || tagsync.CopyNothingToDo.String() != "nothing to copy" {
		t.Errorf("String() = %q, %q", tagsync.CopyDone, tagsync.CopyNothingToDo)
	}
}
