package tagsync

import (
	"log/slog"

	"github.com/simonhull/tagsync/internal/types"
)

const (
	opCopyTags  = "copy tags"
	opCopyCover = "copy cover"
)

// CopyOutcome reports what a cover copy did.
type CopyOutcome int

const (
	// CopyDone means the destination now holds the source's cover.
	CopyDone CopyOutcome = iota
	// CopyNothingToDo means the source has no cover; the destination was
	// left untouched.
	CopyNothingToDo
)

// String returns a short description of the outcome.
func (o CopyOutcome) String() string {
	switch o {
	case CopyDone:
		return "copied"
	case CopyNothingToDo:
		return "nothing to copy"
	default:
		return "unknown"
	}
}

// CopyTags writes the tags of src to dst. It is exactly SetTags(dst,
// GetTags(src)): an unparsable source copies empty tags, clearing dst.
//
// Failures are returned as a *CodecError wrapping the read or write error.
func (c *Codec) CopyTags(src, dst string) error {
	fail := func(err error) error {
		return &types.CodecError{Op: opCopyTags, Src: src, Dst: dst, Err: err}
	}

	tags, err := c.GetTags(src)
	if err != nil {
		return fail(err)
	}
	if err := c.SetTags(dst, tags); err != nil {
		return fail(err)
	}

	c.opts.logger.Info("tags copied", slog.String("src", src), slog.String("dst", dst))
	return nil
}

// CopyCover writes the cover of src to dst.
//
// When src has no cover, dst is never touched and CopyNothingToDo is
// returned with a nil error. Failures are returned as a *CodecError.
func (c *Codec) CopyCover(src, dst string) (CopyOutcome, error) {
	fail := func(err error) (CopyOutcome, error) {
		return CopyNothingToDo, &types.CodecError{Op: opCopyCover, Src: src, Dst: dst, Err: err}
	}

	cover, err := c.GetCover(src)
	if err != nil {
		return fail(err)
	}
	if cover == nil {
		c.opts.logger.Info("no cover to copy", slog.String("src", src), slog.String("dst", dst))
		return CopyNothingToDo, nil
	}

	if err := c.SetCover(dst, *cover); err != nil {
		return fail(err)
	}

	c.opts.logger.Info("cover copied", slog.String("src", src), slog.String("dst", dst))
	return CopyDone, nil
}

// CopyTagsLeftToRight copies tags from src to dst with the Default codec.
func CopyTagsLeftToRight(src, dst string) error {
	return Default.CopyTags(src, dst)
}

// CopyCoverLeftToRight copies the cover from src to dst with the Default
// codec.
func CopyCoverLeftToRight(src, dst string) (CopyOutcome, error) {
	return Default.CopyCover(src, dst)
}
