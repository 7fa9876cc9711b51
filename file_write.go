package tagsync

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/simonhull/tagsync/internal/registry"
	"github.com/simonhull/tagsync/internal/types"
)

const (
	opWriteTags  = "write tags"
	opWriteCover = "write cover"
)

// write rewrites the file at path through transform and replaces it
// atomically. verify runs on the re-read file when validation is on.
//
// Every failure is returned as a *WriteError.
func (c *Codec) write(
	path, op string,
	transform func(registry.Adapter, []byte) ([]byte, error),
	verify func(types.Kind, registry.Adapter, []byte) error,
) error {
	fail := func(err error) error {
		return &types.WriteError{Path: path, Op: op, Err: err}
	}

	kind, a, data, err := load(path)
	if err != nil {
		return fail(err)
	}

	out, err := transform(a, data)
	if err != nil {
		return fail(err)
	}

	if err := c.replace(path, data, out); err != nil {
		return fail(err)
	}

	if c.opts.save.validate {
		written, err := os.ReadFile(path)
		if err != nil {
			return fail(fmt.Errorf("validation failed: re-read: %w", err))
		}
		if err := verify(kind, a, written); err != nil {
			return fail(fmt.Errorf("validation failed: %w", err))
		}
	}

	c.opts.logger.Info("metadata written",
		slog.String("path", path),
		slog.String("op", op),
		slog.String("kind", kind.String()),
		slog.Int("size", len(out)),
	)
	return nil
}

// replace stages out in a temporary file next to path, then renames it
// over path. If any step fails, the original file remains unchanged.
func (c *Codec) replace(path string, original, out []byte) error { //nolint:gocyclo // Atomic file operations require sequential steps
	opts := c.opts.save

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	// Create temp file in same directory as output (for atomic rename)
	tempFile, err := os.CreateTemp(filepath.Dir(path), ".tagsync-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	// Ensure cleanup on any error
	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if _, err := tempFile.Write(out); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	// CreateTemp uses 0600; keep the original permissions.
	if err := tempFile.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	// Sync temp file (fsync) to ensure data is on disk
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	// Close temp file before rename
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// The original bytes are already in memory, so the backup is written
	// from them rather than renamed away.
	if opts.backupSuffix != "" {
		if err := os.WriteFile(path+opts.backupSuffix, original, info.Mode().Perm()); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}

	// Atomic rename temp -> output
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}

	// Mark success so defer doesn't clean up
	success = true

	if opts.preserveModTime {
		_ = os.Chtimes(path, info.ModTime(), info.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}

	return nil
}

// expectedTags returns what a read-back of tags written to kind yields.
// Atom track items hold a number, so "N/M" reads back as "N".
func expectedTags(kind types.Kind, tags types.Tags) types.Tags {
	if kind == types.KindAtomBox {
		n, _, _ := strings.Cut(tags.Track, "/")
		tags.Track = strings.TrimLeft(strings.TrimSpace(n), "0")
	}
	return tags
}

// verifyTags compares the tags read back from data with tags.
func verifyTags(kind types.Kind, a registry.Adapter, data []byte, path string, tags types.Tags) error {
	got, err := a.ReadTags(data, path)
	if err != nil {
		return fmt.Errorf("re-parse: %w", err)
	}

	want := expectedTags(kind, tags)
	if diff := got.Diff(want); len(diff) > 0 {
		f := diff[0]
		return fmt.Errorf("%s mismatch: got %q, want %q", f, got.Get(f), want.Get(f))
	}
	return nil
}

// verifyCover checks that data holds exactly cover's image bytes.
func verifyCover(a registry.Adapter, data []byte, path string, cover types.Cover) error {
	got, err := a.ReadCover(data, path)
	if err != nil {
		return fmt.Errorf("re-parse: %w", err)
	}
	if got == nil {
		return fmt.Errorf("cover missing after write")
	}
	if !bytes.Equal(got.Data, cover.Data) {
		return fmt.Errorf("cover mismatch: got %d bytes, want %d", len(got.Data), len(cover.Data))
	}
	return nil
}
