// Package tagsync reads and writes a canonical set of audio tags and a
// single front cover across four container formats.
//
// # Quick Start
//
// Reading and rewriting tags:
//
//	tags, err := tagsync.GetTags("song.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	tags.Album = "Remastered"
//	if err := tagsync.SetTags("song.flac", tags); err != nil {
//		log.Fatal(err)
//	}
//
// # Supported Containers
//
// The container is chosen by file extension alone:
//
//   - .mp3: ID3v2.3 and ID3v2.4 tags (KindFrameTagged)
//   - .flac: VORBIS_COMMENT and PICTURE blocks (KindBlockComment)
//   - .ogg: Vorbis or Opus comment headers (KindOggComment)
//   - .m4a: iTunes items under moov/udta/meta/ilst (KindAtomBox)
//
// Any other extension fails fast with a *ClassificationError.
//
// # Canonical Model
//
// Tags holds nine string fields: title, artist, album, year, track,
// genre, comment, albumartist and composer. Writing a Tags value replaces
// all nine; an empty field deletes the native tag. Tags that are not
// canonical are preserved by every write.
//
// A Cover is image bytes plus a MIME type. GetCover returns the first
// picture of a file, or nil. SetCover leaves exactly one front cover.
//
// # Copying
//
// CopyTagsLeftToRight and CopyCoverLeftToRight compose a read of the
// source with a write of the destination. Copying a cover from a file
// without one reports CopyNothingToDo and leaves the destination alone.
//
// # Error Handling
//
// Reads never fail because of malformed metadata: a container that cannot
// be parsed reads as empty tags and no cover. Writes return a *WriteError
// carrying the cause, which may be a *ParseError. Copies return a
// *CodecError. Use errors.As to inspect them:
//
//	var we *tagsync.WriteError
//	if errors.As(err, &we) {
//		log.Printf("%s failed for %s: %v", we.Op, we.Path, we.Err)
//	}
//
// # Writes
//
// Files are rewritten in memory and replaced atomically through a
// temporary file in the same directory. New accepts options for backups,
// read-back validation, modification-time preservation and logging.
//
// # Concurrency
//
// A Codec holds no per-file state and is safe for concurrent use on
// different files. Calls on the same path are not coordinated; callers
// that may race a read against a write on one file must serialize them.
// ReadMany reads many files in parallel.
package tagsync
