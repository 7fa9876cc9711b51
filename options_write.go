package tagsync

// saveOptions holds configuration for writing files.
type saveOptions struct {
	backupSuffix    string // Suffix for backup file (e.g., ".bak")
	validate        bool   // Re-read after write to verify
	preserveModTime bool   // Keep original modification time
}

// defaultSaveOptions returns the default configuration for writing.
func defaultSaveOptions() saveOptions {
	return saveOptions{}
}

// WithBackup keeps the original file before every write.
//
// The backup file will have the specified suffix appended to the original
// filename. For example, WithBackup(".bak") will keep "song.mp3.bak"
// next to the rewritten "song.mp3".
//
// If the backup file already exists, it will be overwritten.
//
// Example:
//
//	codec := tagsync.New(tagsync.WithBackup(".bak"))
//	err := codec.SetTags("song.mp3", tags)
//	// Original file preserved as song.mp3.bak
func WithBackup(suffix string) Option {
	return func(o *options) {
		o.save.backupSuffix = suffix
	}
}

// WithValidation re-reads every file after writing it.
//
// The written file is parsed again and the tags or cover read back are
// compared with what was written. A mismatch is reported as a WriteError.
//
// Example:
//
//	codec := tagsync.New(tagsync.WithValidation())
func WithValidation() Option {
	return func(o *options) {
		o.save.validate = true
	}
}

// WithPreserveModTime keeps the original file modification time.
//
// By default, writing updates the file's modification time to the current
// time. This option restores the original access and modification times
// after the write.
//
// Example:
//
//	codec := tagsync.New(tagsync.WithPreserveModTime())
func WithPreserveModTime() Option {
	return func(o *options) {
		o.save.preserveModTime = true
	}
}
