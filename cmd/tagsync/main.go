// Command tagsync reads, writes and copies audio tags and cover art.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/simonhull/tagsync"
)

const usage = `Usage: tagsync [-config FILE] [-v] <command> [args]

Commands:
  tags FILE                 print the canonical tags
  set FILE key=value...     change tags (empty value deletes)
  cover FILE [-o OUT]       describe the cover, optionally saving it
  embed FILE IMAGE          replace the cover with IMAGE
  copy-tags SRC DST         copy all tags from SRC to DST
  copy-cover SRC DST        copy the cover from SRC to DST
  ls FILE...                summarize several files
  info FILE                 show container and content details
  version                   print version information
`

// app carries what every command needs.
type app struct {
	codec  *tagsync.Codec
	stdout io.Writer
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, failure.Render("[x] "+err.Error()))
		os.Exit(1)
	}
}

var errUsage = errors.New("invalid usage")

// run parses global flags, loads the configuration and dispatches the
// command in args.
func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tagsync", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", defaultConfigPath(), "configuration file")
	verbose := fs.Bool("v", false, "log debug records")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, unknown, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	level, err := cfg.level()
	if err != nil {
		return err
	}
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	for _, key := range unknown {
		logger.Warn("unknown configuration key", slog.String("key", key), slog.String("file", *configPath))
	}

	a := &app{
		codec:  tagsync.New(cfg.options(logger)...),
		stdout: stdout,
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errUsage
	}

	cmd, params := rest[0], rest[1:]
	switch cmd {
	case "tags":
		return a.exactly(params, 1, a.tags)
	case "set":
		return a.set(params)
	case "cover":
		return a.cover(params)
	case "embed":
		return a.exactly(params, 2, a.embed)
	case "copy-tags":
		return a.exactly(params, 2, a.copyTags)
	case "copy-cover":
		return a.exactly(params, 2, a.copyCover)
	case "ls":
		return a.ls(params)
	case "info":
		return a.exactly(params, 1, a.info)
	case "version":
		return a.version()
	case "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// exactly runs fn when params holds n arguments.
func (a *app) exactly(params []string, n int, fn func([]string) error) error {
	if len(params) != n {
		return fmt.Errorf("%w: expected %d argument(s), got %d", errUsage, n, len(params))
	}
	return fn(params)
}
