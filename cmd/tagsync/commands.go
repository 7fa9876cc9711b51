package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"

	"github.com/simonhull/tagsync"
)

func (a *app) println(s string) {
	fmt.Fprintln(a.stdout, s)
}

func (a *app) tags(params []string) error {
	path := params[0]
	tags, err := a.codec.GetTags(path)
	if err != nil {
		return err
	}

	a.println(heading.Render(path))
	a.println(divider)
	for f, v := range tags.All() {
		a.println(field(f.String(), v))
	}
	return nil
}

// set applies key=value pairs on top of the current tags.
func (a *app) set(params []string) error {
	if len(params) < 2 {
		return fmt.Errorf("%w: set FILE key=value...", errUsage)
	}
	path := params[0]

	tags, err := a.codec.GetTags(path)
	if err != nil {
		return err
	}

	for _, kv := range params[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("%w: %q is not key=value", errUsage, kv)
		}
		f, ok := tagsync.ParseField(key)
		if !ok {
			return fmt.Errorf("unknown field %q", key)
		}
		tags.Set(f, value)
	}

	if err := a.codec.SetTags(path, tags); err != nil {
		return err
	}
	a.println(success.Render("[✓] tags written to " + path))
	return nil
}

func (a *app) cover(params []string) error {
	fs := flag.NewFlagSet("cover", flag.ContinueOnError)
	out := fs.String("o", "", "write the image to this file")
	if err := fs.Parse(params); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: cover FILE [-o OUT]", errUsage)
	}
	path := fs.Arg(0)

	cover, err := a.codec.GetCover(path)
	if err != nil {
		return err
	}
	if cover == nil {
		a.println(faint.Render("no cover"))
		return nil
	}

	a.println(field("cover", cover.String()))
	if *out != "" {
		if err := os.WriteFile(*out, cover.Data, 0o644); err != nil {
			return fmt.Errorf("save cover: %w", err)
		}
		a.println(success.Render("[✓] cover saved to " + *out))
	}
	return nil
}

func (a *app) embed(params []string) error {
	path, image := params[0], params[1]

	data, err := os.ReadFile(image)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	cover := tagsync.NewCover(data, "")
	if err := a.codec.SetCover(path, cover); err != nil {
		return err
	}
	a.println(success.Render("[✓] embedded " + cover.String() + " in " + path))
	return nil
}

func (a *app) copyTags(params []string) error {
	if err := a.codec.CopyTags(params[0], params[1]); err != nil {
		return err
	}
	a.println(success.Render("[✓] tags copied to " + params[1]))
	return nil
}

func (a *app) copyCover(params []string) error {
	outcome, err := a.codec.CopyCover(params[0], params[1])
	if err != nil {
		return err
	}
	if outcome == tagsync.CopyNothingToDo {
		a.println(faint.Render(params[0] + " has no cover; " + params[1] + " left unchanged"))
		return nil
	}
	a.println(success.Render("[✓] cover copied to " + params[1]))
	return nil
}

func (a *app) ls(params []string) error {
	if len(params) == 0 {
		return fmt.Errorf("%w: ls FILE...", errUsage)
	}

	results, err := a.codec.ReadMany(context.Background(), params...)
	if err != nil {
		return err
	}

	for _, s := range results {
		if s.Err != nil {
			a.println(failure.Render("[x] ") + s.Path + faint.Render(": "+s.Err.Error()))
			continue
		}

		cover := faint.Render("no cover")
		if s.Cover != nil {
			cover = s.Cover.String()
		}
		line := fmt.Sprintf("%s  %s - %s  [%s]", heading.Render(s.Path), s.Tags.Artist, s.Tags.Title, cover)
		a.println(line)
	}
	return nil
}

// info reports the classification next to what an independent content
// sniffer makes of the file.
func (a *app) info(params []string) error {
	path := params[0]

	a.println(heading.Render(path))
	a.println(divider)
	a.println(field("container", tagsync.Classify(path).String()))

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	format, fileType, err := tag.Identify(f)
	if err != nil {
		a.println(field("content", faint.Render("unidentified: "+err.Error())))
	} else {
		a.println(field("content", fmt.Sprintf("%s (%s)", fileType, format)))
	}

	cover, err := a.codec.GetCover(path)
	if err != nil {
		return err
	}
	if cover != nil {
		a.println(field("cover", cover.String()))
	} else {
		a.println(field("cover", ""))
	}
	return nil
}

func (a *app) version() error {
	v := tagsync.GetVersionInfo()
	a.println(heading.Render("tagsync " + v.Version))
	a.println(field("commit", v.GitCommit))
	a.println(field("built", v.BuildTime))
	a.println(field("go", v.GoVersion))

	var exts []string
	for _, k := range tagsync.Kinds() {
		exts = append(exts, k.Extensions()...)
	}
	a.println(field("containers", strings.Join(exts, " ")))
	return nil
}
