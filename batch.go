package tagsync

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/tagsync/internal/types"
)

// Summary is the result of reading one file in a batch.
type Summary struct {
	Path string
	Kind Kind
	Tags Tags

	// Cover is the front cover, or nil when the file has none.
	Cover *Cover

	// Err is the read failure for this file. Other files in the batch are
	// unaffected by it.
	Err error
}

// ReadMany reads the tags and cover of several files concurrently.
//
// Files are read in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. A failure
// on one file is recorded on its Summary; only cancellation of ctx aborts
// the batch.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	results, err := codec.ReadMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, s := range results {
//		fmt.Printf("%s: %s - %s\n", s.Path, s.Tags.Artist, s.Tags.Title)
//	}
func (c *Codec) ReadMany(ctx context.Context, paths ...string) ([]Summary, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU()) // Limit concurrent operations

	results := make([]Summary, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			// Check for cancellation
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c.summarize(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Codec) summarize(path string) Summary {
	s := Summary{Path: path, Kind: types.Classify(path)}

	tags, err := c.GetTags(path)
	if err != nil {
		s.Err = err
		return s
	}
	s.Tags = tags

	s.Cover, s.Err = c.GetCover(path)
	return s
}

// ReadMany reads several files with the Default codec.
func ReadMany(ctx context.Context, paths ...string) ([]Summary, error) {
	return Default.ReadMany(ctx, paths...)
}
