package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/scorpionlabs/tictac/pkg/render"
	"github.com/scorpionlabs/tictac/pkg/waterfall"
)

// RenderFromSnapshot renders every requested format in parallel.
func RenderFromSnapshot(ctx context.Context, s *waterfall.Snapshot, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
		ropts     = opts.RenderOptions()
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := render.Render(s, format, ropts...)
			if err != nil {
				return err
			}
			opts.Logger.Debug("rendered artifact", "format", format, "bytes", len(data))

			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
