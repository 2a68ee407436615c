package game

import (
	"context"

	"fractal-room/internal/audio"
	"fractal-room/internal/config"
	"fractal-room/internal/scene"

	"golang.org/x/sync/errgroup"
)

// loaded is everything read from disk before GL setup.
type loaded struct {
	meshes []*scene.Mesh
	track  *audio.Track
}

// loadAssets imports the scene and decodes the music concurrently. The
// first failure cancels the rest. ctx is only checked before each load
// starts; a glTF import or mp3 decode already running is not
// interrupted.
func loadAssets(ctx context.Context, a config.Assets) (*loaded, error) {
	g, ctx := errgroup.WithContext(ctx)
	out := &loaded{}

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ms, err := scene.Import(a.Path(a.Scene))
		if err != nil {
			return err
		}
		out.meshes = ms
		return nil
	})
	if a.Play {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := audio.Load(a.Path(a.Music))
			if err != nil {
				return err
			}
			out.track = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
