// Package audio plays the background track.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
	"github.com/rs/zerolog/log"
)

// ErrEmptyTrack is returned for a stream that decodes to no samples.
var ErrEmptyTrack = errors.New("audio: empty track")

// Track is a decoded mp3 stream. go-mp3 always yields 16-bit stereo.
type Track struct {
	Path string
	dec  *mp3.Decoder
}

func (t *Track) SampleRate() int {
	return t.dec.SampleRate()
}

// Load reads and opens an mp3 file. It does no device work and can run
// off the main thread.
func Load(path string) (*Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read track: %w", err)
	}
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if dec.Length() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyTrack)
	}
	return &Track{Path: path, dec: dec}, nil
}

// Player owns the output device. Only one oto context may exist per
// process, so a Player is created once.
type Player struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
}

// Loop starts playing t forever at the given volume in [0, 1].
func (p *Player) Loop(t *Track, volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   t.SampleRate(),
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return fmt.Errorf("open audio device: %w", err)
		}
		<-ready
		p.ctx = ctx
	}
	if p.player != nil {
		_ = p.player.Close()
	}

	p.player = p.ctx.NewPlayer(&loopReader{src: t.dec})
	p.player.SetVolume(clampVolume(volume))
	p.player.Play()
	log.Info().Str("track", t.Path).Int("sample_rate", t.SampleRate()).Msg("Music playing")
	return nil
}

func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}

func clampVolume(v float64) float64 {
	return max(0, min(1, v))
}

// loopReader rewinds src on EOF so the stream never ends.
type loopReader struct {
	src io.ReadSeeker
}

func (r *loopReader) Read(p []byte) (int, error) {
	n, err := r.src.Read(p)
	if !errors.Is(err, io.EOF) {
		return n, err
	}
	if n > 0 {
		return n, nil
	}
	if _, err := r.src.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	// a source that is empty right after rewinding would spin forever
	n, err = r.src.Read(p)
	if n == 0 && errors.Is(err, io.EOF) {
		return 0, ErrEmptyTrack
	}
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return n, err
}
