package audio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopReaderWraps(t *testing.T) {
	r := &loopReader{src: bytes.NewReader([]byte("abc"))}
	buf := make([]byte, 8)
	var got []byte
	for len(got) < 8 {
		n, err := r.Read(buf[:2])
		require.NoError(t, err)
		got = append(got, buf[:n]...)
	}
	assert.Equal(t, "abcabcab", string(got[:8]))
}

func TestLoopReaderLongRead(t *testing.T) {
	r := &loopReader{src: bytes.NewReader([]byte("xy"))}
	buf := make([]byte, 16)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "xy", string(buf[:n]))

	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "xy", string(buf[:n]))
}

func TestLoopReaderEmptySource(t *testing.T) {
	r := &loopReader{src: bytes.NewReader(nil)}
	n, err := r.Read(make([]byte, 4))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrEmptyTrack)
}

func TestLoopReaderNeverEOF(t *testing.T) {
	r := &loopReader{src: bytes.NewReader([]byte{1, 2, 3, 4})}
	n, err := io.CopyN(io.Discard, r, 1000)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, n)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.mp3"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not an mp3"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestClampVolume(t *testing.T) {
	assert.Equal(t, 0.0, clampVolume(-1))
	assert.Equal(t, 0.5, clampVolume(0.5))
	assert.Equal(t, 1.0, clampVolume(3))
}
