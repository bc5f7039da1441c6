package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlipRGBA(t *testing.T) {
	// Two rows, bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	img, err := FlipRGBA(pixels, 2, 2)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.NotZero(t, b)

	r, _, b, _ = img.At(1, 1).RGBA()
	assert.NotZero(t, r)
	assert.Zero(t, b)
}

func TestFlipRGBASizeMismatch(t *testing.T) {
	_, err := FlipRGBA(make([]byte, 15), 2, 2)
	assert.ErrorIs(t, err, ErrPixelSize)

	_, err = FlipRGBA(nil, 0, 0)
	assert.ErrorIs(t, err, ErrPixelSize)
}

func TestScreenshotsSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "overlay")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	path, err := s.Save(make([]byte, 3*2*4), 3, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "overlay_2024-05-01_12-30-00.000.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Width)
	assert.Equal(t, 2, cfg.Height)
}
