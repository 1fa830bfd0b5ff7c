package framebuffer

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFramebuffer_Flush publishes pixels only on Display.
func TestFramebuffer_Flush(t *testing.T) {
	t.Parallel()

	f := New(0, 0, "")

	w, h := f.Size()
	require.Equal(t, int16(DefaultWidth), w)
	require.Equal(t, int16(DefaultHeight), h)

	f.SetPixel(3, 4, color.RGBA{R: 1, A: 0xFF})
	f.SetPixel(5, 6, color.RGBA{A: 0xFF})
	require.False(t, f.Lit(3, 4))

	require.NoError(t, f.Display())
	require.True(t, f.Lit(3, 4))
	require.False(t, f.Lit(5, 6))
	require.Equal(t, 1, f.LitCount())
	require.Equal(t, 1, f.Frames())
}

// TestFramebuffer_Snapshot mirrors the flushed frame to a PNG file.
func TestFramebuffer_Snapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "frame.png")
	f := New(16, 8, path)

	f.SetPixel(1, 1, color.RGBA{G: 0xFF, A: 0xFF})
	require.NoError(t, f.Display())

	file, err := os.Open(path)
	require.NoError(t, err)

	defer func() {
		_ = file.Close()
	}()

	img, err := png.Decode(file)
	require.NoError(t, err)
	require.Equal(t, 16, img.Bounds().Dx())
	require.Equal(t, 8, img.Bounds().Dy())

	r, _, _, _ := img.At(1, 1).RGBA()
	require.NotZero(t, r)
}
