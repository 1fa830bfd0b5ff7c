package textdisplay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/chess-clock/internal/hal/framebuffer"
)

// TestRenderer_Render lights pixels for text and clears them for a blank frame.
func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	fb := framebuffer.New(framebuffer.DefaultWidth, framebuffer.DefaultHeight, "")
	r := New(fb)

	require.Equal(t, 4, r.Rows())

	require.NoError(t, r.Render([]string{"A: 10:00", "B: 10:00"}))
	require.Positive(t, fb.LitCount())

	// Nothing is drawn below the two rows.
	for x := range framebuffer.DefaultWidth {
		for y := 2 * 13; y < framebuffer.DefaultHeight; y++ {
			require.False(t, fb.Lit(x, y), "pixel %d,%d", x, y)
		}
	}

	require.NoError(t, r.Render(nil))
	require.Zero(t, fb.LitCount())
	require.Equal(t, 2, fb.Frames())
}

// TestFit drops leading blank rows until the content fits.
func TestFit(t *testing.T) {
	t.Parallel()

	lines := []string{"", " ....", "", "TIME'S UP!", "", "", "A loses"}
	require.Equal(t, []string{" ....", "TIME'S UP!", "", "A loses"}, fit(lines, 4))

	require.Equal(t, []string{"a", "b"}, fit([]string{"a", "b"}, 4))
	require.Equal(t, []string{"a", "b"}, fit([]string{"a", "b", "c"}, 2))
}
