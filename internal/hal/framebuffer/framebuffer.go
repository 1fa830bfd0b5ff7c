// Package framebuffer is an in-memory monochrome pixel display for the host
// simulator. It satisfies tinygo's drivers.Displayer, so the same text
// rasterizer drives it and the real OLED, and it can mirror every flushed
// frame to a PNG file.
package framebuffer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
)

const (
	// DefaultWidth matches the SSD1306 panel of the board.
	DefaultWidth = 128
	// DefaultHeight matches the SSD1306 panel of the board.
	DefaultHeight = 64

	// snapshotFileMode is the permission of the PNG mirror.
	snapshotFileMode = 0o644
)

// Framebuffer is a grayscale image that only ever holds black or white.
type Framebuffer struct {
	// mu guards img, frames and pending.
	mu sync.Mutex
	// pending is the frame being drawn.
	pending *image.Gray
	// img is the last flushed frame.
	img *image.Gray
	// snapshot is the PNG path written on every flush, if set.
	snapshot string
	// frames counts flushes.
	frames int
}

// New creates a blank framebuffer. A non-empty snapshot path enables the PNG mirror.
func New(width, height int, snapshot string) *Framebuffer {
	if width <= 0 {
		width = DefaultWidth
	}

	if height <= 0 {
		height = DefaultHeight
	}

	rect := image.Rect(0, 0, width, height)

	return &Framebuffer{
		pending:  image.NewGray(rect),
		img:      image.NewGray(rect),
		snapshot: snapshot,
	}
}

// Size returns the panel dimensions in pixels.
func (f *Framebuffer) Size() (x, y int16) {
	b := f.pending.Bounds()

	return int16(b.Dx()), int16(b.Dy())
}

// SetPixel lights the pixel when any channel of c is set.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := color.Gray{}
	if c.R|c.G|c.B != 0 {
		v.Y = 0xFF
	}

	f.pending.SetGray(int(x), int(y), v)
}

// Display publishes the pending frame and writes the PNG mirror.
func (f *Framebuffer) Display() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copy(f.img.Pix, f.pending.Pix)
	f.frames++

	if f.snapshot == "" {
		return nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, f.img); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	return writeAtomic(f.snapshot, buf.Bytes())
}

// Lit reports whether the pixel at (x, y) of the last flushed frame is on.
func (f *Framebuffer) Lit(x, y int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.img.GrayAt(x, y).Y != 0
}

// LitCount returns the number of lit pixels in the last flushed frame.
func (f *Framebuffer) LitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0

	for _, p := range f.img.Pix {
		if p != 0 {
			n++
		}
	}

	return n
}

// Frames returns the number of flushed frames.
func (f *Framebuffer) Frames() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.frames
}

// writeAtomic replaces path with data via a temporary file in the same directory.
func writeAtomic(path string, data []byte) error {
	path = filepath.Clean(path)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".frame-*.png")
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write snapshot: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err = os.Chmod(tmp.Name(), snapshotFileMode); err != nil {
		return fmt.Errorf("chmod snapshot: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}
