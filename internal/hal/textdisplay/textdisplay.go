// Package textdisplay rasterizes rows of text onto any tinygo
// drivers.Displayer, such as an SSD1306 OLED or the host framebuffer.
package textdisplay

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/drivers"
)

// leftMargin is the horizontal offset of every row in pixels.
const leftMargin = 2

var (
	// errNoDevice is returned when the renderer has no display to draw on.
	errNoDevice = errors.New("display device is not set")

	//nolint:gochecknoglobals // Fixed pixel colors.
	on = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	//nolint:gochecknoglobals // Fixed pixel colors.
	off = color.RGBA{A: 0xFF}
)

// Renderer draws text rows on a monochrome pixel display.
type Renderer struct {
	dev  drivers.Displayer
	face font.Face
	// rowHeight is the vertical pitch of a row in pixels.
	rowHeight int
}

// New creates a Renderer using the 7x13 basic font.
func New(dev drivers.Displayer) *Renderer {
	return NewWithFace(dev, basicfont.Face7x13)
}

// NewWithFace creates a Renderer using face.
func NewWithFace(dev drivers.Displayer, face font.Face) *Renderer {
	return &Renderer{
		dev:       dev,
		face:      face,
		rowHeight: face.Metrics().Height.Ceil(),
	}
}

// Rows returns how many text rows fit on the display.
func (r *Renderer) Rows() int {
	_, h := r.dev.Size()

	return int(h) / r.rowHeight
}

// Render clears the display, draws as many rows as fit (skipping leading
// blank rows first when they don't) and flushes the frame.
func (r *Renderer) Render(lines []string) error {
	if r.dev == nil {
		return errNoDevice
	}

	lines = fit(lines, r.Rows())

	canvas := newCanvas(r.dev)
	canvas.clear()

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(on),
		Face: r.face,
	}

	ascent := r.face.Metrics().Ascent.Ceil()

	for i, line := range lines {
		drawer.Dot = fixed.P(leftMargin, i*r.rowHeight+ascent)
		drawer.DrawString(line)
	}

	if err := r.dev.Display(); err != nil {
		return fmt.Errorf("flush display: %w", err)
	}

	return nil
}

// fit drops blank rows, top first, until lines fits in rows.
func fit(lines []string, rows int) []string {
	if len(lines) <= rows {
		return lines
	}

	kept := make([]string, 0, len(lines))
	excess := len(lines) - rows

	for _, line := range lines {
		if excess > 0 && isBlank(line) {
			excess--

			continue
		}

		kept = append(kept, line)
	}

	if len(kept) > rows {
		kept = kept[:rows]
	}

	return kept
}

// isBlank reports whether line has no visible characters.
func isBlank(line string) bool {
	for _, r := range line {
		if r != ' ' {
			return false
		}
	}

	return true
}

// canvas adapts a Displayer to draw.Image. The display cannot be read back,
// so At reports the background color; rows never overlap.
type canvas struct {
	dev  drivers.Displayer
	w, h int16
}

// newCanvas wraps dev.
func newCanvas(dev drivers.Displayer) *canvas {
	w, h := dev.Size()

	return &canvas{dev: dev, w: w, h: h}
}

// clear sets every pixel to the background color.
func (c *canvas) clear() {
	for x := int16(0); x < c.w; x++ {
		for y := int16(0); y < c.h; y++ {
			c.dev.SetPixel(x, y, off)
		}
	}
}

func (c *canvas) ColorModel() color.Model { return color.RGBAModel }

func (c *canvas) Bounds() image.Rectangle { return image.Rect(0, 0, int(c.w), int(c.h)) }

func (c *canvas) At(int, int) color.Color { return off }

// Set thresholds the drawn color to on or off.
func (c *canvas) Set(x, y int, col color.Color) {
	if x < 0 || y < 0 || x >= int(c.w) || y >= int(c.h) {
		return
	}

	r, g, b, _ := col.RGBA()
	if r+g+b > 3*0x7FFF {
		c.dev.SetPixel(int16(x), int16(y), on)
	}
}
