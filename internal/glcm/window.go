package glcm

import (
	"fmt"
	"image"
)

// GrayLevels is the number of quantised gray levels (8-bit input).
const GrayLevels = 256

// Gray is a single-channel image stored row-major.
type Gray struct {
	Width  int
	Height int
	Pix    []int
}

// NewGray copies rows (indexed [y][x]) into a Gray image. Every row must have
// the same length.
func NewGray(rows [][]int) (*Gray, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("image has no pixels: %w", ErrInvalidInput)
	}
	width := len(rows[0])
	g := &Gray{Width: width, Height: len(rows), Pix: make([]int, 0, width*len(rows))}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d pixels, expected %d: %w", y, len(row), width, ErrInvalidInput)
		}
		g.Pix = append(g.Pix, row...)
	}
	return g, nil
}

// GrayFromImage converts an 8-bit gray image into a Gray.
func GrayFromImage(src *image.Gray) *Gray {
	b := src.Bounds()
	g := &Gray{Width: b.Dx(), Height: b.Dy(), Pix: make([]int, 0, b.Dx()*b.Dy())}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
		for _, v := range row {
			g.Pix = append(g.Pix, int(v))
		}
	}
	return g
}

// At returns the gray level at column x, row y.
func (g *Gray) At(x, y int) int {
	return g.Pix[y*g.Width+x]
}

// Image converts g back to an 8-bit image for display. Levels outside
// [0, 255] are clamped.
func (g *Gray) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for i, v := range g.Pix {
		img.Pix[i] = uint8(min(max(v, 0), GrayLevels-1))
	}
	return img
}

// Mask marks which window pixels take part in accumulation. It is sized to the
// window, not to the image.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// NewMask returns a mask of the given size with every pixel excluded.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Bits: make([]bool, width*height)}
}

// Set includes or excludes the pixel at (x, y), in window coordinates.
func (m *Mask) Set(x, y int, on bool) {
	m.Bits[y*m.Width+x] = on
}

// At reports whether the pixel at (x, y), in window coordinates, is included.
func (m *Mask) At(x, y int) bool {
	return m.Bits[y*m.Width+x]
}

// Count returns the number of included pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Window is the analysed region: an image, the ROI bounds inside it and an
// optional mask. A zero ROI selects the whole image.
type Window struct {
	Image *Gray
	ROI   image.Rectangle
	Mask  *Mask
}

// Bounds returns the effective ROI in image coordinates.
func (w Window) Bounds() image.Rectangle {
	if w.ROI.Empty() && w.Image != nil {
		return image.Rect(0, 0, w.Image.Width, w.Image.Height)
	}
	return w.ROI
}

func (w Window) validate() error {
	if w.Image == nil {
		return fmt.Errorf("window has no image: %w", ErrInvalidInput)
	}
	img := w.Image
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d: %w", img.Width, img.Height, ErrInvalidInput)
	}
	if len(img.Pix) != img.Width*img.Height {
		return fmt.Errorf("image holds %d pixels, expected %dx%d: %w", len(img.Pix), img.Width, img.Height, ErrInvalidInput)
	}
	if w.ROI != (image.Rectangle{}) && w.ROI.Empty() {
		return fmt.Errorf("roi %v is empty: %w", w.ROI, ErrInvalidInput)
	}
	r := w.Bounds()
	if !r.In(image.Rect(0, 0, img.Width, img.Height)) {
		return fmt.Errorf("roi %v exceeds image bounds %dx%d: %w", r, img.Width, img.Height, ErrInvalidInput)
	}
	if w.Mask != nil {
		if w.Mask.Width != r.Dx() || w.Mask.Height != r.Dy() || len(w.Mask.Bits) != r.Dx()*r.Dy() {
			return fmt.Errorf("mask %dx%d does not match roi %dx%d: %w",
				w.Mask.Width, w.Mask.Height, r.Dx(), r.Dy(), ErrInvalidInput)
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if v := img.At(x, y); v < 0 || v >= GrayLevels {
				return fmt.Errorf("gray level %d at (%d,%d) outside [0,%d]: %w", v, x, y, GrayLevels-1, ErrInvalidInput)
			}
		}
	}
	return nil
}
