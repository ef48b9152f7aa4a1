package glcm

import (
	"fmt"
)

// MatrixSet holds the five normalised matrices of one window and the gray
// level range of its unmasked pixels.
type MatrixSet struct {
	matrices [len(Directions)]*Matrix

	// PixelCount is the number of window pixels admitted by the mask.
	PixelCount int
	PixelMin   int
	PixelMax   int
}

// Matrix returns the matrix built for d.
func (s *MatrixSet) Matrix(d Direction) *Matrix {
	if d < 0 || int(d) >= len(s.matrices) {
		return nil
	}
	return s.matrices[d]
}

// Build accumulates and normalises the co-occurrence matrices of w for the
// given step.
func Build(w Window, step int) (*MatrixSet, error) {
	if step < 1 {
		return nil, fmt.Errorf("step must be at least 1, got %d: %w", step, ErrInvalidInput)
	}
	if err := w.validate(); err != nil {
		return nil, err
	}

	set := &MatrixSet{PixelMin: GrayLevels, PixelMax: -1}
	set.scanRange(w)

	for _, d := range Directions {
		m := newMatrix()
		accumulate(w, d.offsets(step), m)
		m.normalize()
		set.matrices[d] = m
	}
	return set, nil
}

func (s *MatrixSet) scanRange(w Window) {
	r := w.Bounds()
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			if w.Mask != nil && !w.Mask.At(x, y) {
				continue
			}
			v := w.Image.At(r.Min.X+x, r.Min.Y+y)
			if v < s.PixelMin {
				s.PixelMin = v
			}
			if v > s.PixelMax {
				s.PixelMax = v
			}
			s.PixelCount++
		}
	}
}

// accumulate visits every window pixel admitted by the mask and, when every
// offset lands inside the window, records the pair formed with each neighbour.
// With a single offset this is the per-direction rule; with all four offsets
// it is the conjunctive rule of the combined matrix.
func accumulate(w Window, offsets []offset, m *Matrix) {
	r := w.Bounds()
	width, height := r.Dx(), r.Dy()
	neighbours := make([]int, len(offsets))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if w.Mask != nil && !w.Mask.At(x, y) {
				continue
			}
			eligible := true
			for i, o := range offsets {
				nx, ny := x+o.dx, y+o.dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					eligible = false
					break
				}
				neighbours[i] = w.Image.At(r.Min.X+nx, r.Min.Y+ny)
			}
			if !eligible {
				continue
			}
			a := w.Image.At(r.Min.X+x, r.Min.Y+y)
			for _, b := range neighbours {
				m.add(a, b)
			}
		}
	}
}
