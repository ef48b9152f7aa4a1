// Package roi parses and validates the rectangular and polygonal regions
// accepted on the command line and in the viewer.
package roi

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"glcm-texture/internal/glcm"
)

// Rect returns the rectangle with origin (x, y) and the given size.
func Rect(x, y, width, height int) image.Rectangle {
	return image.Rect(x, y, x+width, y+height)
}

// ParseRect parses "x,y,w,h". An empty string selects the whole image and
// returns the zero rectangle.
func ParseRect(s string) (image.Rectangle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return image.Rectangle{}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("%w: roi %q: want x,y,w,h", glcm.ErrInvalidInput, s)
	}

	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("%w: roi %q: %v", glcm.ErrInvalidInput, s, err)
		}
		v[i] = n
	}
	if v[0] < 0 || v[1] < 0 || v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: roi %q: negative origin or empty size", glcm.ErrInvalidInput, s)
	}
	return Rect(v[0], v[1], v[2], v[3]), nil
}

// FormatRect renders r as "x,y,w,h", the form ParseRect accepts. The zero
// rectangle renders as "".
func FormatRect(r image.Rectangle) string {
	if r == (image.Rectangle{}) {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d,%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// ParsePolygon parses whitespace separated "x,y" vertices.
func ParsePolygon(s string) ([]image.Point, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", glcm.ErrInvalidInput, len(fields))
	}

	points := make([]image.Point, 0, len(fields))
	for _, f := range fields {
		xy := strings.Split(f, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("%w: polygon vertex %q: want x,y", glcm.ErrInvalidInput, f)
		}
		x, err := strconv.Atoi(xy[0])
		if err != nil {
			return nil, fmt.Errorf("%w: polygon vertex %q: %v", glcm.ErrInvalidInput, f, err)
		}
		y, err := strconv.Atoi(xy[1])
		if err != nil {
			return nil, fmt.Errorf("%w: polygon vertex %q: %v", glcm.ErrInvalidInput, f, err)
		}
		points = append(points, image.Pt(x, y))
	}
	return points, nil
}

// Bounds returns the smallest rectangle holding every vertex, inclusive of
// the right-most column and bottom row.
func Bounds(points []image.Point) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}

// Clip validates r against an image of the given size. The zero rectangle
// stands for the whole image.
func Clip(r image.Rectangle, width, height int) (image.Rectangle, error) {
	full := image.Rect(0, 0, width, height)
	if r == (image.Rectangle{}) {
		return full, nil
	}
	if !r.In(full) {
		return image.Rectangle{}, fmt.Errorf("%w: roi %v outside %dx%d image", glcm.ErrInvalidInput, r, width, height)
	}
	return r, nil
}
