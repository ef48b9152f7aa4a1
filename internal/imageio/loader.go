// Package imageio turns image files and region selections into glcm windows.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"glcm-texture/internal/glcm"
	"glcm-texture/internal/imageio/dicom"
	"glcm-texture/internal/roi"
)

// LoadGray reads the image at path as 8-bit grayscale. DICOM files are
// recognised by extension; everything else goes through OpenCV.
func LoadGray(path string) (*glcm.Gray, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dcm", ".dicom":
		img, err := dicom.Decode(path)
		if err != nil {
			return nil, err
		}
		return glcm.GrayFromImage(img), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return DecodeGray(data)
}

// DecodeGray decodes an encoded raster image, converting colour input to
// grayscale.
func DecodeGray(data []byte) (*glcm.Gray, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadGrayScale)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	defer mat.Close()

	if err := validateMat(&mat, "DecodeGray"); err != nil {
		return nil, err
	}
	return grayFromMat(&mat), nil
}

func validateMat(mat *gocv.Mat, operation string) error {
	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}
	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		return fmt.Errorf("Mat has invalid dimensions %dx%d for operation: %s", mat.Cols(), mat.Rows(), operation)
	}
	if mat.Type() != gocv.MatTypeCV8UC1 {
		return fmt.Errorf("unsupported MatType %d for operation: %s", int(mat.Type()), operation)
	}
	return nil
}

func grayFromMat(mat *gocv.Mat) *glcm.Gray {
	g := &glcm.Gray{Width: mat.Cols(), Height: mat.Rows(), Pix: make([]int, mat.Rows()*mat.Cols())}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.Pix[y*g.Width+x] = int(mat.GetUCharAt(y, x))
		}
	}
	return g
}

// PolygonMask rasterises a polygon given in image coordinates. The polygon's
// bounding box becomes the ROI and the returned mask covers exactly that box.
func PolygonMask(points []image.Point) (image.Rectangle, *glcm.Mask, error) {
	if len(points) < 3 {
		return image.Rectangle{}, nil, fmt.Errorf("%w: polygon needs at least 3 vertices", glcm.ErrInvalidInput)
	}
	bounds := roi.Bounds(points)

	canvas := gocv.NewMatWithSize(bounds.Dy(), bounds.Dx(), gocv.MatTypeCV8UC1)
	defer canvas.Close()
	canvas.SetTo(gocv.NewScalar(0, 0, 0, 0))

	local := make([]image.Point, len(points))
	for i, p := range points {
		local[i] = p.Sub(bounds.Min)
	}
	pv := gocv.NewPointsVectorFromPoints([][]image.Point{local})
	defer pv.Close()

	if err := gocv.FillPoly(&canvas, pv, color.RGBA{R: 255, G: 255, B: 255, A: 0}); err != nil {
		return image.Rectangle{}, nil, fmt.Errorf("failed to fill polygon: %w", err)
	}

	mask := glcm.NewMask(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			if canvas.GetUCharAt(y, x) > 0 {
				mask.Set(x, y, true)
			}
		}
	}
	return bounds, mask, nil
}
