// Package dicom reads single-frame grayscale DICOM images into 8-bit
// rasters.
package dicom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/imaging"
)

// ErrUnsupported is returned for compressed transfer syntaxes, colour data and
// sample sizes other than 8 or 16 bits.
var ErrUnsupported = errors.New("unsupported dicom pixel data")

// Decode reads the first frame of the file at path.
func Decode(path string) (*image.Gray, error) {
	res, err := parser.ParseFile(path, parser.WithReadOption(parser.ReadAll))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if res.TransferSyntax != nil && res.TransferSyntax.IsEncapsulated() {
		return nil, fmt.Errorf("%w: encapsulated transfer syntax in %s", ErrUnsupported, path)
	}

	pd, err := imaging.CreatePixelData(res.Dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to read pixel data of %s: %w", path, err)
	}
	info := pd.Info
	if int(info.SamplesPerPixel) != 1 {
		return nil, fmt.Errorf("%w: %d samples per pixel", ErrUnsupported, int(info.SamplesPerPixel))
	}

	frame, err := pd.GetFrame(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame 0 of %s: %w", path, err)
	}
	return ToGray(frame, int(info.Width), int(info.Height), int(info.BitsAllocated), info.PixelRepresentation != 0)
}

// ToGray converts little endian samples to 8 bits. 8-bit unsigned samples
// are kept as they are; anything else is stretched linearly from the frame
// minimum to its maximum.
func ToGray(raw []byte, width, height, bitsAllocated int, signed bool) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	n := width * height

	var samples []int32
	switch bitsAllocated {
	case 8:
		if len(raw) < n {
			return nil, fmt.Errorf("frame has %d bytes, want %d", len(raw), n)
		}
		if !signed {
			img := image.NewGray(image.Rect(0, 0, width, height))
			copy(img.Pix, raw[:n])
			return img, nil
		}
		samples = make([]int32, n)
		for i := range samples {
			samples[i] = int32(int8(raw[i]))
		}
	case 16:
		if len(raw) < 2*n {
			return nil, fmt.Errorf("frame has %d bytes, want %d", len(raw), 2*n)
		}
		samples = make([]int32, n)
		for i := range samples {
			u := binary.LittleEndian.Uint16(raw[2*i:])
			if signed {
				samples[i] = int32(int16(u))
			} else {
				samples[i] = int32(u)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %d bits allocated", ErrUnsupported, bitsAllocated)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	stretch(samples, img.Pix)
	return img, nil
}

func stretch(samples []int32, dst []uint8) {
	minv, maxv := samples[0], samples[0]
	for _, v := range samples[1:] {
		minv = min(minv, v)
		maxv = max(maxv, v)
	}
	if maxv == minv {
		maxv = minv + 1
	}

	span := float64(maxv - minv)
	for i, v := range samples {
		dst[i] = uint8(float64(v-minv)/span*255 + 0.5)
	}
}
