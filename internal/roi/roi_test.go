package roi

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glcm-texture/internal/glcm"
)

func TestParseRect(t *testing.T) {
	tests := []struct {
		in      string
		want    image.Rectangle
		wantErr bool
	}{
		{"", image.Rectangle{}, false},
		{"10,20,30,40", image.Rect(10, 20, 40, 60), false},
		{" 0, 0 ,5,5 ", image.Rect(0, 0, 5, 5), false},
		{"1,2,3", image.Rectangle{}, true},
		{"1,2,0,4", image.Rectangle{}, true},
		{"-1,2,3,4", image.Rectangle{}, true},
		{"a,2,3,4", image.Rectangle{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRect(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, glcm.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatRectRoundTrip(t *testing.T) {
	tests := []struct {
		r    image.Rectangle
		want string
	}{
		{image.Rectangle{}, ""},
		{Rect(0, 0, 1, 1), "0,0,1,1"},
		{Rect(10, 5, 11, 6), "10,5,11,6"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := FormatRect(tt.r)
			assert.Equal(t, tt.want, s)
			back, err := ParseRect(s)
			require.NoError(t, err)
			assert.Equal(t, tt.r, back)
		})
	}
}

func TestParsePolygon(t *testing.T) {
	pts, err := ParsePolygon("1,1 8,2  4,9")
	require.NoError(t, err)
	assert.Equal(t, []image.Point{{1, 1}, {8, 2}, {4, 9}}, pts)

	_, err = ParsePolygon("1,1 2,2")
	assert.ErrorIs(t, err, glcm.ErrInvalidInput)

	_, err = ParsePolygon("1,1 2,2 3")
	assert.ErrorIs(t, err, glcm.ErrInvalidInput)

	_, err = ParsePolygon("1,1 2,2 x,3")
	assert.ErrorIs(t, err, glcm.ErrInvalidInput)
}

func TestBounds(t *testing.T) {
	assert.Equal(t, image.Rect(1, 1, 9, 10), Bounds([]image.Point{{1, 1}, {8, 2}, {4, 9}}))
	assert.Equal(t, image.Rectangle{}, Bounds(nil))
}

func TestClip(t *testing.T) {
	r, err := Clip(image.Rectangle{}, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 5), r)

	r, err = Clip(image.Rect(2, 1, 6, 5), 10, 5)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(2, 1, 6, 5), r)

	_, err = Clip(image.Rect(2, 1, 6, 6), 10, 5)
	assert.ErrorIs(t, err, glcm.ErrInvalidInput)
}
