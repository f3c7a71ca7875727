package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/motrack/colorspace"
)

func TestScale(t *testing.T) {
	src := createTestFrame(t, 64, 48)
	c := colorspace.YUV{120, 80, 200}
	src.Fill(c)

	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"downscale", 32, 24},
		{"upscale", 128, 96},
		{"same size", 64, 48},
		{"aspect change", 16, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := Scale(src, tt.width, tt.height)
			require.NoError(t, err)
			assert.Equal(t, tt.width, dst.Width())
			assert.Equal(t, tt.height, dst.Height())
			assert.Equal(t, 3, dst.Planes())

			assert.Equal(t, c, dst.Sample(0, 0))
			assert.Equal(t, c, dst.Sample(tt.width/2, tt.height/2))
			assert.Equal(t, c, dst.Sample(tt.width-1, tt.height-1))
		})
	}
}

func TestScale_PreservesHalves(t *testing.T) {
	src := createTestFrame(t, 32, 32)
	src.Fill(colorspace.YUV{0, 128, 128})
	for y := 0; y < 32; y++ {
		for x := 16; x < 32; x++ {
			src.SetPixel(0, x, y, 200)
		}
	}

	dst, err := Scale(src, 16, 16)
	require.NoError(t, err)

	assert.Equal(t, byte(0), dst.Pixel(0, 0, 8))
	assert.Equal(t, byte(200), dst.Pixel(0, 15, 8))
}

func TestScale_Invalid(t *testing.T) {
	src := createTestFrame(t, 32, 32)

	tests := []struct {
		name   string
		src    *Frame
		width  int
		height int
	}{
		{"nil source", nil, 32, 32},
		{"zero width", src, 0, 32},
		{"negative height", src, 32, -2},
		{"odd width", src, 33, 32},
		{"too small", src, 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := Scale(tt.src, tt.width, tt.height)
			assert.Error(t, err)
			assert.Nil(t, dst)
		})
	}
}

func TestIsScalingRequired(t *testing.T) {
	src := createTestFrame(t, 32, 16)

	assert.False(t, IsScalingRequired(src, 32, 16))
	assert.True(t, IsScalingRequired(src, 32, 32))
	assert.True(t, IsScalingRequired(src, 16, 16))
}
