package graymap

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImage_ColorImage(t *testing.T) {
	assert := assert.New(t)

	img := NewColorImage(3, 2)
	assert.Len(img.Pix, 3*2*3)
	assert.Equal(image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(color.RGBAModel, img.ColorModel())

	img.SetRGB(2, 1, 7, 8, 9)
	assert.Equal(15, img.PixOffset(2, 1))
	assert.Equal([]uint8{7, 8, 9}, img.Pix[15:18])
	assert.Equal(color.RGBA{R: 7, G: 8, B: 9, A: 0xff}, img.At(2, 1))
	assert.Equal(color.RGBA{}, img.At(3, 1))
}

func TestImage_GrayImage(t *testing.T) {
	assert := assert.New(t)

	img := NewGrayImage(2, 2)
	img.Pix[3] = 200

	assert.Equal(image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(color.GrayModel, img.ColorModel())
	assert.Equal(color.Gray{Y: 200}, img.GrayAt(1, 1))
	assert.Equal(color.Gray{Y: 200}, img.At(1, 1))
	assert.Equal(color.Gray{}, img.GrayAt(0, 2))
}
