package graymap

import (
	"image"
	"image/color"
)

// ColorImage is an 8 bit per channel RGB raster.
// Pix holds the R, G, B samples of each pixel in row-major order.
type ColorImage struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width * Height * 3
}

// NewColorImage allocates a black ColorImage of the given size.
func NewColorImage(width, height int) *ColorImage {
	return &ColorImage{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// PixOffset returns the index of the first sample of the pixel at (x, y).
func (c *ColorImage) PixOffset(x, y int) int {
	return (y*c.Width + x) * 3
}

// SetRGB sets the pixel at (x, y). Points outside of the image are ignored.
func (c *ColorImage) SetRGB(x, y int, r, g, b uint8) {
	if !(image.Point{X: x, Y: y}.In(c.Bounds())) {
		return
	}
	i := c.PixOffset(x, y)
	c.Pix[i+0] = r
	c.Pix[i+1] = g
	c.Pix[i+2] = b
}

func (c *ColorImage) ColorModel() color.Model { return color.RGBAModel }

func (c *ColorImage) Bounds() image.Rectangle { return image.Rect(0, 0, c.Width, c.Height) }

func (c *ColorImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(c.Bounds())) {
		return color.RGBA{}
	}
	i := c.PixOffset(x, y)
	return color.RGBA{R: c.Pix[i+0], G: c.Pix[i+1], B: c.Pix[i+2], A: 0xff}
}

// GrayImage is a single channel 8 bit raster. Pix holds one luminance
// value per pixel in row-major order.
type GrayImage struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width * Height
}

// NewGrayImage allocates a black GrayImage of the given size.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

func (g *GrayImage) ColorModel() color.Model { return color.GrayModel }

func (g *GrayImage) Bounds() image.Rectangle { return image.Rect(0, 0, g.Width, g.Height) }

func (g *GrayImage) At(x, y int) color.Color {
	return g.GrayAt(x, y)
}

// GrayAt returns the luminance of the pixel at (x, y).
func (g *GrayImage) GrayAt(x, y int) color.Gray {
	if !(image.Point{X: x, Y: y}.In(g.Bounds())) {
		return color.Gray{}
	}
	return color.Gray{Y: g.Pix[y*g.Width+x]}
}
