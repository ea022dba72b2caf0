package graymap

import "time"

// Weights of the red, green and blue channels in the luminance sum.
const (
	redWeight   = 0.3
	greenWeight = 0.59
	blueWeight  = 0.11
)

// Luminance returns the gray level of an RGB triple: the weighted channel sum
// truncated toward zero and reduced modulo 256.
func Luminance(r, g, b uint8) uint8 {
	// Each product is rounded to float64 on its own, so the compiler
	// may not fuse the expression into multiply-add instructions.
	lum := float64(redWeight*float64(r)) +
		float64(greenWeight*float64(g)) +
		float64(blueWeight*float64(b))

	return uint8(uint32(lum) % (maxValue + 1))
}

// ToGray converts every pixel of src to its luminance.
func ToGray(src *ColorImage) *GrayImage {
	dst := NewGrayImage(src.Width, src.Height)
	for i, j := 0, 0; i < len(dst.Pix); i, j = i+1, j+3 {
		dst.Pix[i] = Luminance(src.Pix[j], src.Pix[j+1], src.Pix[j+2])
	}
	return dst
}

// Grayscale converts the image to grayscale mode and
// returns the time spent on the conversion.
func (p *Processor) Grayscale(src *ColorImage) (*GrayImage, time.Duration) {
	now := time.Now()
	dst := ToGray(src)
	return dst, time.Since(now)
}
