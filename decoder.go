package graymap

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"math"
	"os"
	"strconv"
)

const (
	magicPPM      = "P6"
	magicPGM      = "P5"
	maxValue      = 255
	commentPrefix = '#'

	// maxDigits bounds the length of a numeric header field.
	maxDigits = 10
	// chunkSize is the initial pixel buffer capacity, which grows as data arrives.
	chunkSize = 1 << 24
)

// Header holds the fields of a binary pixmap header.
type Header struct {
	Width  int
	Height int
	MaxVal int
}

func init() {
	image.RegisterFormat("ppm", magicPPM, decodeImage, decodeImageConfig)
}

func decodeImage(r io.Reader) (image.Image, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func decodeImageConfig(r io.Reader) (image.Config, error) {
	h, err := DecodeConfig(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}

type decoder struct {
	br *bufio.Reader
}

// Decode reads a binary (P6) pixmap with 8 bit channels from r.
func Decode(r io.Reader) (*ColorImage, error) {
	d := &decoder{br: bufio.NewReader(r)}
	h, err := d.readHeader()
	if err != nil {
		return nil, err
	}
	pix, err := d.readPixels(h.Width * h.Height * 3)
	if err != nil {
		return nil, err
	}
	return &ColorImage{Width: h.Width, Height: h.Height, Pix: pix}, nil
}

// DecodeConfig reads only the header of a binary (P6) pixmap.
func DecodeConfig(r io.Reader) (Header, error) {
	d := &decoder{br: bufio.NewReader(r)}
	return d.readHeader()
}

// DecodeFile opens, decodes and closes the pixmap stored at path.
func DecodeFile(path string) (*ColorImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, withPath(ioError(err), path)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("could not close the opened file: %v", err)
		}
	}()

	img, err := Decode(f)
	if err != nil {
		return nil, withPath(err, path)
	}
	return img, nil
}

func (d *decoder) readHeader() (Header, error) {
	var magic [2]byte
	if _, err := io.ReadFull(d.br, magic[:]); err != nil {
		if isEOF(err) {
			return Header{}, formatErrorf("missing magic number")
		}
		return Header{}, ioError(err)
	}
	if string(magic[:]) != magicPPM {
		return Header{}, formatErrorf("invalid magic number %q (must be %q)", magic[:], magicPPM)
	}
	c, err := d.br.ReadByte()
	if err != nil {
		if isEOF(err) {
			return Header{}, formatErrorf("unexpected end of header after magic number")
		}
		return Header{}, ioError(err)
	}
	if !isSpace(c) {
		return Header{}, formatErrorf("magic number must be followed by whitespace")
	}

	width, err := d.readInt("width", false)
	if err != nil {
		return Header{}, err
	}
	height, err := d.readInt("height", false)
	if err != nil {
		return Header{}, err
	}
	if width <= 0 || height <= 0 {
		return Header{}, formatErrorf("invalid image size %dx%d", width, height)
	}
	if width > math.MaxInt/3/height {
		return Header{}, formatErrorf("image size %dx%d is too large", width, height)
	}

	maxVal, err := d.readInt("max value", true)
	if err != nil {
		return Header{}, err
	}
	if maxVal != maxValue {
		return Header{}, &Error{
			Kind: ErrUnsupportedDepth,
			Msg:  fmt.Sprintf("max value %d, only %d (8 bits per channel) is supported", maxVal, maxValue),
		}
	}
	return Header{Width: width, Height: height, MaxVal: maxVal}, nil
}

// readInt skips whitespace and comment lines, then parses a decimal field.
// The byte following the digits is consumed when it is whitespace. The last
// header field must be terminated by exactly one whitespace byte.
func (d *decoder) readInt(name string, last bool) (int, error) {
	if err := d.skipSpace(); err != nil {
		if isEOF(err) {
			return 0, formatErrorf("unexpected end of header reading %s", name)
		}
		return 0, ioError(err)
	}

	digits := make([]byte, 0, maxDigits)
	for {
		c, err := d.br.ReadByte()
		if err != nil {
			if isEOF(err) {
				break
			}
			return 0, ioError(err)
		}
		if c >= '0' && c <= '9' {
			if len(digits) == maxDigits {
				return 0, formatErrorf("%s has too many digits", name)
			}
			digits = append(digits, c)
			continue
		}
		if !isSpace(c) {
			if last || len(digits) == 0 || c != commentPrefix {
				return 0, formatErrorf("invalid %s", name)
			}
			// A comment may follow the field directly.
			if err := d.br.UnreadByte(); err != nil {
				return 0, ioError(err)
			}
		}
		break
	}
	if len(digits) == 0 {
		return 0, formatErrorf("invalid %s", name)
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, formatErrorf("invalid %s: %v", name, err)
	}
	return n, nil
}

// skipSpace advances past whitespace and comment lines up to the next token.
func (d *decoder) skipSpace() error {
	for {
		c, err := d.br.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case c == commentPrefix:
			if err := d.skipLine(); err != nil {
				return err
			}
		case isSpace(c):
		default:
			return d.br.UnreadByte()
		}
	}
}

func (d *decoder) skipLine() error {
	for {
		_, err := d.br.ReadSlice('\n')
		if err != bufio.ErrBufferFull {
			return err
		}
	}
}

// readPixels reads exactly n bytes of pixel data. The buffer grows while
// reading, so a header announcing a huge image does not allocate it upfront.
func (d *decoder) readPixels(n int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(min(n, chunkSize))

	read, err := io.CopyN(&buf, d.br, int64(n))
	if err != nil {
		if isEOF(err) {
			return nil, &Error{
				Kind: ErrTruncatedData,
				Msg:  fmt.Sprintf("got %d of %d pixel bytes", read, n),
			}
		}
		return nil, ioError(err)
	}
	return buf.Bytes(), nil
}

func isEOF(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
