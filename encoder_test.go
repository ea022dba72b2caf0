package graymap

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortWriter accepts at most limit bytes without reporting an error.
type shortWriter struct {
	limit int
}

func (w *shortWriter) Write(b []byte) (int, error) {
	if len(b) > w.limit {
		n := w.limit
		w.limit = 0
		return n, nil
	}
	w.limit -= len(b)
	return len(b), nil
}

type failingWriter struct{}

func (failingWriter) Write(b []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncoder_ShouldWriteHeaderAndPixels(t *testing.T) {
	img := &GrayImage{Width: 1, Height: 1, Pix: []uint8{18}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, ""))
	assert.Equal(t, append([]byte("P5\n# Created by V\n1 1\n255\n"), 18), buf.Bytes())
}

func TestEncoder_ShouldUseCreator(t *testing.T) {
	img := &GrayImage{Width: 3, Height: 2, Pix: []uint8{0, 1, 2, 3, 4, 5}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, "graymap"))

	creator, width, height, maxVal, pix := readPGMHeader(t, buf.Bytes())
	assert.Equal(t, "graymap", creator)
	assert.Equal(t, 3, width)
	assert.Equal(t, 2, height)
	assert.Equal(t, 255, maxVal)
	assert.Equal(t, img.Pix, pix)
}

func TestEncoder_ShouldRejectInvalidInput(t *testing.T) {
	var buf bytes.Buffer

	err := Encode(&buf, &GrayImage{Width: 2, Height: 2, Pix: []uint8{1, 2, 3}}, "")
	assert.ErrorIs(t, err, ErrFormat)

	err = Encode(&buf, &GrayImage{Width: 1, Height: 1, Pix: []uint8{1}}, "two\nlines")
	assert.ErrorIs(t, err, ErrFormat)
	assert.Zero(t, buf.Len())
}

func TestEncoder_ShouldFailOnIncompleteWrites(t *testing.T) {
	img := NewGrayImage(64, 64)

	err := Encode(&shortWriter{limit: 100}, img, "")
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, io.ErrShortWrite)

	err = Encode(failingWriter{}, img, "")
	assert.ErrorIs(t, err, ErrIO)
	assert.Contains(t, err.Error(), "header")
	assert.NotContains(t, err.Error(), "pixel bytes")

	// The header fits, the pixel data does not.
	err = Encode(&shortWriter{limit: 40}, img, "")
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Contains(t, err.Error(), "pixel bytes")
}

func TestEncoder_EncodeFile(t *testing.T) {
	dir := t.TempDir()
	img := &GrayImage{Width: 2, Height: 1, Pix: []uint8{0, 255}}

	path := filepath.Join(dir, "out.pgm")
	require.NoError(t, EncodeFile(path, img, ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, append([]byte("P5\n# Created by V\n2 1\n255\n"), 0, 255), data)

	err = EncodeFile(filepath.Join(dir, "missing", "out.pgm"), img, "")
	assert.ErrorIs(t, err, ErrIO)
	assert.Contains(t, err.Error(), "out.pgm")

	// The file is created, then removed because the image is invalid.
	invalid := filepath.Join(dir, "invalid.pgm")
	err = EncodeFile(invalid, &GrayImage{Width: 2, Height: 2}, "")
	assert.ErrorIs(t, err, ErrFormat)
	assert.NoFileExists(t, invalid)
}

func TestEncoder_RoundTripShouldPreserveSize(t *testing.T) {
	testCases := []struct {
		width, height int
	}{
		{1, 1}, {2, 1}, {1, 7}, {16, 9}, {33, 17},
	}

	for _, tc := range testCases {
		src := NewColorImage(tc.width, tc.height)
		var in bytes.Buffer
		in.WriteString("P6\n")
		in.WriteString(sizeLine(tc.width, tc.height))
		in.WriteString("255\n")
		in.Write(src.Pix)

		img, err := Decode(&in)
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, Encode(&out, NewGrayImage(img.Width, img.Height), ""))

		_, width, height, _, pix := readPGMHeader(t, out.Bytes())
		assert.Equal(t, tc.width, width)
		assert.Equal(t, tc.height, height)
		assert.Len(t, pix, tc.width*tc.height)
	}
}
