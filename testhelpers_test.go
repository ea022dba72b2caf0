package graymap

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ppm builds a P6 stream from a header and raw pixel bytes.
func ppm(header string, pix ...byte) []byte {
	return append([]byte(header), pix...)
}

// writePPM stores a width x height pixmap filled by fill into dir/name.
func writePPM(t *testing.T, dir, name string, width, height int, fill func(x, y int) (r, g, b uint8)) string {
	t.Helper()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P6\n# test image\n%d %d\n255\n", width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b := fill(x, y)
			buf.Write([]byte{r, g, b})
		}
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

// readPGMHeader parses the header written by Encode and returns the remaining pixel data.
func readPGMHeader(t *testing.T, data []byte) (creator string, width, height, maxVal int, pix []byte) {
	t.Helper()

	lines := bytes.SplitN(data, []byte("\n"), 5)
	require.Len(t, lines, 5, "truncated graymap header")
	require.Equal(t, "P5", string(lines[0]))

	_, err := fmt.Sscanf(string(lines[1]), "# Created by %s", &creator)
	require.NoError(t, err)
	_, err = fmt.Sscanf(string(lines[2]), "%d %d", &width, &height)
	require.NoError(t, err)
	_, err = fmt.Sscanf(string(lines[3]), "%d", &maxVal)
	require.NoError(t, err)

	return creator, width, height, maxVal, lines[4]
}

func sizeLine(width, height int) string {
	return fmt.Sprintf("%d %d\n", width, height)
}
