package graymap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultCreator is the tool identifier written into the header comment.
const DefaultCreator = "V"

// Encode writes img to w as a binary (P5) graymap. The header carries a
// "# Created by <creator>" comment line.
func Encode(w io.Writer, img *GrayImage, creator string) error {
	if creator == "" {
		creator = DefaultCreator
	}
	if strings.ContainsAny(creator, "\r\n") {
		return formatErrorf("creator %q must fit on a single line", creator)
	}
	if len(img.Pix) != img.Width*img.Height {
		return formatErrorf("pixel buffer holds %d bytes, expected %dx%d", len(img.Pix), img.Width, img.Height)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n# Created by %s\n%d %d\n%d\n",
		magicPGM, creator, img.Width, img.Height, maxValue,
	)
	if err := bw.Flush(); err != nil {
		return &Error{Kind: ErrIO, Msg: "could not write the header", Err: err}
	}

	n, err := bw.Write(img.Pix)
	if err == nil && n != len(img.Pix) {
		err = io.ErrShortWrite
	}
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		return &Error{
			Kind: ErrIO,
			Msg:  fmt.Sprintf("could not write %d pixel bytes", len(img.Pix)),
			Err:  err,
		}
	}
	return nil
}

// EncodeFile creates the file at path and writes img into it.
// The file is closed before returning, and removed if the write failed.
func EncodeFile(path string, img *GrayImage, creator string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return withPath(ioError(err), path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = withPath(ioError(cerr), path)
		}
		if err != nil {
			// remove the partially written image file
			os.Remove(path)
		}
	}()

	if err := Encode(f, img, creator); err != nil {
		return withPath(err, path)
	}
	return nil
}
