package graymap

import (
	"io"
	"os"
	"time"

	"github.com/esimov/graymap/utils"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// PipeName is the file name that indicates stdin/stdout is being used.
const PipeName = "-"

// Processor options
type Processor struct {
	// Creator is the tool identifier written into the output header.
	Creator string
	// Spinner, when set, shows a progress indicator during batch runs.
	Spinner *utils.Spinner
}

// Result holds the relevant information about a finished conversion.
type Result struct {
	Width   int
	Height  int
	Elapsed time.Duration // time spent on the grayscale conversion
}

// Process decodes a color pixmap from r, converts it to grayscale
// and encodes the resulting graymap into w.
func (p *Processor) Process(r io.Reader, w io.Writer) (*Result, error) {
	src, err := Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	gray, elapsed := p.Grayscale(src)
	if err := Encode(w, gray, p.Creator); err != nil {
		return nil, errors.Wrap(err, "encode")
	}
	return &Result{Width: gray.Width, Height: gray.Height, Elapsed: elapsed}, nil
}

// Convert converts the pixmap found at src into a graymap saved at dst.
// The source can be a local file, an http(s) URL or the pipe name; the
// destination can be a local file or the pipe name. A partially written
// destination file is removed on failure.
func (p *Processor) Convert(src, dst string) (*Result, error) {
	img, err := p.load(src)
	if err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	gray, elapsed := p.Grayscale(img)
	if err := p.store(dst, gray); err != nil {
		return nil, errors.Wrap(err, "encode")
	}
	return &Result{Width: gray.Width, Height: gray.Height, Elapsed: elapsed}, nil
}

func (p *Processor) load(src string) (*ColorImage, error) {
	switch {
	case src == PipeName:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, &Error{Kind: ErrIO, Path: "stdin", Msg: "`-` should be used with a pipe for stdin"}
		}
		img, err := Decode(os.Stdin)
		if err != nil {
			return nil, withPath(err, "stdin")
		}
		return img, nil
	case utils.IsValidUrl(src):
		tmp, err := utils.DownloadFile(src)
		if err != nil {
			return nil, &Error{Kind: ErrIO, Path: src, Err: err}
		}
		defer os.Remove(tmp)

		img, err := DecodeFile(tmp)
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				e.Path = src
			}
			return nil, err
		}
		return img, nil
	default:
		return DecodeFile(src)
	}
}

func (p *Processor) store(dst string, img *GrayImage) error {
	if dst == PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return &Error{Kind: ErrIO, Path: "stdout", Msg: "`-` should be used with a pipe for stdout"}
		}
		return withPath(Encode(os.Stdout, img, p.Creator), "stdout")
	}

	return EncodeFile(dst, img, p.Creator)
}
