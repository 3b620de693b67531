// Package imageload decodes the single input image of the reproduction into
// a gg.ImageBuf.
//
// PNG, JPEG and GIF are decoded by the standard library codecs; BMP, TIFF and
// WebP by golang.org/x/image. The result is always RGBA8.
package imageload

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/blitrepro"
	"github.com/gogpu/gg"
	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// Loader errors.
var (
	// ErrUnsupportedFormat is returned when no registered codec recognizes
	// the file.
	ErrUnsupportedFormat = errors.New("imageload: unsupported format")

	// ErrEmptyImage is returned when the decoded image has no pixels.
	ErrEmptyImage = errors.New("imageload: empty image")
)

// Op names the step a LoadError happened in.
type Op string

// Load steps.
const (
	OpOpen   Op = "open"
	OpSniff  Op = "sniff"
	OpDecode Op = "decode"
)

// LoadError records a failed load and the path that caused it.
type LoadError struct {
	Op   Op
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("imageload: %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Info describes an image file without its pixels.
type Info struct {
	Width, Height int
	// Format is the codec name, e.g. "jpeg" or "png".
	Format string
}

// Config reads only the header of the file at path.
func Config(path string) (Info, error) {
	f, err := open(path)
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = f.Close() }()

	return sniff(f, path)
}

// Load decodes the file at path.
// The format is detected from content, not from the file extension.
func Load(path string) (*gg.ImageBuf, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := sniff(f, path)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, &LoadError{Op: OpOpen, Path: path, Err: err}
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Op: OpDecode, Path: path, Err: err}
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, &LoadError{Op: OpDecode, Path: path, Err: ErrEmptyImage}
	}

	buf := gg.ImageBufFromImage(img)
	blitrepro.Logger().Info("imageload: decoded image",
		"path", path, "format", format, "width", b.Dx(), "height", b.Dy())
	if info.Width != b.Dx() || info.Height != b.Dy() {
		blitrepro.Logger().Warn("imageload: header size differs from decoded size",
			"path", path, "header", fmt.Sprintf("%dx%d", info.Width, info.Height),
			"decoded", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))
	}
	return buf, nil
}

// MustLoad is like Load but panics on error.
// Use only in tests and examples with known-good files.
func MustLoad(path string) *gg.ImageBuf {
	buf, err := Load(path)
	if err != nil {
		panic(err)
	}
	return buf
}

func open(path string) (*os.File, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, &LoadError{Op: OpOpen, Path: path, Err: err}
	}
	return f, nil
}

func sniff(r io.Reader, path string) (Info, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			err = ErrUnsupportedFormat
		}
		return Info{}, &LoadError{Op: OpSniff, Path: path, Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, &LoadError{Op: OpSniff, Path: path, Err: ErrEmptyImage}
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
