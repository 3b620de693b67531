package imageload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testPattern(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func writeFile(t *testing.T, name string, encode func(io.Writer) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	img := testPattern(37, 21)
	tests := []struct {
		name   string
		format string
		encode func(io.Writer) error
	}{
		{"img.png", "png", func(w io.Writer) error { return png.Encode(w, img) }},
		{"img.jpg", "jpeg", func(w io.Writer) error { return jpeg.Encode(w, img, nil) }},
		{"img.bmp", "bmp", func(w io.Writer) error { return bmp.Encode(w, img) }},
		{"img.tiff", "tiff", func(w io.Writer) error { return tiff.Encode(w, img, nil) }},
		// Extension lies; content wins.
		{"img.dat", "png", func(w io.Writer) error { return png.Encode(w, img) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.name, tt.encode)

			info, err := Config(path)
			if err != nil {
				t.Fatalf("Config: %v", err)
			}
			if info.Width != 37 || info.Height != 21 || info.Format != tt.format {
				t.Errorf("Config = %+v, want 37x21 %s", info, tt.format)
			}

			buf, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if w, h := buf.Bounds(); w != 37 || h != 21 {
				t.Errorf("Bounds = %dx%d, want 37x21", w, h)
			}
		})
	}
}

func TestLoadLosslessPixels(t *testing.T) {
	img := testPattern(16, 16)
	path := writeFile(t, "p.png", func(w io.Writer) error { return png.Encode(w, img) })

	buf, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			r, g, b, a := buf.GetRGBA(x, y)
			want := img.NRGBAAt(x, y)
			if r != want.R || g != want.G || b != want.B || a != want.A {
				t.Fatalf("pixel (%d,%d) = %d,%d,%d,%d, want %v", x, y, r, g, b, a, want)
			}
		}
	}
}

func TestLoadIdempotent(t *testing.T) {
	img := testPattern(64, 48)
	path := writeFile(t, "p.jpg", func(w io.Writer) error { return jpeg.Encode(w, img, nil) })

	first, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Data(), second.Data()) {
		t.Error("repeated loads produced different pixels")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.jpg")
	if err := os.WriteFile(garbage, []byte("definitely not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	var full bytes.Buffer
	if err := png.Encode(&full, testPattern(32, 32)); err != nil {
		t.Fatal(err)
	}
	truncated := filepath.Join(dir, "truncated.png")
	if err := os.WriteFile(truncated, full.Bytes()[:50], 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		path   string
		op     Op
		target error
	}{
		{"missing", filepath.Join(dir, "nope.png"), OpOpen, fs.ErrNotExist},
		{"unsupported", garbage, OpSniff, ErrUnsupportedFormat},
		{"truncated", truncated, OpDecode, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Load(tt.path)
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if buf != nil {
				t.Error("Load returned a buffer alongside an error")
			}

			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("error %T is not *LoadError", err)
			}
			if le.Op != tt.op {
				t.Errorf("Op = %q, want %q", le.Op, tt.op)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.target)
			}
			if !strings.Contains(err.Error(), tt.path) {
				t.Errorf("error %q does not name the path", err)
			}

			// Same input, same failure.
			if _, again := Load(tt.path); again == nil || again.Error() != err.Error() {
				t.Errorf("second Load error = %v, want %v", again, err)
			}
		})
	}
}

func TestMustLoadPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustLoad did not panic on a missing file")
		}
	}()
	MustLoad(filepath.Join(t.TempDir(), "missing.png"))
}
