// Command blitrepro reproduces the draw_subimage scene: it loads one image,
// draws five sub-regions of it and the whole image onto a white canvas and
// shows the result in a window until it is closed or Escape is pressed.
//
// Usage:
//
//	blitrepro [flags]
//
// With -backend headless no window is opened; the canvas is written to -out
// instead. -check and -diff compare gg's output with a CPU reference that
// stretches each source rectangle onto its destination.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/blitrepro"
	"github.com/gogpu/blitrepro/backend/shiny"
	"github.com/gogpu/blitrepro/imageload"
	"github.com/gogpu/blitrepro/integration/gpuwindow"
	"github.com/gogpu/blitrepro/present"
	"github.com/gogpu/blitrepro/reference"
	"github.com/gogpu/gg"
)

const defaultImage = "./resources/1280px-Vliegenzwam_(Amanita_muscaria)._Locatie_De_Famberhorst._27-09-2020_(d.j.b.).jpg"

// Backends.
const (
	backendShiny    = "shiny"
	backendGoGPU    = "gogpu"
	backendHeadless = "headless"
)

// renderScene produces the output that verify compares with the reference.
var renderScene = (*blitrepro.Scene).RenderImage

// errCheckFailed is returned when -check is set and gg's output differs
// from the reference.
var errCheckFailed = errors.New("blit check failed")

type options struct {
	image     string
	size      int
	title     string
	backend   string
	interp    gg.InterpolationMode
	out       string
	diff      string
	tolerance uint8
	check     bool
	verbose   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	blitrepro.SetLogger(logger)
	gg.SetLogger(logger)

	if err := execute(opts); err != nil {
		logger.Error("blitrepro failed", "err", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("blitrepro", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		opts      options
		interp    string
		tolerance uint
	)
	fs.StringVar(&opts.image, "image", defaultImage, "image to draw")
	fs.IntVar(&opts.size, "size", blitrepro.ReproSize, "canvas width and height")
	fs.StringVar(&opts.title, "title", "draw_subimage repro", "window title")
	fs.StringVar(&opts.backend, "backend", backendShiny, "window backend: shiny, gogpu or headless")
	fs.StringVar(&interp, "interp", "bilinear", "interpolation: nearest, bilinear or bicubic")
	fs.StringVar(&opts.out, "out", "", "write the rendered canvas to this PNG file")
	fs.StringVar(&opts.diff, "diff", "", "write a comparison with the reference to this PNG file")
	fs.UintVar(&tolerance, "tolerance", reference.DefaultTolerance, "per-channel tolerance for the reference comparison")
	fs.BoolVar(&opts.check, "check", false, "exit with status 1 when a blit differs from the reference")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	switch opts.backend {
	case backendShiny, backendGoGPU, backendHeadless:
	default:
		return opts, fmt.Errorf("unknown backend %q", opts.backend)
	}
	switch interp {
	case "nearest":
		opts.interp = gg.InterpNearest
	case "bilinear":
		opts.interp = gg.InterpBilinear
	case "bicubic":
		opts.interp = gg.InterpBicubic
	default:
		return opts, fmt.Errorf("unknown interpolation %q", interp)
	}
	if opts.size <= 0 {
		return opts, fmt.Errorf("size must be positive, got %d", opts.size)
	}
	if tolerance > 255 {
		return opts, fmt.Errorf("tolerance must be at most 255, got %d", tolerance)
	}
	opts.tolerance = uint8(tolerance)
	return opts, nil
}

func execute(opts options) error {
	log := blitrepro.Logger()

	info, err := imageload.Config(opts.image)
	if err != nil {
		return err
	}
	log.Info("image header", "path", opts.image, "format", info.Format,
		"width", info.Width, "height", info.Height)

	img, err := imageload.Load(opts.image)
	if err != nil {
		return err
	}
	scene, err := blitrepro.Compose(img, opts.size, opts.size, blitrepro.ReproBlits,
		blitrepro.WithInterpolation(opts.interp))
	if err != nil {
		return err
	}
	for _, f := range scene.Check() {
		log.Warn("scene finding", "finding", f.String())
	}

	// Verification runs before any window opens; the gogpu backend may end
	// the process from inside its event loop.
	var verifyErr error
	if opts.backend == backendHeadless || opts.check || opts.diff != "" {
		verifyErr = verify(scene, opts)
		if verifyErr != nil && !errors.Is(verifyErr, errCheckFailed) {
			return verifyErr
		}
	}

	switch opts.backend {
	case backendShiny:
		cfg := shiny.DefaultConfig().WithTitle(opts.title).WithSize(opts.size, opts.size)
		err = shiny.Main(cfg, func(w *shiny.Window) error {
			return present.New(scene, w).Run(w)
		})
	case backendGoGPU:
		cfg := gpuwindow.DefaultConfig().
			WithTitle(opts.title).
			WithSize(opts.size, opts.size).
			WithExit(func(err error) {
				gg.CloseAccelerator()
				if err != nil {
					log.Error("blitrepro failed", "err", err)
					os.Exit(1)
				}
				if verifyErr != nil {
					log.Error("blitrepro failed", "err", verifyErr)
					os.Exit(1)
				}
				os.Exit(0)
			})
		err = gpuwindow.Run(cfg, scene)
	}
	if err != nil {
		return err
	}
	return verifyErr
}

// verify renders the scene headlessly, writes the requested files and
// compares the result with the reference compositor.
func verify(scene *blitrepro.Scene, opts options) error {
	log := blitrepro.Logger()

	actual, err := renderScene(scene)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if opts.out != "" {
		dc := gg.NewContextForImage(actual)
		err := dc.SavePNG(opts.out)
		_ = dc.Close()
		if err != nil {
			return fmt.Errorf("write %s: %w", opts.out, err)
		}
		log.Info("canvas written", "path", opts.out)
	}

	expected, err := reference.Compose(scene)
	if err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	ropts := reference.DefaultOptions()
	ropts.Tolerance = opts.tolerance
	report, err := reference.Compare(actual, expected, scene, ropts)
	if err != nil {
		return err
	}
	for _, b := range report.Blits {
		log.Info("blit compared", "result", b.String())
	}

	if opts.diff != "" {
		if err := report.SaveDiffPNG(opts.diff); err != nil {
			return fmt.Errorf("write %s: %w", opts.diff, err)
		}
		log.Info("diff written", "path", opts.diff)
	}

	if opts.check && !report.Pass() {
		return fmt.Errorf("%w: %d of %d blits differ", errCheckFailed, len(report.Failed()), len(report.Blits))
	}
	return nil
}
