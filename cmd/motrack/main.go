// Package main provides the motrack command-line tracker.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/motrack/config"
	"github.com/opd-ai/motrack/effects"
	"github.com/opd-ai/motrack/filter"
	"github.com/opd-ai/motrack/frame"
	"github.com/opd-ai/motrack/report"
	"github.com/opd-ai/motrack/stream"
)

// CLIConfig holds the parsed command line.
type CLIConfig struct {
	configPath string

	// sources, exactly one
	input  string
	ffmpeg string
	listen string

	format string
	width  int
	height int
	scale  string

	// sinks
	output   string
	encode   string
	rtpOut   string
	report   string
	snapshot string

	maxFrames uint64

	// property overrides, applied only when set on the command line
	message   bool
	mark      string
	speed     int
	minSize   int
	maxSize   int
	color0    string
	color1    string
	color2    string
	mcolor    string
	threshold int
	objects   int

	logLevel  string
	logFormat string
	help      bool

	set map[string]bool
}

// parseCLIFlags parses args into a configuration.
func parseCLIFlags(args []string) (*CLIConfig, *flag.FlagSet, error) {
	cfg := &CLIConfig{set: make(map[string]bool)}
	fs := flag.NewFlagSet("motrack", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Configuration file
	fs.StringVar(&cfg.configPath, "config", "", "YAML properties file")

	// Sources
	fs.StringVar(&cfg.input, "input", "", "Raw frame file, - for stdin")
	fs.StringVar(&cfg.ffmpeg, "ffmpeg", "", "Media file decoded with ffmpeg")
	fs.StringVar(&cfg.listen, "listen", "", "UDP address receiving RTP frames")
	fs.StringVar(&cfg.format, "format", "I420", "Raw pixel format for -input, -output and -rtp-out")
	fs.IntVar(&cfg.width, "width", 0, "Raw frame width for -input")
	fs.IntVar(&cfg.height, "height", 0, "Raw frame height for -input")
	fs.StringVar(&cfg.scale, "scale", "", "Scale frames to WxH before tracking")

	// Sinks
	fs.StringVar(&cfg.output, "output", "", "Write marked raw frames to a file, - for stdout")
	fs.StringVar(&cfg.encode, "encode", "", "Encode marked frames to a media file with ffmpeg")
	fs.StringVar(&cfg.rtpOut, "rtp-out", "", "Send marked frames as RTP to a UDP address")
	fs.StringVar(&cfg.report, "report", "", "Write JSON reports to a file, - for stdout (default: log)")
	fs.StringVar(&cfg.snapshot, "snapshot", "", "Save the last marked frame as PNG")
	fs.Uint64Var(&cfg.maxFrames, "frames", 0, "Stop after this many frames (0: until end of input)")

	// Property overrides
	fs.BoolVar(&cfg.message, "message", true, "Emit per-object reports")
	fs.StringVar(&cfg.mark, "mark", "", "Mark method: "+markMethodList())
	fs.IntVar(&cfg.speed, "speed", 0, "Scan step in pixels (1-100)")
	fs.IntVar(&cfg.minSize, "min-size", 0, "Minimum object size (1-100)")
	fs.IntVar(&cfg.maxSize, "max-size", 0, "Maximum object size (0-500, 0: unlimited)")
	fs.StringVar(&cfg.color0, "color0", "", "Primary tracked color, 0xRRGGBB")
	fs.StringVar(&cfg.color1, "color1", "", "Secondary tracked color, 0xRRGGBB")
	fs.StringVar(&cfg.color2, "color2", "", "Secondary tracked color, 0xRRGGBB")
	fs.StringVar(&cfg.mcolor, "mcolor", "", "Mark color, 0xRRGGBB")
	fs.IntVar(&cfg.threshold, "threshold", 0, "Color distance threshold (0-600)")
	fs.IntVar(&cfg.objects, "objects", 0, "Maximum tracked objects (1-1024)")

	// Logging
	fs.StringVar(&cfg.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.logFormat, "log-format", "text", "Log format (text, json)")

	// Help
	fs.BoolVar(&cfg.help, "help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	fs.Visit(func(f *flag.Flag) {
		cfg.set[f.Name] = true
	})
	return cfg, fs, nil
}

func markMethodList() string {
	var names []string
	for _, m := range effects.MarkMethods() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}

// printUsage prints the usage information.
func printUsage(fs *flag.FlagSet) {
	fmt.Println("motrack - color object tracker")
	fmt.Println()
	fmt.Println("Tracks regions of a chosen color through a video stream, marks them")
	fmt.Println("on the frames and reports their positions.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s [options] (-input FILE | -ffmpeg FILE | -listen ADDR)\n", os.Args[0])
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  # Track red objects in a video and save the marked result\n")
	fmt.Printf("  %s -ffmpeg in.mp4 -encode out.mp4 -report tracks.jsonl\n", os.Args[0])
	fmt.Println()
	fmt.Printf("  # Track blue objects in raw frames piped from another process\n")
	fmt.Printf("  ffmpeg -i in.mp4 -f rawvideo -pix_fmt yuv420p - | %s -input - -width 640 -height 480 -color0 0x0000FF\n", os.Args[0])
	fmt.Println()
	fmt.Printf("  # Receive frames over RTP and forward the marked stream\n")
	fmt.Printf("  %s -listen :5004 -rtp-out 192.168.1.20:5006 -mark box\n", os.Args[0])
}

// validateCLIConfig validates the CLI configuration.
func validateCLIConfig(cfg *CLIConfig) error {
	sources := 0
	for _, s := range []string{cfg.input, cfg.ffmpeg, cfg.listen} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return fmt.Errorf("exactly one of -input, -ffmpeg or -listen is required")
	}

	if _, err := frame.ParseFormat(cfg.format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	if cfg.input != "" && (cfg.width <= 0 || cfg.height <= 0) {
		return fmt.Errorf("-input requires positive -width and -height")
	}

	if cfg.scale != "" {
		if _, _, err := parseSize(cfg.scale); err != nil {
			return err
		}
	}

	if cfg.output == "-" && cfg.report == "-" {
		return fmt.Errorf("-output and -report cannot both write to stdout")
	}

	if _, err := logrus.ParseLevel(cfg.logLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if cfg.logFormat != "text" && cfg.logFormat != "json" {
		return fmt.Errorf("invalid log format %q: must be text or json", cfg.logFormat)
	}

	return nil
}

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: bad width", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: bad height", s)
	}
	return w, h, nil
}

// parseColor accepts 0xRRGGBB, #RRGGBB or RRGGBB.
func parseColor(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}

// loadProperties reads the properties file, if any, and applies the
// overrides given on the command line.
func loadProperties(cfg *CLIConfig) (config.Properties, error) {
	props := config.DefaultProperties()
	if cfg.configPath != "" {
		var err error
		if props, err = config.Load(cfg.configPath); err != nil {
			return props, err
		}
	}

	if cfg.set["message"] {
		props.Message = cfg.message
	}
	if cfg.set["mark"] {
		m, err := effects.ParseMarkMethod(cfg.mark)
		if err != nil {
			return props, err
		}
		props.Mark = m
	}

	ints := map[string]struct {
		dst *int
		v   int
	}{
		"speed":     {&props.Speed, cfg.speed},
		"min-size":  {&props.MinSize, cfg.minSize},
		"max-size":  {&props.MaxSize, cfg.maxSize},
		"threshold": {&props.Threshold, cfg.threshold},
		"objects":   {&props.Objects, cfg.objects},
	}
	for name, o := range ints {
		if cfg.set[name] {
			*o.dst = o.v
		}
	}

	colors := []struct {
		name string
		src  string
		set  func(uint32)
	}{
		{"color0", cfg.color0, func(c uint32) { props.Color0 = c }},
		{"color1", cfg.color1, func(c uint32) { props.Color1 = &c }},
		{"color2", cfg.color2, func(c uint32) { props.Color2 = &c }},
		{"mcolor", cfg.mcolor, func(c uint32) { props.MColor = c }},
	}
	for _, c := range colors {
		if !cfg.set[c.name] {
			continue
		}
		v, err := parseColor(c.src)
		if err != nil {
			return props, fmt.Errorf("-%s: %w", c.name, err)
		}
		c.set(v)
	}

	return props, props.Validate()
}

// setupLogging applies the log level and format.
func setupLogging(cfg *CLIConfig) {
	level, err := logrus.ParseLevel(cfg.logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.logFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// setupSignalHandling cancels ctx on SIGINT or SIGTERM.
func setupSignalHandling(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logrus.WithFields(logrus.Fields{
			"function": "setupSignalHandling",
			"signal":   sig.String(),
		}).Info("Received signal, shutting down")
		cancel()
	}()
}

// openSource opens the configured frame source and reports the frame
// rate to encode with.
func openSource(ctx context.Context, cfg *CLIConfig) (stream.Source, float64, error) {
	format, err := frame.ParseFormat(cfg.format)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case cfg.ffmpeg != "":
		src, err := stream.NewFFmpegSource(ctx, cfg.ffmpeg)
		if err != nil {
			return nil, 0, err
		}
		return src, src.Info().FrameRate, nil
	case cfg.listen != "":
		src, err := stream.ListenUDP(cfg.listen)
		return src, stream.DefaultFrameRate, err
	default:
		var r io.Reader = os.Stdin
		if cfg.input != "-" {
			file, err := os.Open(cfg.input)
			if err != nil {
				return nil, 0, fmt.Errorf("failed to open input: %w", err)
			}
			r = file
		}
		src, err := stream.NewRawReader(r, format, cfg.width, cfg.height)
		return src, stream.DefaultFrameRate, err
	}
}

// openReporter returns the reporter selected by -report.
func openReporter(cfg *CLIConfig) (report.Reporter, error) {
	switch cfg.report {
	case "":
		return report.NewLogReporter(nil, logrus.InfoLevel), nil
	case "-":
		return report.NewJSONReporter(noClose{os.Stdout}), nil
	default:
		file, err := os.Create(cfg.report)
		if err != nil {
			return nil, fmt.Errorf("failed to create report file: %w", err)
		}
		return report.NewJSONReporter(file), nil
	}
}

// noClose keeps reporters and writers from closing stdout.
type noClose struct {
	io.Writer
}

// pipeline owns the sinks opened for one run.
type pipeline struct {
	cfg    *CLIConfig
	format frame.Format
	fps    float64
	sinks  []stream.Sink
	encode stream.Sink

	// output size, fixed by the first frame
	width, height int
}

func newPipeline(cfg *CLIConfig, fps float64) (*pipeline, error) {
	format, err := frame.ParseFormat(cfg.format)
	if err != nil {
		return nil, err
	}
	p := &pipeline{cfg: cfg, format: format, fps: fps}

	if cfg.output != "" {
		var w io.Writer = noClose{os.Stdout}
		if cfg.output != "-" {
			file, err := os.Create(cfg.output)
			if err != nil {
				return nil, fmt.Errorf("failed to create output: %w", err)
			}
			w = file
		}
		p.sinks = append(p.sinks, stream.NewRawWriter(w, format))
	}

	if cfg.rtpOut != "" {
		sink, err := stream.DialUDP(cfg.rtpOut, format, uuid.New().ID())
		if err != nil {
			p.Close()
			return nil, err
		}
		p.sinks = append(p.sinks, sink)
	}

	return p, nil
}

// write sends f to every sink. The first frame fixes the output size and
// starts the encoder; later frames of another size, as a network source
// may deliver, are scaled to it.
func (p *pipeline) write(ctx context.Context, f *frame.Frame) error {
	if p.width == 0 {
		p.width, p.height = f.Width(), f.Height()
	}

	if frame.IsScalingRequired(f, p.width, p.height) {
		logrus.WithFields(logrus.Fields{
			"function": "pipeline.write",
			"frame":    fmt.Sprintf("%dx%d", f.Width(), f.Height()),
			"output":   fmt.Sprintf("%dx%d", p.width, p.height),
		}).Warn("Frame size changed, scaling to output size")

		scaled, err := frame.Scale(f, p.width, p.height)
		if err != nil {
			return fmt.Errorf("frame size changed from %dx%d to %dx%d: %w",
				p.width, p.height, f.Width(), f.Height(), err)
		}
		f = scaled
	}

	if p.cfg.encode != "" && p.encode == nil {
		sink, err := stream.NewFFmpegSink(ctx, p.cfg.encode, p.width, p.height, p.fps)
		if err != nil {
			return err
		}
		p.encode = sink
		p.sinks = append(p.sinks, sink)
	}

	for _, s := range p.sinks {
		if err := s.WriteFrame(f); err != nil {
			return err
		}
	}
	return nil
}

func (p *pipeline) Close() error {
	var errs []error
	for _, s := range p.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

// saveSnapshot writes f as a PNG image.
func saveSnapshot(path string, f *frame.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	if err := png.Encode(file, f.YCbCr()); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return file.Close()
}

// run tracks every frame of the source until it ends or ctx is done.
func run(ctx context.Context, cfg *CLIConfig, props config.Properties) (filter.Stats, error) {
	src, fps, err := openSource(ctx, cfg)
	if err != nil {
		return filter.Stats{}, err
	}
	defer src.Close()

	reporter, err := openReporter(cfg)
	if err != nil {
		return filter.Stats{}, err
	}

	flt, err := filter.New(props, filter.WithReporter(reporter))
	if err != nil {
		reporter.Close()
		return filter.Stats{}, err
	}
	defer flt.Close()

	out, err := newPipeline(cfg, fps)
	if err != nil {
		return flt.Stats(), err
	}

	var scaleW, scaleH int
	if cfg.scale != "" {
		scaleW, scaleH, _ = parseSize(cfg.scale)
	}

	var last *frame.Frame
	runErr := func() error {
		for cfg.maxFrames == 0 || flt.Stats().Frames < cfg.maxFrames {
			f, err := src.ReadFrame(ctx)
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			if err != nil {
				return err
			}

			if scaleW > 0 && frame.IsScalingRequired(f, scaleW, scaleH) {
				if f, err = frame.Scale(f, scaleW, scaleH); err != nil {
					return err
				}
			}

			if _, err := flt.ProcessFrame(f); err != nil {
				return err
			}
			if err := out.write(ctx, f); err != nil {
				return err
			}
			last = f
		}
		return nil
	}()

	closeErr := out.Close()
	if runErr == nil {
		runErr = closeErr
	}

	if cfg.snapshot != "" && last != nil {
		if err := saveSnapshot(cfg.snapshot, last); err != nil && runErr == nil {
			runErr = err
		}
	}

	return flt.Stats(), runErr
}

// main is the entry point for motrack.
func main() {
	cliConfig, fs, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Use -help for usage information.\n")
		os.Exit(2)
	}

	if cliConfig.help {
		printUsage(fs)
		os.Exit(0)
	}

	if err := validateCLIConfig(cliConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Use -help for usage information.\n")
		os.Exit(1)
	}

	setupLogging(cliConfig)

	props, err := loadProperties(cliConfig)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "main",
			"context":  "configuration_validation",
			"error":    err.Error(),
		}).Error("Invalid properties")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	stats, err := run(ctx, cliConfig, props)

	logrus.WithFields(logrus.Fields{
		"function":  "main",
		"frames":    stats.Frames,
		"acquired":  stats.Acquired,
		"lost":      stats.Lost,
		"reports":   stats.Reports,
		"failed":    stats.Failed,
		"processed": stats.Processed.String(),
	}).Info("Tracking finished")

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "main",
			"error":    err.Error(),
		}).Error("Tracking failed")
		os.Exit(1)
	}
}
