package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/opd-ai/motrack/frame"
)

// DefaultFrameRate is used when a probe reports no usable frame rate.
const DefaultFrameRate = 25.0

// VideoInfo describes the first video stream of a container.
type VideoInfo struct {
	Width     int
	Height    int
	FrameRate float64
}

type videoProbe struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		RFrameRate   string `json:"r_frame_rate"`
	} `json:"streams"`
}

// Probe runs ffprobe on path and returns its first video stream.
func Probe(path string) (VideoInfo, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("ffprobe error: %w", err)
	}
	return parseProbe(out)
}

func parseProbe(out string) (VideoInfo, error) {
	var probe videoProbe
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return VideoInfo{}, fmt.Errorf("json unmarshal error: %w", err)
	}

	for _, s := range probe.Streams {
		if s.CodecType != "video" {
			continue
		}
		if s.Width <= 0 || s.Height <= 0 {
			return VideoInfo{}, fmt.Errorf("%w: %dx%d", frame.ErrInvalidDimensions, s.Width, s.Height)
		}
		rate, ok := parseRate(s.AvgFrameRate)
		if !ok {
			rate, ok = parseRate(s.RFrameRate)
		}
		if !ok {
			rate = DefaultFrameRate
		}
		return VideoInfo{Width: s.Width, Height: s.Height, FrameRate: rate}, nil
	}

	return VideoInfo{}, errors.New("no video stream found")
}

// parseRate parses ffprobe's "num/den" rationals.
func parseRate(s string) (float64, bool) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return 0, false
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 || n <= 0 {
		return 0, false
	}
	return n / d, true
}

// ffmpegLog forwards ffmpeg's stderr to logrus at debug level.
func ffmpegLog() *io.PipeWriter {
	return logrus.StandardLogger().WriterLevel(logrus.DebugLevel)
}

// FFmpegSource decodes a media file into I420 frames.
type FFmpegSource struct {
	*RawReader
	info   VideoInfo
	pr     *io.PipeReader
	cancel context.CancelFunc
	done   chan error
	once   sync.Once
}

// NewFFmpegSource probes path and starts decoding it. Cancelling ctx kills
// the decoder.
func NewFFmpegSource(ctx context.Context, path string) (*FFmpegSource, error) {
	info, err := Probe(path)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewFFmpegSource",
			"path":     path,
			"error":    err.Error(),
		}).Error("Failed to probe input")
		return nil, err
	}

	pr, pw := io.Pipe()
	reader, err := NewRawReader(pr, frame.FormatI420, info.Width, info.Height)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := ffmpeg.Input(path).
		Output("pipe:1", ffmpeg.KwArgs{
			"format":  "rawvideo",
			"pix_fmt": "yuv420p",
		})
	cmd.Context = ctx
	logw := ffmpegLog()
	cmd = cmd.WithOutput(pw).WithErrorOutput(logw)

	src := &FFmpegSource{
		RawReader: reader,
		info:      info,
		pr:        pr,
		cancel:    cancel,
		done:      make(chan error, 1),
	}

	go func() {
		err := cmd.Run()
		logw.Close()
		pw.CloseWithError(err)
		src.done <- err
	}()

	logrus.WithFields(logrus.Fields{
		"function":   "NewFFmpegSource",
		"path":       path,
		"width":      info.Width,
		"height":     info.Height,
		"frame_rate": info.FrameRate,
	}).Info("Decoding input with ffmpeg")

	return src, nil
}

// Info returns the probed stream description.
func (s *FFmpegSource) Info() VideoInfo {
	return s.info
}

// Close stops the decoder and waits for it to exit.
func (s *FFmpegSource) Close() error {
	s.once.Do(func() {
		s.cancel()
		s.pr.Close()
		err := <-s.done
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.ErrClosedPipe) {
			logrus.WithFields(logrus.Fields{
				"function": "FFmpegSource.Close",
				"error":    err.Error(),
			}).Debug("Decoder exited")
		}
	})
	return nil
}

// FFmpegSink encodes I420 frames into a media file.
type FFmpegSink struct {
	writer *RawWriter
	width  int
	height int
	pw     *io.PipeWriter
	done   chan error
	once   sync.Once
	err    error
}

// NewFFmpegSink starts an encoder writing width x height frames at
// frameRate to path, replacing any existing file. The container and codec
// follow the file extension.
func NewFFmpegSink(ctx context.Context, path string, width, height int, frameRate float64) (*FFmpegSink, error) {
	if _, err := frame.BufferSize(frame.FormatI420, width, height); err != nil {
		return nil, err
	}
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}

	pr, pw := io.Pipe()
	cmd := ffmpeg.Input("pipe:0", ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "yuv420p",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": strconv.FormatFloat(frameRate, 'f', -1, 64),
	}).
		Output(path, ffmpeg.KwArgs{"pix_fmt": "yuv420p"}).
		OverWriteOutput()
	cmd.Context = ctx
	logw := ffmpegLog()
	cmd = cmd.WithInput(pr).WithErrorOutput(logw)

	sink := &FFmpegSink{
		writer: NewRawWriter(pw, frame.FormatI420),
		width:  width,
		height: height,
		pw:     pw,
		done:   make(chan error, 1),
	}

	go func() {
		err := cmd.Run()
		logw.Close()
		pr.CloseWithError(err)
		sink.done <- err
	}()

	logrus.WithFields(logrus.Fields{
		"function":   "NewFFmpegSink",
		"path":       path,
		"width":      width,
		"height":     height,
		"frame_rate": frameRate,
	}).Info("Encoding output with ffmpeg")

	return sink, nil
}

// WriteFrame sends f to the encoder, scaling it first when its size
// differs from the sink's.
func (s *FFmpegSink) WriteFrame(f *frame.Frame) error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrBadPayload)
	}
	if frame.IsScalingRequired(f, s.width, s.height) {
		scaled, err := frame.Scale(f, s.width, s.height)
		if err != nil {
			return err
		}
		f = scaled
	}
	if err := s.writer.WriteFrame(f); err != nil {
		return fmt.Errorf("encoder: %w", err)
	}
	return nil
}

// Close flushes the encoder and waits for the file to be finalized.
func (s *FFmpegSink) Close() error {
	s.once.Do(func() {
		s.writer.Close()
		if err := <-s.done; err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "FFmpegSink.Close",
				"error":    err.Error(),
			}).Error("Encoder failed")
			s.err = fmt.Errorf("ffmpeg encode failed: %w", err)
		}
	})
	return s.err
}
