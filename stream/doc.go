// Package stream moves video frames in and out of a motrack pipeline.
//
// Every frame source implements Source and every destination implements
// Sink, so the command-line host can wire any reader to any writer:
//
//	src, err := stream.NewFFmpegSource(ctx, "input.mp4")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	for {
//	    f, err := src.ReadFrame(ctx)
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    ...
//	}
//
// # Raw Frames
//
// RawReader and RawWriter carry tightly packed frames of one fixed format
// and size over any io.Reader or io.Writer, matching the output of
// "ffmpeg -f rawvideo".
//
// # FFmpeg
//
// NewFFmpegSource decodes any container ffmpeg understands into I420
// frames; NewFFmpegSink encodes I420 frames back into a file. Both run the
// ffmpeg binary through github.com/u2takey/ffmpeg-go and require it on
// the PATH.
//
// # RTP
//
// A Packetizer splits one encoded frame (see MarshalFrame) into RTP
// packets with payload type 96, all sharing the frame's RTP timestamp,
// the marker bit set on the last one. A Depacketizer reassembles them,
// buffering a bounded number of incomplete frames keyed by timestamp and
// discarding stale ones. UDPSource and UDPSink run this over UDP.
//
// Each payload starts with a one-byte descriptor whose S bit (0x10) flags
// the first packet of a frame:
//
//	+-+-+-+-+-+-+-+-+
//	|R|R|R|S|R|R|R|R|
//	+-+-+-+-+-+-+-+-+
package stream
