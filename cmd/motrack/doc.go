// Package main provides the motrack command-line tracker.
//
// # Overview
//
// motrack reads video frames from a raw file, an ffmpeg-decoded media file
// or an RTP stream, tracks regions of up to three colors, marks them on
// the frames and reports their bounding boxes. Marked frames can be
// written as raw video, encoded with ffmpeg or forwarded over RTP.
//
// # Usage
//
// Track red objects in a video and save the marked result:
//
//	motrack -ffmpeg in.mp4 -encode out.mp4 -report tracks.jsonl
//
// Track blue objects in raw I420 frames from stdin:
//
//	ffmpeg -i in.mp4 -f rawvideo -pix_fmt yuv420p - | motrack -input - -width 640 -height 480 -color0 0x0000FF
//
// Receive frames over RTP and forward the marked stream:
//
//	motrack -listen :5004 -rtp-out 192.168.1.20:5006 -mark box
//
// # Configuration Options
//
// Sources (exactly one):
//   - -input: raw frame file, - for stdin (needs -width and -height)
//   - -ffmpeg: media file decoded to I420 with ffmpeg
//   - -listen: UDP address receiving RTP frames
//
// Frame geometry:
//   - -format: raw pixel format for -input, -output and -rtp-out (default: I420)
//   - -width, -height: raw frame size for -input
//   - -scale: scale frames to WxH before tracking
//
// Sinks:
//   - -output: raw marked frames, - for stdout
//   - -encode: media file encoded with ffmpeg
//   - -rtp-out: UDP address receiving RTP frames
//   - -report: JSON lines file of per-object reports, - for stdout (default: log)
//   - -snapshot: PNG of the last marked frame
//   - -frames: stop after this many frames
//
// Tracking properties, overriding -config:
//   - -message: emit per-object reports (default: true)
//   - -mark: nothing, crosshairs, box, both, cloak, blur, sizeblur, decimate, edge, outline, colorize, erase
//   - -speed: scan step (1-100, default: 20)
//   - -min-size, -max-size: accepted object size (defaults: 20, unlimited)
//   - -color0, -color1, -color2: tracked colors as 0xRRGGBB (default: 0xFF0000)
//   - -mcolor: mark color (default: 0x00FF00)
//   - -threshold: color distance threshold (0-600, default: 88)
//   - -objects: maximum tracked objects (1-1024, default: 1)
//
// Logging:
//   - -log-level: debug, info, warn or error (default: info)
//   - -log-format: text or json (default: text)
//
// # Properties File
//
// -config names a YAML file with the same properties:
//
//	mark: box
//	speed: 10
//	color0: 0x0000FF
//	color1: 0x000080
//	threshold: 60
//	objects: 4
//
// # Exit Codes
//
//   - 0: input ended or the run was interrupted
//   - 1: configuration or processing error
//   - 2: unparsable command line
//
// # Signal Handling
//
// SIGINT and SIGTERM stop reading, flush every sink and write the snapshot.
package main
