package stream

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/opd-ai/motrack/frame"
)

// HeaderSize is the length of the header preceding encoded frame data.
const HeaderSize = 5

// MarshalFrame encodes f as a tightly packed frame of the given format
// behind a header of format (1 byte), width and height (2 bytes each,
// big endian).
func MarshalFrame(f *frame.Frame, format frame.Format) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrBadPayload)
	}
	if f.Width() > math.MaxUint16 || f.Height() > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %dx%d", ErrFrameTooLarge, f.Width(), f.Height())
	}

	data, err := frame.Pack(f, format)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, HeaderSize+len(data))
	buf[0] = byte(format)
	binary.BigEndian.PutUint16(buf[1:3], uint16(f.Width()))
	binary.BigEndian.PutUint16(buf[3:5], uint16(f.Height()))
	copy(buf[HeaderSize:], data)
	return buf, nil
}

// UnmarshalFrame decodes a frame produced by MarshalFrame. The returned
// frame borrows data.
func UnmarshalFrame(data []byte) (*frame.Frame, frame.Format, error) {
	if len(data) < HeaderSize {
		return nil, frame.FormatUnknown, fmt.Errorf("%w: %d bytes", ErrBadPayload, len(data))
	}

	format := frame.Format(data[0])
	width := int(binary.BigEndian.Uint16(data[1:3]))
	height := int(binary.BigEndian.Uint16(data[3:5]))

	size, err := frame.BufferSize(format, width, height)
	if err != nil {
		return nil, format, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if len(data)-HeaderSize != size {
		return nil, format, fmt.Errorf("%w: %v %dx%d needs %d bytes, has %d",
			ErrBadPayload, format, width, height, size, len(data)-HeaderSize)
	}

	f, err := frame.FromBuffer(format, width, height, data[HeaderSize:])
	if err != nil {
		return nil, format, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return f, format, nil
}
