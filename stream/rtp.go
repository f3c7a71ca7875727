package stream

import (
	"fmt"
	"sync"
	"time"

	"github.com/pion/rtp"
	"github.com/sirupsen/logrus"
)

const (
	// PayloadType is the dynamic RTP payload type carrying raw frames.
	PayloadType = 96

	// ClockRate is the RTP timestamp rate for video.
	ClockRate = 90000

	// DefaultMaxPacketSize keeps packets below a typical path MTU.
	DefaultMaxPacketSize = 1200

	// MaxFrameSize bounds one encoded frame (a 4096x2160 I420 frame fits).
	MaxFrameSize = 16 << 20

	// DefaultMaxFrames is how many incomplete frames a Depacketizer buffers.
	DefaultMaxFrames = 10

	// DefaultFrameTimeout is how long an incomplete frame may go without a
	// new packet before it is discarded.
	DefaultFrameTimeout = 5 * time.Second

	rtpHeaderSize  = 12
	descriptorSize = 1
	startBit       = 0x10
)

// Packetizer splits encoded frames into RTP packets.
type Packetizer struct {
	mu             sync.Mutex
	ssrc           uint32
	sequenceNumber uint16
	payloadType    uint8
	maxPacketSize  int
}

// NewPacketizer creates a packetizer for the given synchronization source.
func NewPacketizer(ssrc uint32) *Packetizer {
	p := &Packetizer{
		ssrc:           ssrc,
		sequenceNumber: 1,
		payloadType:    PayloadType,
		maxPacketSize:  DefaultMaxPacketSize,
	}

	logrus.WithFields(logrus.Fields{
		"function":        "NewPacketizer",
		"ssrc":            ssrc,
		"payload_type":    p.payloadType,
		"max_packet_size": p.maxPacketSize,
	}).Info("RTP packetizer created")

	return p
}

// SetMaxPacketSize sets the largest marshaled packet, 100 to 9000 bytes.
func (p *Packetizer) SetMaxPacketSize(size int) error {
	if size < 100 || size > 9000 {
		return fmt.Errorf("invalid packet size: %d (must be 100-9000)", size)
	}
	p.mu.Lock()
	p.maxPacketSize = size
	p.mu.Unlock()
	return nil
}

// Packetize splits data into packets sharing timestamp. The first packet
// carries the start bit and the last one the marker bit.
func (p *Packetizer) Packetize(data []byte, timestamp uint32) ([]*rtp.Packet, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrBadPayload)
	}
	if len(data) > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFrameTooLarge, len(data), MaxFrameSize)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	chunk := p.maxPacketSize - rtpHeaderSize - descriptorSize
	count := (len(data) + chunk - 1) / chunk
	packets := make([]*rtp.Packet, count)

	for i := 0; i < count; i++ {
		start := i * chunk
		end := min(start+chunk, len(data))

		payload := make([]byte, descriptorSize+end-start)
		if i == 0 {
			payload[0] = startBit
		}
		copy(payload[descriptorSize:], data[start:end])

		packets[i] = &rtp.Packet{
			Header: rtp.Header{
				Version:        2,
				Marker:         i == count-1,
				PayloadType:    p.payloadType,
				SequenceNumber: p.sequenceNumber,
				Timestamp:      timestamp,
				SSRC:           p.ssrc,
			},
			Payload: payload,
		}

		p.sequenceNumber++
	}

	logrus.WithFields(logrus.Fields{
		"function":   "Packetizer.Packetize",
		"timestamp":  timestamp,
		"frame_size": len(data),
		"packets":    count,
	}).Debug("Frame packetized")

	return packets, nil
}

type assembly struct {
	timestamp     uint32
	packets       map[uint16]*rtp.Packet
	size          int
	hasStart      bool
	startSequence uint16
	hasMarker     bool
	endSequence   uint16
	lastActivity  time.Time
}

// Depacketizer reassembles frames from RTP packets of one source.
type Depacketizer struct {
	mu           sync.Mutex
	assemblies   map[uint32]*assembly
	maxFrames    int
	timeout      time.Duration
	timeProvider TimeProvider
	hasSSRC      bool
	ssrc         uint32
	dropped      uint64
}

// NewDepacketizer creates a depacketizer using the system clock.
func NewDepacketizer() *Depacketizer {
	return NewDepacketizerWithTimeProvider(DefaultTimeProvider{})
}

// NewDepacketizerWithTimeProvider creates a depacketizer with a custom
// clock for deterministic testing.
func NewDepacketizerWithTimeProvider(tp TimeProvider) *Depacketizer {
	return &Depacketizer{
		assemblies:   make(map[uint32]*assembly),
		maxFrames:    DefaultMaxFrames,
		timeout:      DefaultFrameTimeout,
		timeProvider: tp,
	}
}

// Push unmarshals one datagram and feeds it to PushPacket.
func (d *Depacketizer) Push(datagram []byte) ([]byte, uint32, error) {
	pkt := &rtp.Packet{}
	if err := pkt.Unmarshal(datagram); err != nil {
		return nil, 0, fmt.Errorf("%w: failed to unmarshal RTP packet: %v", ErrBadPayload, err)
	}
	return d.PushPacket(pkt)
}

// PushPacket adds a packet to its frame. It returns the frame data and
// RTP timestamp once every packet from start to marker has arrived, and
// nil data otherwise. The first SSRC seen is the only one accepted.
func (d *Depacketizer) PushPacket(pkt *rtp.Packet) ([]byte, uint32, error) {
	if pkt.PayloadType != PayloadType {
		return nil, 0, fmt.Errorf("%w: payload type %d", ErrBadPayload, pkt.PayloadType)
	}
	if len(pkt.Payload) < descriptorSize {
		return nil, 0, fmt.Errorf("%w: empty payload", ErrBadPayload)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.hasSSRC {
		d.ssrc = pkt.SSRC
		d.hasSSRC = true
		logrus.WithFields(logrus.Fields{
			"function": "Depacketizer.PushPacket",
			"ssrc":     pkt.SSRC,
		}).Info("Accepted new SSRC for stream")
	} else if pkt.SSRC != d.ssrc {
		return nil, 0, fmt.Errorf("%w: unexpected SSRC: expected %d, got %d", ErrBadPayload, d.ssrc, pkt.SSRC)
	}

	a := d.getOrCreateAssembly(pkt.Timestamp)
	if _, dup := a.packets[pkt.SequenceNumber]; dup {
		return nil, 0, nil
	}
	a.packets[pkt.SequenceNumber] = pkt
	a.size += len(pkt.Payload) - descriptorSize
	a.lastActivity = d.timeProvider.Now()

	if pkt.Payload[0]&startBit != 0 {
		a.hasStart = true
		a.startSequence = pkt.SequenceNumber
	}
	if pkt.Marker {
		a.hasMarker = true
		a.endSequence = pkt.SequenceNumber
	}

	if a.size > MaxFrameSize {
		d.discard(a, "frame exceeds size limit")
		return nil, 0, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, a.size)
	}

	if !d.isComplete(a) {
		return nil, 0, nil
	}

	data := d.reassemble(a)
	delete(d.assemblies, a.timestamp)
	d.discardOlderThan(a.timestamp)
	return data, a.timestamp, nil
}

// BufferedFrames returns the number of incomplete frames held.
func (d *Depacketizer) BufferedFrames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.assemblies)
}

// Dropped returns the number of incomplete frames discarded so far.
func (d *Depacketizer) Dropped() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

func (d *Depacketizer) getOrCreateAssembly(timestamp uint32) *assembly {
	if a, ok := d.assemblies[timestamp]; ok {
		return a
	}

	if len(d.assemblies) >= d.maxFrames {
		d.cleanupStale()
		if len(d.assemblies) >= d.maxFrames {
			d.removeOldest()
		}
	}

	a := &assembly{
		timestamp:    timestamp,
		packets:      make(map[uint16]*rtp.Packet),
		lastActivity: d.timeProvider.Now(),
	}
	d.assemblies[timestamp] = a
	return a
}

func (d *Depacketizer) isComplete(a *assembly) bool {
	if !a.hasStart || !a.hasMarker {
		return false
	}
	if int(a.endSequence-a.startSequence)+1 > len(a.packets) {
		return false
	}
	for seq := a.startSequence; seq != a.endSequence; seq++ {
		if _, ok := a.packets[seq]; !ok {
			return false
		}
	}
	return true
}

// reassemble concatenates payloads from start to marker. Sequence
// arithmetic wraps at 16 bits.
func (d *Depacketizer) reassemble(a *assembly) []byte {
	data := make([]byte, 0, a.size)
	for seq := a.startSequence; ; seq++ {
		data = append(data, a.packets[seq].Payload[descriptorSize:]...)
		if seq == a.endSequence {
			break
		}
	}
	return data
}

func (d *Depacketizer) cleanupStale() {
	for _, a := range d.assemblies {
		if d.timeProvider.Since(a.lastActivity) > d.timeout {
			d.discard(a, "frame timed out")
		}
	}
}

func (d *Depacketizer) removeOldest() {
	var oldest *assembly
	for _, a := range d.assemblies {
		if oldest == nil || a.lastActivity.Before(oldest.lastActivity) {
			oldest = a
		}
	}
	if oldest != nil {
		d.discard(oldest, "frame buffer full")
	}
}

// discardOlderThan drops frames that precede a completed one; their
// missing packets will not arrive in time to matter.
func (d *Depacketizer) discardOlderThan(timestamp uint32) {
	for _, a := range d.assemblies {
		if isTimestampLess(a.timestamp, timestamp) {
			d.discard(a, "newer frame completed")
		}
	}
}

func (d *Depacketizer) discard(a *assembly, reason string) {
	delete(d.assemblies, a.timestamp)
	d.dropped++

	logrus.WithFields(logrus.Fields{
		"function":  "Depacketizer.discard",
		"timestamp": a.timestamp,
		"packets":   len(a.packets),
		"reason":    reason,
		"error":     ErrIncompleteFrame.Error(),
	}).Warn("Dropped RTP frame")
}

func isTimestampLess(a, b uint32) bool {
	return int32(a-b) < 0
}
