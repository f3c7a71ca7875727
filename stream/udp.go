package stream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/motrack/frame"
)

const (
	maxDatagramSize = 65535

	// pollInterval bounds how long ReadFrame blocks before rechecking its
	// context.
	pollInterval = 200 * time.Millisecond
)

// UDPSource receives RTP-packetized frames on a UDP socket.
type UDPSource struct {
	conn         *net.UDPConn
	depacketizer *Depacketizer
	buf          []byte
}

// ListenUDP binds a frame source to addr, for example ":5004".
func ListenUDP(addr string) (*UDPSource, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "ListenUDP",
			"addr":     addr,
			"error":    err.Error(),
		}).Error("Failed to listen")
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":   "ListenUDP",
		"local_addr": conn.LocalAddr().String(),
	}).Info("Listening for RTP frames")

	return &UDPSource{
		conn:         conn,
		depacketizer: NewDepacketizer(),
		buf:          make([]byte, maxDatagramSize),
	}, nil
}

// Addr returns the bound local address.
func (s *UDPSource) Addr() net.Addr {
	return s.conn.LocalAddr()
}

// Dropped returns the number of incomplete frames discarded so far.
func (s *UDPSource) Dropped() uint64 {
	return s.depacketizer.Dropped()
}

// ReadFrame blocks until a complete frame arrives or ctx is done. Packets
// and frames that fail to parse are logged and skipped.
func (s *UDPSource) ReadFrame(ctx context.Context) (*frame.Frame, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := s.conn.SetReadDeadline(time.Now().Add(pollInterval)); err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil, ErrClosed
			}
			return nil, fmt.Errorf("failed to set read deadline: %w", err)
		}
		n, from, err := s.conn.ReadFromUDP(s.buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				return nil, ErrClosed
			}
			return nil, fmt.Errorf("failed to read datagram: %w", err)
		}

		data, timestamp, err := s.depacketizer.Push(s.buf[:n])
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "UDPSource.ReadFrame",
				"from":     from.String(),
				"size":     n,
				"error":    err.Error(),
			}).Warn("Dropped RTP packet")
			continue
		}
		if data == nil {
			continue
		}

		f, format, err := UnmarshalFrame(data)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function":  "UDPSource.ReadFrame",
				"timestamp": timestamp,
				"error":     err.Error(),
			}).Warn("Dropped undecodable frame")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"function":  "UDPSource.ReadFrame",
			"timestamp": timestamp,
			"format":    format.String(),
			"width":     f.Width(),
			"height":    f.Height(),
		}).Debug("Received frame")
		return f, nil
	}
}

// Close closes the socket. A blocked ReadFrame returns ErrClosed.
func (s *UDPSource) Close() error {
	return s.conn.Close()
}

// UDPSink sends frames as RTP packets to one remote address.
type UDPSink struct {
	mu           sync.Mutex
	conn         *net.UDPConn
	packetizer   *Packetizer
	format       frame.Format
	timeProvider TimeProvider
	start        time.Time
	lastStamp    uint32
	frames       uint64
}

// DialUDP returns a sink that encodes frames as format and sends them to
// addr.
func DialUDP(addr string, format frame.Format, ssrc uint32) (*UDPSink, error) {
	return DialUDPWithTimeProvider(addr, format, ssrc, DefaultTimeProvider{})
}

// DialUDPWithTimeProvider is DialUDP with a custom clock for RTP
// timestamps.
func DialUDPWithTimeProvider(addr string, format frame.Format, ssrc uint32, tp TimeProvider) (*UDPSink, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", addr, err)
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "DialUDP",
		"remote_addr": udpAddr.String(),
		"format":      format.String(),
		"ssrc":        ssrc,
	}).Info("Sending RTP frames")

	return &UDPSink{
		conn:         conn,
		packetizer:   NewPacketizer(ssrc),
		format:       format,
		timeProvider: tp,
		start:        tp.Now(),
	}, nil
}

// WriteFrame encodes f, stamps it with the 90 kHz media clock and sends
// every packet.
func (s *UDPSink) WriteFrame(f *frame.Frame) error {
	data, err := MarshalFrame(f, s.format)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := s.nextTimestamp()
	packets, err := s.packetizer.Packetize(data, stamp)
	if err != nil {
		return err
	}

	for _, pkt := range packets {
		raw, err := pkt.Marshal()
		if err != nil {
			return fmt.Errorf("failed to marshal RTP packet: %w", err)
		}
		if _, err := s.conn.Write(raw); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "UDPSink.WriteFrame",
				"sequence": pkt.SequenceNumber,
				"error":    err.Error(),
			}).Error("Failed to send RTP packet")
			return fmt.Errorf("failed to send RTP packet: %w", err)
		}
	}

	s.frames++
	return nil
}

// nextTimestamp derives the RTP timestamp from elapsed time, forcing it to
// advance so that two frames never share one.
func (s *UDPSink) nextTimestamp() uint32 {
	elapsed := s.timeProvider.Since(s.start)
	stamp := uint32(int64(elapsed/time.Microsecond) * ClockRate / 1_000_000)
	if s.frames > 0 && !isTimestampLess(s.lastStamp, stamp) {
		stamp = s.lastStamp + 1
	}
	s.lastStamp = stamp
	return stamp
}

// Close closes the socket.
func (s *UDPSink) Close() error {
	return s.conn.Close()
}
