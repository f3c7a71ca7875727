package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/motrack/region"
	"github.com/opd-ai/motrack/track"
)

func createTestSnapshot() track.Snapshot {
	return track.Snapshot{
		Frame: 7,
		Count: 2,
		Objects: []track.Object{
			{ID: 0, Rect: region.Rect{X1: 10, Y1: 20, X2: 50, Y2: 60}, Center: region.Point{X: 30, Y: 40}},
			{ID: 3, Rect: region.Rect{X1: 100, Y1: 110, X2: 140, Y2: 150}, Center: region.Point{X: 120, Y: 130}},
		},
	}
}

type failingReporter struct{ closeErr error }

func (failingReporter) Report(Message) error { return errors.New("report failed") }
func (f failingReporter) Close() error       { return f.closeErr }

type closingBuffer struct {
	bytes.Buffer
	closed bool
}

func (b *closingBuffer) Close() error {
	b.closed = true
	return nil
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()

	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestMessages(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	msgs := Messages("session-1", ts, createTestSnapshot())

	require.Len(t, msgs, 2)
	assert.Equal(t, Message{
		Name: Name, Session: "session-1", Frame: 7, Timestamp: ts,
		Count: 2, Object: 0,
		X1: 10, Y1: 20, X2: 50, Y2: 60, XC: 30, YC: 40,
	}, msgs[0])
	assert.Equal(t, 3, msgs[1].Object)
	assert.Equal(t, 120, msgs[1].XC)
	assert.Equal(t, 2, msgs[1].Count)

	assert.Empty(t, Messages("s", ts, track.Snapshot{Frame: 1}))
}

func TestJSONReporter(t *testing.T) {
	var buf closingBuffer
	r := NewJSONReporter(&buf)

	for _, msg := range Messages("s", time.Unix(0, 0).UTC(), createTestSnapshot()) {
		require.NoError(t, r.Report(msg))
	}
	require.NoError(t, r.Close())
	assert.True(t, buf.closed)

	scanner := bufio.NewScanner(&buf.Buffer)
	var lines []map[string]any
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}

	require.Len(t, lines, 2)
	assert.Equal(t, "motrack", lines[0]["name"])
	assert.Equal(t, float64(3), lines[1]["object"])
	assert.Equal(t, float64(150), lines[1]["y2"])
	for _, key := range []string{"session", "frame", "timestamp", "count", "x1", "y1", "x2", "xc", "yc"} {
		assert.Contains(t, lines[0], key)
	}

	assert.ErrorIs(t, r.Report(Message{}), ErrClosed)
	assert.NoError(t, r.Close(), "second close is a no-op")
}

func TestLogReporter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := NewLogReporter(logger, logrus.InfoLevel)

	msgs := Messages("s", time.Now(), createTestSnapshot())
	require.NoError(t, r.Report(msgs[1]))
	require.NoError(t, r.Close())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "Object tracked", entry.Message)
	assert.Equal(t, 3, entry.Data["object"])
	assert.Equal(t, 140, entry.Data["x2"])
}

func TestLogReporter_DefaultLogger(t *testing.T) {
	r := NewLogReporter(nil, logrus.DebugLevel)
	assert.Same(t, logrus.StandardLogger(), r.logger)
}

func TestMulti(t *testing.T) {
	var buf bytes.Buffer
	logger, hook := test.NewNullLogger()

	m := Multi{NewJSONReporter(&buf), NewLogReporter(logger, logrus.InfoLevel), Discard{}}
	require.NoError(t, m.Report(Message{Name: Name, Object: 1}))
	require.NoError(t, m.Close())

	assert.Contains(t, buf.String(), `"object":1`)
	assert.Len(t, hook.AllEntries(), 1)
}

func TestMulti_JoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	closeErr := errors.New("close failed")
	m := Multi{failingReporter{closeErr: closeErr}, NewJSONReporter(&buf)}

	err := m.Report(Message{Object: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report failed")
	assert.Contains(t, buf.String(), `"object":2`, "later reporters still run")

	assert.ErrorIs(t, m.Close(), closeErr)
}
