package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/opd-ai/motrack/track"
)

// Name identifies tracking messages.
const Name = "motrack"

// Message describes one tracked object in one frame.
type Message struct {
	Name      string    `json:"name"`
	Session   string    `json:"session"`
	Frame     uint64    `json:"frame"`
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
	Object    int       `json:"object"`
	X1        int       `json:"x1"`
	Y1        int       `json:"y1"`
	X2        int       `json:"x2"`
	Y2        int       `json:"y2"`
	XC        int       `json:"xc"`
	YC        int       `json:"yc"`
}

// NewSessionID returns a random identifier for one tracking session.
func NewSessionID() string {
	return uuid.New().String()
}

// Messages converts a snapshot into one message per active object, in ID
// order.
func Messages(session string, ts time.Time, snap track.Snapshot) []Message {
	msgs := make([]Message, 0, len(snap.Objects))
	for _, obj := range snap.Objects {
		msgs = append(msgs, Message{
			Name:      Name,
			Session:   session,
			Frame:     snap.Frame,
			Timestamp: ts,
			Count:     snap.Count,
			Object:    obj.ID,
			X1:        obj.Rect.X1,
			Y1:        obj.Rect.Y1,
			X2:        obj.Rect.X2,
			Y2:        obj.Rect.Y2,
			XC:        obj.Center.X,
			YC:        obj.Center.Y,
		})
	}
	return msgs
}
