// Package report emits per-frame tracking results.
//
// After every frame the host turns the tracker's snapshot into one Message
// per active object, carrying the object's rectangle and center together
// with the active count, and hands the messages to a Reporter. Frames
// without objects produce no messages.
//
// Two reporters are provided: JSONReporter writes JSON lines to any
// io.Writer, LogReporter writes structured log entries through logrus.
// Multi fans one message out to several reporters.
package report
