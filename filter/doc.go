// Package filter sequences tracking, marking and reporting for a stream
// of frames.
//
// A Filter is built from config.Properties. For every frame it updates the
// tracker, applies the configured mark effect to each active object and,
// when messages are enabled, hands one report per object to its Reporter:
//
//	flt, err := filter.New(props, filter.WithReporter(report.NewJSONReporter(os.Stdout)))
//	if err != nil {
//	    return err
//	}
//	defer flt.Close()
//
//	for {
//	    f, err := src.ReadFrame(ctx)
//	    ...
//	    snap, err := flt.ProcessFrame(f)
//	}
//
// # Thread Safety
//
// ProcessFrame, SetProperties and Reset must be called from one goroutine.
// Stats may be called concurrently.
package filter
