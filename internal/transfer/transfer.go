// Package transfer streams package payloads to the content service.
//
// A payload is handed to the HTTP transport in fixed-size segments through
// a Reader. The Reader keeps the running byte count and reports it after
// every completed segment, so progress always follows payload order.
package transfer

import (
	"context"
	"io"
	"sync/atomic"
)

// DefaultSegmentSize is the amount of payload handed to the transport
// between two progress reports.
const DefaultSegmentSize = 64 * 1024

// ProgressFunc receives the number of bytes handed off so far and the total
// payload size. It is called from the goroutine reading the body and must
// return quickly.
type ProgressFunc func(sent, total int64)

// Reader serves a payload segment by segment.
type Reader struct {
	ctx        context.Context
	data       []byte
	segment    int
	off        int
	sent       atomic.Int64
	onProgress ProgressFunc
}

// NewReader returns a Reader over data. A non-positive segment size selects
// DefaultSegmentSize. onProgress may be nil.
func NewReader(ctx context.Context, data []byte, segment int, onProgress ProgressFunc) *Reader {
	if segment <= 0 {
		segment = DefaultSegmentSize
	}
	return &Reader{
		ctx:        ctx,
		data:       data,
		segment:    segment,
		onProgress: onProgress,
	}
}

// Read copies at most the remainder of the current segment into p. Once a
// segment has been fully handed off the cumulative count is reported.
func (r *Reader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		return 0, io.EOF
	}
	start := r.off - r.off%r.segment
	if start == r.off {
		// stop at segment boundaries once the caller gave up
		if err := r.ctx.Err(); err != nil {
			return 0, err
		}
	}
	end := min(start+r.segment, len(r.data))

	n := copy(p, r.data[r.off:end])
	r.off += n
	if r.off == end {
		sent := r.sent.Add(int64(end - start))
		if r.onProgress != nil {
			r.onProgress(sent, r.Size())
		}
	}
	return n, nil
}

// Sent returns the number of bytes of fully handed-off segments.
func (r *Reader) Sent() int64 { return r.sent.Load() }

// Size returns the payload length.
func (r *Reader) Size() int64 { return int64(len(r.data)) }

// Segments returns the number of segments the payload is split into.
func (r *Reader) Segments() int {
	return (len(r.data) + r.segment - 1) / r.segment
}
