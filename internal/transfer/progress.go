package transfer

import "sync"

// Progress serializes reports to a ProgressFunc. Calls never overlap, a
// value lower than one already reported is dropped, and nothing is
// reported after Finish.
type Progress struct {
	mu       sync.Mutex
	fn       ProgressFunc
	total    int64
	last     int64
	finished bool
}

// NewProgress returns a Progress for a payload of total bytes. fn may be nil.
func NewProgress(total int64, fn ProgressFunc) *Progress {
	return &Progress{fn: fn, total: total}
}

// Start reports (0, total).
func (p *Progress) Start() { p.Report(0, p.total) }

// Report forwards (sent, total) unless it would move progress backwards.
func (p *Progress) Report(sent, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished || sent < p.last {
		return
	}
	p.last = sent
	if p.fn != nil {
		p.fn(sent, total)
	}
}

// Finish reports (total, total) and ignores any later report, e.g. a
// segment the transport was still writing when the response arrived.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.finished = true
	p.last = p.total
	if p.fn != nil {
		p.fn(p.total, p.total)
	}
}
