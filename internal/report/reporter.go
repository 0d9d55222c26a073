package report

import "sync"

// Reporter serializes terminal output across concurrent pipeline
// invocations. The core itself processes one invocation at a time, but a
// caller driving several invocations concurrently needs its diagnostic
// output interleaved safely rather than garbled.
type Reporter struct {
	level LogLevel
	m     sync.Mutex
}

// NewReporter creates a Reporter at the given verbosity.
func NewReporter(level LogLevel) *Reporter {
	return &Reporter{level: level}
}

// Print renders a bag's diagnostics, holding the reporter's mutex for the
// duration so concurrent callers don't interleave output mid-diagnostic.
func (r *Reporter) Print(b *Bag) {
	r.m.Lock()
	defer r.m.Unlock()

	Print(b, r.level)
}
