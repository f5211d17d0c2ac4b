package core

import "time"

// deadlineHandoff is the one-shot signal carrying the absolute stop instant
// from the sender task to the receiver task. It is written at most once and
// read at most once; both sides stay non-blocking so neither task can stall
// on the other.
type deadlineHandoff struct {
	ch chan time.Time
}

func newDeadlineHandoff() *deadlineHandoff {
	return &deadlineHandoff{ch: make(chan time.Time, 1)}
}

// signal publishes the stop instant. Fire-and-forget: if the receiver has
// already exited the value is simply never consumed.
func (h *deadlineHandoff) signal(deadline time.Time) {
	select {
	case h.ch <- deadline:
	default:
	}
}

// probe checks for a published stop instant without blocking.
func (h *deadlineHandoff) probe() (time.Time, bool) {
	select {
	case deadline := <-h.ch:
		return deadline, true
	default:
		return time.Time{}, false
	}
}
