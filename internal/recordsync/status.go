package recordsync

import (
	"sync"
	"time"
)

// StatusKind tells the operator whether the last operation went well.
type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is a short message shown after an operation.
type Status struct {
	Kind StatusKind
	Text string
}

// statusBoard holds at most one Status and clears it after ttl.
// Setting a new message cancels the timer of the previous one, so an old
// timer can never clear a newer message.
type statusBoard struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Status
	timer   *time.Timer
	gen     uint64
}

func newStatusBoard(ttl time.Duration) *statusBoard {
	return &statusBoard{ttl: ttl}
}

func (b *statusBoard) set(kind StatusKind, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()
	b.gen++
	b.current = &Status{Kind: kind, Text: text}

	if b.ttl <= 0 {
		return
	}
	gen := b.gen
	b.timer = time.AfterFunc(b.ttl, func() { b.expire(gen) })
}

func (b *statusBoard) expire(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		return
	}
	b.current = nil
	b.timer = nil
}

func (b *statusBoard) get() (Status, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return Status{}, false
	}
	return *b.current, true
}

func (b *statusBoard) clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()
	b.gen++
	b.current = nil
}

func (b *statusBoard) stopLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
