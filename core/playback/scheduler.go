// ABOUTME: Timer abstraction owned by the playback engine
// ABOUTME: Real implementation wraps the time package; tests drive a manual clock

package playback

import (
	"sync"
	"time"
)

// Timer is a cancellable scheduled callback
type Timer interface {
	// Stop prevents future calls. It reports whether the timer was still active.
	Stop() bool
}

// Scheduler runs callbacks later
type Scheduler interface {
	// AfterFunc calls f once after d
	AfterFunc(d time.Duration, f func()) Timer

	// Tick calls f every d until stopped
	Tick(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the wall clock
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (RealScheduler) Tick(d time.Duration, f func()) Timer {
	t := &ticker{ticker: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-t.ticker.C:
				f()
			case <-t.done:
				return
			}
		}
	}()
	return t
}

type ticker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
		stopped = true
	})
	return stopped
}
