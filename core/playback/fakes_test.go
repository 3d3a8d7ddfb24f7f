package playback

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"yomu-news-api/core/domain"
)

// manualScheduler fires timers only when the test advances its clock
type manualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at       time.Duration
	interval time.Duration
	f        func()
	stopped  bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) Tick(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{at: s.now + d, interval: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward, firing due callbacks in time order
func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	end := s.now + d
	s.mu.Unlock()
	for {
		s.mu.Lock()
		var due *manualTimer
		live := s.timers[:0]
		for _, t := range s.timers {
			if !t.stopped {
				live = append(live, t)
			}
		}
		s.timers = live
		sort.SliceStable(s.timers, func(i, j int) bool { return s.timers[i].at < s.timers[j].at })
		if len(s.timers) > 0 && s.timers[0].at <= end {
			due = s.timers[0]
			s.now = due.at
			if due.interval > 0 {
				due.at += due.interval
			} else {
				due.stopped = true
			}
		}
		if due == nil {
			s.now = end
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
		due.f()
	}
}

// Pending counts live timers
func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

type fakeSynth struct {
	mu       sync.Mutex
	requests []domain.SpeechRequest
	err      error
}

func (f *fakeSynth) Synthesize(ctx context.Context, req domain.SpeechRequest) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(req.Voice + "|" + req.Text), nil
}

func (f *fakeSynth) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakeHandle struct {
	audio    string
	onEnded  func()
	plays    int
	playing  bool
	paused   bool
	released int
}

func (h *fakeHandle) Play(onEnded func()) error {
	if h.released > 0 {
		return errors.New("handle released")
	}
	h.plays++
	h.playing = true
	h.paused = false
	h.onEnded = onEnded
	return nil
}

func (h *fakeHandle) Pause() error  { h.paused = true; return nil }
func (h *fakeHandle) Resume() error { h.paused = false; return nil }

func (h *fakeHandle) Stop() error {
	h.playing = false
	h.onEnded = nil
	return nil
}

func (h *fakeHandle) Release() error {
	h.released++
	return nil
}

// end simulates the audio reaching its natural end
func (h *fakeHandle) end() {
	cb := h.onEnded
	h.onEnded = nil
	h.playing = false
	if cb != nil {
		cb()
	}
}

type fakePlayer struct {
	handles []*fakeHandle
}

func (p *fakePlayer) Load(ctx context.Context, audio []byte) (Handle, error) {
	h := &fakeHandle{audio: string(audio)}
	p.handles = append(p.handles, h)
	return h, nil
}

func (p *fakePlayer) last() *fakeHandle {
	return p.handles[len(p.handles)-1]
}

// jobQueue runs spawned work immediately unless held
type jobQueue struct {
	hold    bool
	pending []func()
}

func (q *jobQueue) spawn(f func()) {
	if q.hold {
		q.pending = append(q.pending, f)
		return
	}
	f()
}

func (q *jobQueue) flush() {
	jobs := q.pending
	q.pending = nil
	for _, f := range jobs {
		f()
	}
}
