// ABOUTME: Playback engine state machine for sentence-by-sentence reading
// ABOUTME: Drives synthesis, an audio handle cache, repeat modes and countdowns

package playback

import (
	"context"
	"math"
	"sync"
	"time"

	"yomu-news-api/core/domain"
	coreerrors "yomu-news-api/core/errors"
	"yomu-news-api/core/interfaces"
	"yomu-news-api/core/speech"
)

// Delays are the pauses between sentences
type Delays struct {
	// Advance is the pause before moving to the next sentence
	Advance time.Duration

	// RepeatOne is the countdown before replaying a sentence
	RepeatOne time.Duration

	// Wrap is the countdown before looping back to the first sentence
	Wrap time.Duration
}

// DefaultDelays are 800ms between sentences, a 2s repeat countdown and a 5s wrap countdown
var DefaultDelays = Delays{
	Advance:   800 * time.Millisecond,
	RepeatOne: 2 * time.Second,
	Wrap:      5 * time.Second,
}

const countdownStep = time.Second

// Options configures an Engine
type Options struct {
	Voice  string
	Speed  float64
	Repeat RepeatMode

	Scheduler Scheduler
	Delays    Delays
	Logger    interfaces.Logger

	// Spawn runs synthesis work, on a new goroutine when nil
	Spawn func(func())
}

type listener struct {
	id int
	fn func(State)
}

// Engine is the playback state machine. All methods are safe for concurrent use.
type Engine struct {
	synth  Synthesizer
	player Player
	sched  Scheduler
	delays Delays
	logger interfaces.Logger
	spawn  func(func())

	ctx    context.Context
	cancel context.CancelFunc

	mu sync.Mutex

	sentences []domain.Sentence
	index     int
	target    int
	resumeAt  int
	status    Status
	repeat    RepeatMode
	countdown int
	voice     string
	speed     float64
	err       error
	closed    bool

	// gen invalidates in-flight loads and ended callbacks from superseded contexts
	gen        uint64
	loadCancel context.CancelFunc

	// at most one continuation is pending; timerSeq invalidates callbacks already in flight
	timer    Timer
	timerSeq uint64

	current Handle
	cache   map[string]Handle

	listeners  []listener
	listenerID int

	// snapshots waiting for delivery; notifying is set while one caller drains them
	pending   []State
	notifying bool

	// jobs queued under the lock, spawned after it is released
	jobs []func()
}

// NewEngine creates an idle engine with no sentences
func NewEngine(synth Synthesizer, player Player, opts Options) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		synth:    synth,
		player:   player,
		sched:    opts.Scheduler,
		delays:   opts.Delays,
		logger:   opts.Logger,
		spawn:    opts.Spawn,
		ctx:      ctx,
		cancel:   cancel,
		index:    -1,
		target:   -1,
		resumeAt: -1,
		status:   StatusIdle,
		repeat:   opts.Repeat,
		voice:    opts.Voice,
		speed:    opts.Speed,
		cache:    make(map[string]Handle),
	}
	if e.sched == nil {
		e.sched = RealScheduler{}
	}
	if e.delays == (Delays{}) {
		e.delays = DefaultDelays
	}
	if e.logger == nil {
		e.logger = interfaces.NopLogger{}
	}
	if e.spawn == nil {
		e.spawn = func(f func()) { go f() }
	}
	if e.repeat == "" {
		e.repeat = RepeatNone
	}
	if e.speed == 0 {
		e.speed = speech.DefaultSpeed
	}
	return e
}

// State returns a snapshot of the engine
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every transition, in order.
// fn runs outside the engine lock and may call back into the engine.
func (e *Engine) Subscribe(fn func(State)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listenerID++
	id := e.listenerID
	e.listeners = append(e.listeners, listener{id: id, fn: fn})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// LoadSentences replaces the article. Playback stops and the audio cache is released.
func (e *Engine) LoadSentences(sentences []domain.Sentence) error {
	return e.do(func() error {
		e.resetLocked()
		e.sentences = append([]domain.Sentence(nil), sentences...)
		return nil
	})
}

// Play starts the sentence at index
func (e *Engine) Play(index int) error {
	return e.do(func() error { return e.playLocked(index) })
}

// Select jumps to a sentence, cancelling any pending continuation
func (e *Engine) Select(index int) error {
	return e.Play(index)
}

// Next moves to the following sentence. It is a no-op on the last one.
func (e *Engine) Next() error {
	return e.do(func() error {
		if len(e.sentences) == 0 {
			return ErrNoSentences
		}
		next := e.activeIndexLocked() + 1
		if next >= len(e.sentences) {
			return nil
		}
		return e.playLocked(next)
	})
}

// Previous moves to the preceding sentence, or restarts the first one
func (e *Engine) Previous() error {
	return e.do(func() error {
		if len(e.sentences) == 0 {
			return ErrNoSentences
		}
		prev := e.activeIndexLocked() - 1
		if prev < 0 {
			prev = 0
		}
		return e.playLocked(prev)
	})
}

// Pause holds playback. Pausing a load or a pending continuation cancels it;
// Resume starts that sentence afresh.
func (e *Engine) Pause() error {
	return e.do(e.pauseLocked)
}

// Resume continues after Pause
func (e *Engine) Resume() error {
	return e.do(e.resumeLocked)
}

// TogglePlay pauses when active, resumes when paused and starts from the current
// sentence (or the first) when idle
func (e *Engine) TogglePlay() error {
	return e.do(func() error {
		switch e.status {
		case StatusPlaying, StatusLoading, StatusWaiting:
			return e.pauseLocked()
		case StatusPaused:
			return e.resumeLocked()
		}
		if len(e.sentences) == 0 {
			return ErrNoSentences
		}
		start := e.index
		if start < 0 {
			start = 0
		}
		return e.playLocked(start)
	})
}

// Stop halts playback and clears the current sentence. Cached audio is kept.
func (e *Engine) Stop() error {
	return e.do(func() error {
		e.cancelPendingLocked()
		e.supersedeLocked()
		e.status = StatusIdle
		e.index = -1
		e.resumeAt = -1
		e.err = nil
		return nil
	})
}

// SetVoice switches voice. The audio cache is released and an active sentence
// is synthesized again with the new voice.
func (e *Engine) SetVoice(voice string) error {
	return e.do(func() error {
		if voice == e.voice {
			return nil
		}
		return e.changeAudioLocked(func() { e.voice = voice })
	})
}

// SetSpeed switches speaking rate, with the same invalidation as SetVoice
func (e *Engine) SetSpeed(speed float64) error {
	return e.do(func() error {
		if speed < speech.MinSpeed || speed > speech.MaxSpeed {
			return &coreerrors.ValidationError{Field: "speed", Message: "must be between 0.25 and 4.0"}
		}
		if speed == e.speed {
			return nil
		}
		return e.changeAudioLocked(func() { e.speed = speed })
	})
}

// SetRepeatMode changes the repeat mode. A pending continuation is re-evaluated
// under the new mode; switching to none cancels it.
func (e *Engine) SetRepeatMode(mode RepeatMode) error {
	return e.do(func() error {
		if e.closed {
			return ErrClosed
		}
		if mode == e.repeat {
			return nil
		}
		e.repeat = mode
		if e.status != StatusWaiting {
			return nil
		}
		e.cancelPendingLocked()
		if mode == RepeatNone {
			e.status = StatusIdle
			e.resumeAt = -1
			return nil
		}
		e.continueLocked()
		return nil
	})
}

// CycleRepeatMode advances none, all, one and back to none
func (e *Engine) CycleRepeatMode() (RepeatMode, error) {
	e.mu.Lock()
	next := e.repeat.Next()
	e.mu.Unlock()
	return next, e.SetRepeatMode(next)
}

// Close stops playback and releases every audio handle. The engine is unusable afterwards.
func (e *Engine) Close() error {
	err := e.do(func() error {
		e.resetLocked()
		e.sentences = nil
		e.closed = true
		return nil
	})
	e.cancel()
	return err
}

// do runs fn under the lock, then notifies subscribers and spawns queued jobs
func (e *Engine) do(fn func() error) error {
	e.mu.Lock()
	err := fn()
	jobs := e.jobs
	e.jobs = nil
	e.pending = append(e.pending, e.snapshotLocked())
	drain := !e.notifying
	e.notifying = true
	e.mu.Unlock()

	if drain {
		e.notify()
	}
	for _, job := range jobs {
		e.spawn(job)
	}
	return err
}

// notify delivers queued snapshots in order. Only one caller drains at a time;
// snapshots queued meanwhile, including by listeners, are picked up by the same loop.
func (e *Engine) notify() {
	for {
		e.mu.Lock()
		if len(e.pending) == 0 {
			e.notifying = false
			e.mu.Unlock()
			return
		}
		batch := e.pending
		e.pending = nil
		listeners := append([]listener(nil), e.listeners...)
		e.mu.Unlock()

		for _, st := range batch {
			for _, l := range listeners {
				l.fn(st)
			}
		}
	}
}

func (e *Engine) snapshotLocked() State {
	return State{
		Index:      e.index,
		Target:     e.target,
		Status:     e.status,
		IsPlaying:  e.status == StatusPlaying,
		IsPaused:   e.status == StatusPaused,
		RepeatMode: e.repeat,
		Countdown:  e.countdown,
		Voice:      e.voice,
		Speed:      e.speed,
		Sentences:  len(e.sentences),
		CacheSize:  len(e.cache),
		Err:        e.err,
	}
}

func (e *Engine) activeIndexLocked() int {
	if e.status == StatusLoading && e.target >= 0 {
		return e.target
	}
	return e.index
}

func (e *Engine) requestLocked(index int) domain.SpeechRequest {
	return domain.SpeechRequest{
		Text:  e.sentences[index].Text(),
		Voice: e.voice,
		Speed: e.speed,
	}
}

func (e *Engine) playLocked(index int) error {
	if e.closed {
		return ErrClosed
	}
	if len(e.sentences) == 0 {
		return ErrNoSentences
	}
	if index < 0 || index >= len(e.sentences) {
		return ErrOutOfRange
	}

	e.cancelPendingLocked()
	e.supersedeLocked()
	e.err = nil
	e.resumeAt = -1

	req := e.requestLocked(index)
	key := speech.CacheKey(req)
	if h, ok := e.cache[key]; ok {
		e.startLocked(index, h)
		return nil
	}

	e.status = StatusLoading
	e.target = index
	gen := e.gen
	ctx, cancel := context.WithCancel(e.ctx)
	e.loadCancel = cancel
	e.jobs = append(e.jobs, func() { e.load(ctx, gen, index, key, req) })
	return nil
}

// load synthesizes and loads audio, then applies the result unless it went stale
func (e *Engine) load(ctx context.Context, gen uint64, index int, key string, req domain.SpeechRequest) {
	audio, err := e.synth.Synthesize(ctx, req)
	var h Handle
	if err == nil {
		h, err = e.player.Load(ctx, audio)
	}

	_ = e.do(func() error {
		if gen != e.gen || e.closed {
			if h != nil {
				e.release(h)
			}
			return nil
		}
		if e.loadCancel != nil {
			e.loadCancel()
			e.loadCancel = nil
		}
		e.target = -1
		if err != nil {
			e.logger.Error("Sentence audio failed", map[string]interface{}{
				"index": index,
				"voice": req.Voice,
				"error": err.Error(),
			})
			e.status = StatusIdle
			e.err = err
			return nil
		}
		e.cache[key] = h
		e.startLocked(index, h)
		return nil
	})
}

func (e *Engine) startLocked(index int, h Handle) {
	e.current = h
	e.index = index
	e.target = -1
	e.status = StatusPlaying
	e.countdown = 0

	gen := e.gen
	onEnded := func() {
		_ = e.do(func() error {
			e.endedLocked(gen, h)
			return nil
		})
	}
	if err := h.Play(onEnded); err != nil {
		e.logger.Error("Audio playback failed", map[string]interface{}{
			"index": index,
			"error": err.Error(),
		})
		e.current = nil
		e.status = StatusIdle
		e.err = err
	}
}

func (e *Engine) endedLocked(gen uint64, h Handle) {
	if gen != e.gen || e.current != h || e.status != StatusPlaying {
		return
	}
	e.current = nil
	e.continueLocked()
}

// continueLocked applies the repeat mode after the current sentence ended
func (e *Engine) continueLocked() {
	last := e.index+1 >= len(e.sentences)
	switch {
	case e.repeat == RepeatOne:
		e.countdownLocked(e.delays.RepeatOne, e.index)
	case !last:
		e.afterLocked(e.delays.Advance, e.index+1)
	case e.repeat == RepeatAll:
		e.countdownLocked(e.delays.Wrap, 0)
	default:
		e.status = StatusIdle
		e.index = -1
		e.resumeAt = -1
	}
}

// afterLocked schedules the next sentence after d
func (e *Engine) afterLocked(d time.Duration, next int) {
	e.cancelPendingLocked()
	e.status = StatusWaiting
	e.resumeAt = next
	seq := e.timerSeq
	e.timer = e.sched.AfterFunc(d, func() {
		_ = e.do(func() error {
			if seq != e.timerSeq {
				return nil
			}
			e.timer = nil
			return e.playLocked(next)
		})
	})
}

// countdownLocked plays next after d, counting down whole seconds
func (e *Engine) countdownLocked(d time.Duration, next int) {
	e.cancelPendingLocked()
	e.status = StatusWaiting
	e.resumeAt = next
	e.countdown = int(math.Ceil(d.Seconds()))
	if e.countdown < 1 {
		e.countdown = 1
	}
	seq := e.timerSeq
	e.timer = e.sched.Tick(countdownStep, func() {
		_ = e.do(func() error {
			if seq != e.timerSeq {
				return nil
			}
			e.countdown--
			if e.countdown > 0 {
				return nil
			}
			return e.playLocked(next)
		})
	})
}

// cancelPendingLocked stops the scheduled continuation and any countdown
func (e *Engine) cancelPendingLocked() {
	e.timerSeq++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.countdown = 0
}

// supersedeLocked invalidates the in-flight load and stops the live handle
func (e *Engine) supersedeLocked() {
	e.gen++
	if e.loadCancel != nil {
		e.loadCancel()
		e.loadCancel = nil
	}
	if e.current != nil {
		if err := e.current.Stop(); err != nil {
			e.logger.Warn("Failed to stop audio", map[string]interface{}{"error": err.Error()})
		}
		e.current = nil
	}
	e.target = -1
}

// invalidateLocked releases every cached handle
func (e *Engine) invalidateLocked() {
	for key, h := range e.cache {
		e.release(h)
		delete(e.cache, key)
	}
}

func (e *Engine) resetLocked() {
	e.cancelPendingLocked()
	e.supersedeLocked()
	e.invalidateLocked()
	e.status = StatusIdle
	e.index = -1
	e.resumeAt = -1
	e.err = nil
}

func (e *Engine) changeAudioLocked(apply func()) error {
	if e.closed {
		return ErrClosed
	}
	active := -1
	switch e.status {
	case StatusPlaying, StatusLoading, StatusWaiting:
		active = e.activeIndexLocked()
	case StatusPaused:
		active = e.index
		if e.current == nil && e.resumeAt >= 0 {
			active = e.resumeAt
		}
	}

	e.cancelPendingLocked()
	e.supersedeLocked()
	e.invalidateLocked()
	apply()

	if active < 0 {
		e.status = StatusIdle
		return nil
	}
	return e.playLocked(active)
}

func (e *Engine) pauseLocked() error {
	switch e.status {
	case StatusPlaying:
		if err := e.current.Pause(); err != nil {
			return err
		}
		e.status = StatusPaused
	case StatusLoading:
		target := e.target
		e.supersedeLocked()
		e.resumeAt = target
		e.status = StatusPaused
	case StatusWaiting:
		e.cancelPendingLocked()
		e.status = StatusPaused
	}
	return nil
}

func (e *Engine) resumeLocked() error {
	if e.status != StatusPaused {
		return nil
	}
	if e.current != nil {
		if err := e.current.Resume(); err != nil {
			return err
		}
		e.status = StatusPlaying
		return nil
	}
	if e.resumeAt >= 0 {
		return e.playLocked(e.resumeAt)
	}
	e.status = StatusIdle
	return nil
}

func (e *Engine) release(h Handle) {
	if err := h.Release(); err != nil {
		e.logger.Warn("Failed to release audio", map[string]interface{}{"error": err.Error()})
	}
}
