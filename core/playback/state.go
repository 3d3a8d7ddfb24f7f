// ABOUTME: Playback state, repeat modes and engine errors
// ABOUTME: State is an immutable snapshot handed to subscribers

package playback

import (
	"errors"
	"fmt"
	"strings"
)

// RepeatMode decides what happens when a sentence finishes
type RepeatMode string

const (
	RepeatNone RepeatMode = "none"
	RepeatAll  RepeatMode = "all"
	RepeatOne  RepeatMode = "one"
)

// Next returns the mode after m in the cycle none, all, one
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatNone:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatNone
	}
}

// ParseRepeatMode parses none, all or one. Empty means none.
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch m := RepeatMode(strings.ToLower(strings.TrimSpace(s))); m {
	case RepeatNone, RepeatAll, RepeatOne:
		return m, nil
	case "":
		return RepeatNone, nil
	default:
		return "", fmt.Errorf("unknown repeat mode %q", s)
	}
}

// Status is the engine's position in its state machine
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusPlaying Status = "playing"
	StatusPaused  Status = "paused"

	// StatusWaiting means a sentence ended and a continuation or countdown is pending
	StatusWaiting Status = "waiting"
)

var (
	ErrClosed      = errors.New("playback engine closed")
	ErrNoSentences = errors.New("no sentences loaded")
	ErrOutOfRange  = errors.New("sentence index out of range")
)

// State is a snapshot of the engine
type State struct {
	// Index is the current sentence, -1 when none
	Index int

	// Target is the sentence whose audio is loading, -1 when nothing loads
	Target int

	Status     Status
	IsPlaying  bool
	IsPaused   bool
	RepeatMode RepeatMode

	// Countdown is the number of seconds before a repeat or wrap, 0 when none runs
	Countdown int

	Voice     string
	Speed     float64
	Sentences int

	// CacheSize is the number of cached audio handles
	CacheSize int

	// Err is the last synthesis or playback failure, cleared by the next play
	Err error
}
