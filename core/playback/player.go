// ABOUTME: Audio player contract used by the playback engine
// ABOUTME: Handles are explicitly owned and released; release must be idempotent

package playback

import (
	"context"

	"yomu-news-api/core/domain"
)

// Synthesizer produces audio for one sentence
type Synthesizer interface {
	Synthesize(ctx context.Context, req domain.SpeechRequest) ([]byte, error)
}

// Player turns encoded audio into playable handles
type Player interface {
	Load(ctx context.Context, audio []byte) (Handle, error)
}

// Handle is one loaded piece of audio. A handle can be played again after it ends.
type Handle interface {
	// Play starts from the beginning. onEnded runs once on natural end, never
	// from inside Play and never after Stop or Release.
	Play(onEnded func()) error

	Pause() error
	Resume() error

	// Stop halts playback without reporting an end
	Stop() error

	// Release frees the audio. Calling it more than once is a no-op.
	Release() error
}
