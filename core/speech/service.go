// ABOUTME: Speech service synthesizes sentence audio with a server-side cache
// ABOUTME: Cache entries are keyed by the exact text, voice and speed triple

package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"yomu-news-api/core/domain"
	coreerrors "yomu-news-api/core/errors"
	"yomu-news-api/core/interfaces"
)

const (
	// CacheKeyPrefix namespaces synthesized audio in the shared cache
	CacheKeyPrefix = "tts:"

	voicesKeyPrefix = "voices:"

	// MaxTextBytes is the largest text accepted for one synthesis request
	MaxTextBytes = 5000

	MinSpeed     = 0.25
	MaxSpeed     = 4.0
	DefaultSpeed = 1.0

	DefaultLanguage = "ja-JP"
	DefaultAudioTTL = 7 * 24 * time.Hour
	voicesTTL       = 24 * time.Hour
)

// Options configures the speech service
type Options struct {
	Synthesizer  interfaces.Synthesizer
	LanguageCode string
	DefaultVoice string
	AudioTTL     time.Duration

	// Backoff is the voice listing retry policy, DefaultBackoff when zero
	Backoff Backoff
}

// Service implements interfaces.SpeechService
type Service struct {
	deps         interfaces.Dependencies
	synth        interfaces.Synthesizer
	languageCode string
	defaultVoice string
	audioTTL     time.Duration
	backoff      Backoff
}

// NewService creates a new speech service
func NewService(deps interfaces.Dependencies, opts Options) *Service {
	s := &Service{
		deps:         deps,
		synth:        opts.Synthesizer,
		languageCode: opts.LanguageCode,
		defaultVoice: opts.DefaultVoice,
		audioTTL:     opts.AudioTTL,
		backoff:      opts.Backoff,
	}
	if s.languageCode == "" {
		s.languageCode = DefaultLanguage
	}
	if s.audioTTL <= 0 {
		s.audioTTL = DefaultAudioTTL
	}
	if s.backoff.Attempts == 0 {
		s.backoff = DefaultBackoff
	}
	return s
}

// Normalize applies defaults and validates the request
func (s *Service) Normalize(req domain.SpeechRequest) (domain.SpeechRequest, error) {
	req.Text = strings.TrimSpace(req.Text)
	req.Voice = strings.TrimSpace(req.Voice)
	if req.Voice == "" {
		req.Voice = s.defaultVoice
	}
	if req.Speed == 0 {
		req.Speed = DefaultSpeed
	}

	if req.Text == "" {
		return req, &coreerrors.ValidationError{Field: "text", Message: "is required"}
	}
	if len(req.Text) > MaxTextBytes {
		return req, &coreerrors.ValidationError{Field: "text", Message: "exceeds " + strconv.Itoa(MaxTextBytes) + " bytes"}
	}
	if req.Speed < MinSpeed || req.Speed > MaxSpeed {
		return req, &coreerrors.ValidationError{Field: "speed", Message: "must be between 0.25 and 4.0"}
	}
	return req, nil
}

// Synthesize returns encoded audio for the request, from cache when possible
func (s *Service) Synthesize(ctx context.Context, req domain.SpeechRequest) ([]byte, error) {
	req, err := s.Normalize(req)
	if err != nil {
		return nil, err
	}
	key := CacheKey(req)

	if s.deps.Cache != nil {
		if audio, err := s.deps.Cache.Get(ctx, key); err == nil && len(audio) > 0 {
			s.log().Debug("Audio cache hit", map[string]interface{}{"key": key, "bytes": len(audio)})
			return audio, nil
		}
	}

	if s.synth == nil {
		return nil, &coreerrors.SynthesisError{Voice: req.Voice, Message: "no synthesizer configured"}
	}
	audio, err := s.synth.Synthesize(ctx, req)
	if err != nil {
		if !coreerrors.IsSynthesis(err) {
			err = &coreerrors.SynthesisError{Voice: req.Voice, Message: "request failed", Err: err}
		}
		s.log().Error("Speech synthesis failed", map[string]interface{}{
			"voice": req.Voice,
			"speed": req.Speed,
			"error": err.Error(),
		})
		return nil, err
	}

	if s.deps.Cache != nil {
		if err := s.deps.Cache.Set(ctx, key, audio, s.audioTTL); err != nil {
			s.log().Warn("Failed to cache audio", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	return audio, nil
}

// ListVoices returns the voices for the configured language, retrying transient failures
func (s *Service) ListVoices(ctx context.Context) ([]domain.Voice, error) {
	key := voicesKeyPrefix + s.languageCode
	if s.deps.Cache != nil {
		if raw, err := s.deps.Cache.Get(ctx, key); err == nil {
			var voices []domain.Voice
			if json.Unmarshal(raw, &voices) == nil && len(voices) > 0 {
				return voices, nil
			}
		}
	}

	if s.synth == nil {
		return nil, &coreerrors.SynthesisError{Message: "no synthesizer configured"}
	}

	var voices []domain.Voice
	err := s.backoff.Retry(ctx, func(attempt int) error {
		var err error
		voices, err = s.synth.ListVoices(ctx, s.languageCode)
		if err != nil {
			s.log().Warn("Voice listing failed", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
			})
		}
		return err
	})
	if err != nil {
		return nil, &coreerrors.SynthesisError{Message: "voice listing failed", Err: err}
	}

	if s.deps.Cache != nil {
		if raw, err := json.Marshal(voices); err == nil {
			_ = s.deps.Cache.Set(ctx, key, raw, voicesTTL)
		}
	}
	return voices, nil
}

// CacheKey is the cache key for one synthesized utterance. Each field is
// length-prefixed so no two distinct triples hash the same input.
func CacheKey(req domain.SpeechRequest) string {
	h := sha256.New()
	for _, field := range []string{req.Text, req.Voice, strconv.FormatFloat(req.Speed, 'f', -1, 64)} {
		h.Write([]byte(strconv.Itoa(len(field))))
		h.Write([]byte{':'})
		h.Write([]byte(field))
	}
	return CacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (s *Service) log() interfaces.Logger {
	if s.deps.Logger == nil {
		return interfaces.NopLogger{}
	}
	return s.deps.Logger
}
