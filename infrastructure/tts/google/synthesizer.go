// ABOUTME: Google Cloud Text-to-Speech implementation of the Synthesizer interface
// ABOUTME: Produces MP3 audio at the requested speaking rate and lists voices per language

package google

import (
	"context"
	"fmt"
	"sort"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"yomu-news-api/core/domain"
)

// DefaultLanguage is used when a voice name carries no language prefix
const DefaultLanguage = "ja-JP"

// client is the subset of the Cloud TTS client used here
type client interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error)
	ListVoices(ctx context.Context, req *texttospeechpb.ListVoicesRequest) (*texttospeechpb.ListVoicesResponse, error)
	Close() error
}

type cloudClient struct {
	c *texttospeech.Client
}

func (c cloudClient) SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	return c.c.SynthesizeSpeech(ctx, req)
}

func (c cloudClient) ListVoices(ctx context.Context, req *texttospeechpb.ListVoicesRequest) (*texttospeechpb.ListVoicesResponse, error) {
	return c.c.ListVoices(ctx, req)
}

func (c cloudClient) Close() error { return c.c.Close() }

// Synthesizer implements interfaces.Synthesizer
type Synthesizer struct {
	client client
}

// NewSynthesizer creates a synthesizer using application default credentials
func NewSynthesizer(ctx context.Context) (*Synthesizer, error) {
	c, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create text-to-speech client: %w", err)
	}
	return &Synthesizer{client: cloudClient{c: c}}, nil
}

// Synthesize returns MP3 audio for the request
func (s *Synthesizer) Synthesize(ctx context.Context, req domain.SpeechRequest) ([]byte, error) {
	resp, err := s.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: LanguageOf(req.Voice),
			Name:         req.Voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  req.Speed,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.GetAudioContent()) == 0 {
		return nil, fmt.Errorf("empty audio content for voice %s", req.Voice)
	}
	return resp.GetAudioContent(), nil
}

// ListVoices returns the voices for languageCode sorted by name
func (s *Synthesizer) ListVoices(ctx context.Context, languageCode string) ([]domain.Voice, error) {
	resp, err := s.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{LanguageCode: languageCode})
	if err != nil {
		return nil, err
	}

	voices := make([]domain.Voice, 0, len(resp.GetVoices()))
	for _, v := range resp.GetVoices() {
		voices = append(voices, domain.Voice{
			Name:          v.GetName(),
			Gender:        strings.ToLower(v.GetSsmlGender().String()),
			LanguageCodes: v.GetLanguageCodes(),
			SampleRateHz:  v.GetNaturalSampleRateHertz(),
		})
	}
	sort.Slice(voices, func(i, j int) bool { return voices[i].Name < voices[j].Name })
	return voices, nil
}

// Close releases the underlying client
func (s *Synthesizer) Close() error {
	return s.client.Close()
}

// LanguageOf derives the language code from a voice name such as "ja-JP-Neural2-B"
func LanguageOf(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) < 3 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return DefaultLanguage
	}
	return parts[0] + "-" + parts[1]
}
