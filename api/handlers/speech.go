// ABOUTME: Speech handler for the Huma API
// ABOUTME: Synthesizes sentence audio and lists the available voices

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"yomu-news-api/api/dto/requests"
	"yomu-news-api/api/dto/responses"
	"yomu-news-api/core/domain"
	"yomu-news-api/core/interfaces"
)

// SpeechHandler handles text-to-speech requests
type SpeechHandler struct {
	speech interfaces.SpeechService
}

// NewSpeechHandler creates a new speech handler
func NewSpeechHandler(speech interfaces.SpeechService) *SpeechHandler {
	return &SpeechHandler{speech: speech}
}

// RegisterRoutes registers all speech-related routes
func (h *SpeechHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "synthesize",
		Method:      http.MethodPost,
		Path:        "/tts",
		Summary:     "Synthesize one sentence",
		Description: "Returns MP3 audio for the text, voice and speed. Results are cached by that exact triple.",
		Tags:        []string{"Speech"},
	}, h.Synthesize)

	huma.Register(api, huma.Operation{
		OperationID: "listVoices",
		Method:      http.MethodGet,
		Path:        "/voices",
		Summary:     "List Japanese voices",
		Tags:        []string{"Speech"},
	}, h.ListVoices)
}

// SynthesizeInput defines the input for the Synthesize operation
type SynthesizeInput struct {
	Body requests.TTSRequest
}

// SynthesizeOutput is the raw audio response
type SynthesizeOutput struct {
	ContentType   string `header:"Content-Type"`
	ContentLength string `header:"Content-Length"`
	CacheControl  string `header:"Cache-Control"`
	Body          []byte
}

// Synthesize handles POST /tts
func (h *SpeechHandler) Synthesize(ctx context.Context, input *SynthesizeInput) (*SynthesizeOutput, error) {
	audio, err := h.speech.Synthesize(ctx, domain.SpeechRequest{
		Text:  input.Body.Text,
		Voice: input.Body.Voice,
		Speed: input.Body.Speed,
	})
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SynthesizeOutput{
		ContentType:   "audio/mpeg",
		ContentLength: strconv.Itoa(len(audio)),
		CacheControl:  "private, max-age=604800",
		Body:          audio,
	}, nil
}

// VoicesOutput defines the output for the ListVoices operation
type VoicesOutput struct {
	Body responses.VoicesResponse
}

// ListVoices handles GET /voices
func (h *SpeechHandler) ListVoices(ctx context.Context, _ *struct{}) (*VoicesOutput, error) {
	voices, err := h.speech.ListVoices(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	if voices == nil {
		voices = []domain.Voice{}
	}
	return &VoicesOutput{Body: responses.VoicesResponse{Voices: voices}}, nil
}
