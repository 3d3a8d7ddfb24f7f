// ABOUTME: Request DTOs for the speech and prewarm endpoints
// ABOUTME: Validation beyond basic types is done by the speech service

package requests

// TTSRequest asks for one sentence of audio
type TTSRequest struct {
	Text  string  `json:"text" doc:"Sentence text to synthesize"`
	Voice string  `json:"voice,omitempty" doc:"Voice name; the server default when empty"`
	Speed float64 `json:"speed,omitempty" doc:"Speaking rate between 0.25 and 4.0; 1.0 when omitted"`
}

// PrewarmRequest asks the server to synthesize every sentence of an article ahead of playback
type PrewarmRequest struct {
	Source string  `json:"source" doc:"Article URL"`
	Voice  string  `json:"voice,omitempty"`
	Speed  float64 `json:"speed,omitempty"`
}
