package llm

import "context"

// SpeechRequest describes a text-to-speech synthesis request.
type SpeechRequest struct {
	// Text is the narration text to synthesize.
	Text string

	// Voice selects the provider's prebuilt voice. Empty uses the
	// provider's configured default.
	Voice string
}

// SpeechResponse holds synthesized audio.
type SpeechResponse struct {
	// AudioBase64 is the base64-encoded audio payload. For providers used
	// here this is raw 16-bit little-endian linear PCM, mono, 24 kHz.
	AudioBase64 string

	// MIMEType is the payload MIME type as reported by the provider
	// (e.g. "audio/L16;codec=pcm;rate=24000"). May be empty.
	MIMEType string

	// Model is the model that served the request.
	Model string
}

// SpeechSynthesizer is implemented by providers that can synthesize speech.
// The retry and logging middleware forward Synthesize to the wrapped
// provider, returning *ErrSpeechUnsupported when it has no speech support,
// so callers can type-assert the wrapped Provider directly.
type SpeechSynthesizer interface {
	// Synthesize converts text to audio. A provider that produced no audio
	// payload returns *ErrNoAudio rather than an empty response.
	Synthesize(ctx context.Context, req SpeechRequest) (*SpeechResponse, error)
}
