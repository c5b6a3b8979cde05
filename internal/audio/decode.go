// Package audio converts synthesized speech payloads (base64-encoded linear
// PCM) into playable buffers and manages single-source playback.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"
)

// Defaults for synthesized narration: mono 16-bit PCM at 24 kHz.
const (
	DefaultSampleRate = 24000
	DefaultChannels   = 1
)

// Buffer holds decoded audio as normalized float samples in [-1.0, 1.0],
// one slice per channel.
type Buffer struct {
	SampleRate int
	Channels   [][]float64
}

// Frames returns the number of frames per channel.
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the playback duration of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(b.Frames()) / float64(b.SampleRate) * float64(time.Second))
}

// Decode converts a base64-encoded 16-bit little-endian PCM payload into a
// Buffer, de-interleaving when channels > 1.
func Decode(payload string, sampleRate, channels int) (*Buffer, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty audio payload")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64 audio: %w", err)
	}
	return DecodePCM(raw, sampleRate, channels)
}

// DecodePCM reinterprets raw bytes as interleaved int16 little-endian
// samples and normalizes them to [-1.0, 1.0].
func DecodePCM(raw []byte, sampleRate, channels int) (*Buffer, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if channels <= 0 {
		channels = DefaultChannels
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("PCM payload has odd length %d", len(raw))
	}

	sampleCount := len(raw) / 2
	frameCount := sampleCount / channels

	buf := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float64, channels),
	}
	for ch := 0; ch < channels; ch++ {
		data := make([]float64, frameCount)
		for i := 0; i < frameCount; i++ {
			s := int16(binary.LittleEndian.Uint16(raw[2*(i*channels+ch):]))
			data[i] = float64(s) / 32768.0
		}
		buf.Channels[ch] = data
	}
	return buf, nil
}
