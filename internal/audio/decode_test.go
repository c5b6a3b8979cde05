package audio

import (
	"encoding/base64"
	"encoding/binary"
	"math"
	"testing"
)

// pcmPayload builds a base64 payload from int16 samples, interleaved.
func pcmPayload(samples []int16) string {
	raw := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(raw[2*i:], uint16(s))
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func TestDecode_MonoKnownSamples(t *testing.T) {
	payload := pcmPayload([]int16{0, 16384, -16384, 32767})

	buf, err := Decode(payload, 24000, 1)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(buf.Channels) != 1 {
		t.Fatalf("expected 1 channel, got %d", len(buf.Channels))
	}
	if buf.Frames() != 4 {
		t.Fatalf("expected 4 frames, got %d", buf.Frames())
	}
	if buf.SampleRate != 24000 {
		t.Errorf("expected sample rate 24000, got %d", buf.SampleRate)
	}

	want := []float64{0, 0.5, -0.5, 32767.0 / 32768.0}
	for i, w := range want {
		if got := buf.Channels[0][i]; math.Abs(got-w) > 1e-9 {
			t.Errorf("sample %d: expected %v, got %v", i, w, got)
		}
	}
}

func TestDecode_StereoDeinterleave(t *testing.T) {
	// L0 R0 L1 R1
	payload := pcmPayload([]int16{16384, -16384, 32767, 0})

	buf, err := Decode(payload, 24000, 2)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(buf.Channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(buf.Channels))
	}
	if buf.Frames() != 2 {
		t.Fatalf("expected 2 frames, got %d", buf.Frames())
	}
	if buf.Channels[0][0] != 0.5 || buf.Channels[1][0] != -0.5 {
		t.Errorf("frame 0: got L=%v R=%v", buf.Channels[0][0], buf.Channels[1][0])
	}
}

func TestDecode_EmptyPayload(t *testing.T) {
	if _, err := Decode("", 24000, 1); err == nil {
		t.Error("expected error for empty payload")
	}
}

func TestDecode_InvalidBase64(t *testing.T) {
	if _, err := Decode("not base64!!!", 24000, 1); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestDecodePCM_OddLength(t *testing.T) {
	if _, err := DecodePCM([]byte{1, 2, 3}, 24000, 1); err == nil {
		t.Error("expected error for odd byte count")
	}
}

func TestDecodePCM_Defaults(t *testing.T) {
	buf, err := DecodePCM([]byte{0, 0}, 0, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if buf.SampleRate != DefaultSampleRate {
		t.Errorf("expected default sample rate, got %d", buf.SampleRate)
	}
	if len(buf.Channels) != DefaultChannels {
		t.Errorf("expected default channel count, got %d", len(buf.Channels))
	}
}

func TestBuffer_Duration(t *testing.T) {
	buf, err := DecodePCM(make([]byte, 48000), 24000, 1) // 24000 samples = 1s
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d := buf.Duration().Seconds(); math.Abs(d-1.0) > 1e-9 {
		t.Errorf("expected 1s duration, got %v", d)
	}
}

func TestEncodeWAV_RoundTrip(t *testing.T) {
	orig := []int16{0, 16384, -16384, 32767}
	buf, err := Decode(pcmPayload(orig), 24000, 1)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	wav := EncodeWAV(buf)
	if len(wav) != 44+len(orig)*2 {
		t.Fatalf("expected %d bytes, got %d", 44+len(orig)*2, len(wav))
	}
	if string(wav[:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatal("missing RIFF/WAVE markers")
	}

	data := wav[44:]
	for i, want := range orig {
		got := int16(binary.LittleEndian.Uint16(data[2*i:]))
		if got != want {
			t.Errorf("sample %d: expected %d, got %d", i, want, got)
		}
	}
}
