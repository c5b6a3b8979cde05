package audio

import (
	"bytes"
	"encoding/binary"
	"math"
)

// EncodeWAV serializes a Buffer as a RIFF/WAVE file with 16-bit PCM frames.
// Used to hand decoded narration to an external playback command; this is
// container framing only, not codec work.
func EncodeWAV(buf *Buffer) []byte {
	channels := len(buf.Channels)
	frames := buf.Frames()
	dataLen := frames * channels * 2
	byteRate := buf.SampleRate * channels * 2

	var out bytes.Buffer
	out.Grow(44 + dataLen)

	out.WriteString("RIFF")
	writeU32(&out, uint32(36+dataLen))
	out.WriteString("WAVE")

	out.WriteString("fmt ")
	writeU32(&out, 16)
	writeU16(&out, 1) // PCM
	writeU16(&out, uint16(channels))
	writeU32(&out, uint32(buf.SampleRate))
	writeU32(&out, uint32(byteRate))
	writeU16(&out, uint16(channels*2)) // block align
	writeU16(&out, 16)                 // bits per sample

	out.WriteString("data")
	writeU32(&out, uint32(dataLen))
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			writeU16(&out, uint16(clampSample(buf.Channels[ch][i])))
		}
	}
	return out.Bytes()
}

func clampSample(f float64) int16 {
	v := math.Round(f * 32768.0)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

func writeU16(b *bytes.Buffer, v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.Write(tmp[:])
}

func writeU32(b *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.Write(tmp[:])
}
