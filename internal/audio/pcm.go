package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
)

// SampleRate is the fixed rate of the provider's speech output. The wire
// contract is base64-encoded 16-bit signed little-endian mono PCM at 24 kHz.
const SampleRate = 24000

// DecodePCM16 reconstructs the normalized floating-point waveform from the
// provider's base64 payload: sample / 32768.0 per the wire contract.
func DecodePCM16(b64 string) ([]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode base64 audio: %w", err)
	}
	if len(raw)%2 != 0 {
		return nil, errors.New("odd-length PCM16 payload")
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		samples[i] = float32(s) / 32768.0
	}
	return samples, nil
}

// Duration reports the playback length of a decoded waveform in seconds.
func Duration(samples []float32) float64 {
	return float64(len(samples)) / float64(SampleRate)
}

// EncodeWAV wraps raw PCM16 bytes in a RIFF/WAVE header so browsers can play
// the synthesized speech directly.
func EncodeWAV(pcm []byte) []byte {
	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	byteRate := SampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(numChannels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(SampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}
