// Package audio frames raw PCM samples in a RIFF/WAVE container and back.
// Everything here is a pure byte transformation; no I/O, no state.
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const headerSize = 44

// Defaults matching the speech backend's PCM output.
const (
	DefaultChannels    = 1
	DefaultSampleWidth = 2 // bytes per sample
	DefaultSampleRate  = 24000
)

// Format describes the PCM layout declared by a WAV header.
type Format struct {
	Channels    int
	SampleWidth int // bytes per sample
	SampleRate  int
}

// DefaultFormat is the layout produced by the Gemini TTS backend.
func DefaultFormat() Format {
	return Format{
		Channels:    DefaultChannels,
		SampleWidth: DefaultSampleWidth,
		SampleRate:  DefaultSampleRate,
	}
}

// EncodeWAV wraps raw little-endian PCM samples in a 44-byte RIFF header.
// The sample bytes are copied through unmodified; all size fields reflect
// the exact input length.
func EncodeWAV(pcm []byte, format Format) []byte {
	byteRate := format.SampleRate * format.Channels * format.SampleWidth
	blockAlign := format.Channels * format.SampleWidth
	dataSize := uint32(len(pcm))

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+len(pcm)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36)+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16)) // fmt chunk size
	binary.Write(buf, binary.LittleEndian, uint16(1))  // PCM format tag
	binary.Write(buf, binary.LittleEndian, uint16(format.Channels))
	binary.Write(buf, binary.LittleEndian, uint32(format.SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(format.SampleWidth*8))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(pcm)

	return buf.Bytes()
}

// DecodeWAV extracts the PCM payload and declared format from a blob
// produced by EncodeWAV.
func DecodeWAV(data []byte) ([]byte, Format, error) {
	if len(data) < headerSize {
		return nil, Format{}, fmt.Errorf("wav data too short: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, Format{}, fmt.Errorf("not a RIFF/WAVE container")
	}

	format := Format{
		Channels:    int(binary.LittleEndian.Uint16(data[22:24])),
		SampleRate:  int(binary.LittleEndian.Uint32(data[24:28])),
		SampleWidth: int(binary.LittleEndian.Uint16(data[34:36])) / 8,
	}

	dataSize := binary.LittleEndian.Uint32(data[40:44])
	if int(dataSize) != len(data)-headerSize {
		return nil, Format{}, fmt.Errorf("declared data size %d does not match payload %d", dataSize, len(data)-headerSize)
	}

	return data[headerSize:], format, nil
}
