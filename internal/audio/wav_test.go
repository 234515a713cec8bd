package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAVHeaderLayout(t *testing.T) {
	pcm := make([]byte, 1000)
	for i := range pcm {
		pcm[i] = byte(i)
	}

	wav := EncodeWAV(pcm, DefaultFormat())

	if len(wav) != len(pcm)+44 {
		t.Fatalf("wav length = %d, want %d", len(wav), len(pcm)+44)
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if string(wav[12:16]) != "fmt " {
		t.Error("missing fmt chunk marker")
	}
	if string(wav[36:40]) != "data" {
		t.Error("missing data chunk marker")
	}

	if got := binary.LittleEndian.Uint32(wav[4:8]); got != uint32(36+len(pcm)) {
		t.Errorf("riff size = %d, want %d", got, 36+len(pcm))
	}
	if got := binary.LittleEndian.Uint16(wav[20:22]); got != 1 {
		t.Errorf("format tag = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(wav[22:24]); got != 1 {
		t.Errorf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 24000 {
		t.Errorf("sample rate = %d, want 24000", got)
	}
	if got := binary.LittleEndian.Uint32(wav[28:32]); got != 48000 {
		t.Errorf("byte rate = %d, want 48000", got)
	}
	if got := binary.LittleEndian.Uint16(wav[32:34]); got != 2 {
		t.Errorf("block align = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Errorf("data size = %d, want %d", got, len(pcm))
	}
	if !bytes.Equal(wav[44:], pcm) {
		t.Error("pcm payload altered by encoding")
	}
}

func TestEncodeWAVEmptyPayload(t *testing.T) {
	wav := EncodeWAV(nil, DefaultFormat())
	if len(wav) != 44 {
		t.Fatalf("wav length = %d, want 44", len(wav))
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != 0 {
		t.Errorf("data size = %d, want 0", got)
	}
}

func TestDecodeWAVRoundTrip(t *testing.T) {
	pcm := []byte{1, 2, 3, 4, 5, 6}
	format := Format{Channels: 2, SampleWidth: 2, SampleRate: 44100}

	decoded, gotFormat, err := DecodeWAV(EncodeWAV(pcm, format))
	if err != nil {
		t.Fatalf("DecodeWAV failed: %v", err)
	}
	if !bytes.Equal(decoded, pcm) {
		t.Errorf("decoded payload = %v, want %v", decoded, pcm)
	}
	if gotFormat != format {
		t.Errorf("decoded format = %+v, want %+v", gotFormat, format)
	}
}

func TestDecodeWAVRejectsBadInput(t *testing.T) {
	if _, _, err := DecodeWAV([]byte("short")); err == nil {
		t.Error("short input accepted")
	}

	junk := make([]byte, 44)
	copy(junk, "JUNK")
	if _, _, err := DecodeWAV(junk); err == nil {
		t.Error("non-RIFF input accepted")
	}

	truncated := EncodeWAV([]byte{1, 2, 3, 4}, DefaultFormat())
	truncated = truncated[:len(truncated)-2]
	if _, _, err := DecodeWAV(truncated); err == nil {
		t.Error("size mismatch accepted")
	}
}
