package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// WriteWAV wraps raw little-endian PCM in a WAV container.
func WriteWAV(w io.Writer, pcmData []byte, sampleRate, channels, bitsPerSample int) error {
	if err := writeWAVHeader(w, len(pcmData), sampleRate, channels, bitsPerSample); err != nil {
		return fmt.Errorf("failed to write WAV header: %w", err)
	}
	if _, err := w.Write(pcmData); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	return nil
}

// SaveWAV writes PCM data as a WAV file at fpath.
// The PCM data is expected to be 16-bit mono at the specified sample rate.
func SaveWAV(fpath string, pcmData []byte, sampleRate int) error {
	f, err := os.Create(fpath)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}
	defer f.Close()

	const channels = 1
	const bitsPerSample = 16
	return WriteWAV(f, pcmData, sampleRate, channels, bitsPerSample)
}

// writeWAVHeader writes a standard WAV file header.
func writeWAVHeader(w io.Writer, dataSize, sampleRate, channels, bitsPerSample int) error {
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8
	chunkSize := 36 + dataSize

	// RIFF header
	if _, err := w.Write([]byte("RIFF")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(chunkSize)); err != nil {
		return err
	}
	if _, err := w.Write([]byte("WAVE")); err != nil {
		return err
	}

	// fmt subchunk
	if _, err := w.Write([]byte("fmt ")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(16)); err != nil { // Subchunk1Size for PCM
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(1)); err != nil { // AudioFormat: PCM
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(channels)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(sampleRate)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(byteRate)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(blockAlign)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(bitsPerSample)); err != nil {
		return err
	}

	// data subchunk
	if _, err := w.Write([]byte("data")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(dataSize)); err != nil {
		return err
	}

	return nil
}
