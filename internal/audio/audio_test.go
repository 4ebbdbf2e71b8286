package audio

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWAVHeader(t *testing.T) {
	pcm := make([]byte, 480) // 10ms of 16-bit mono at 24kHz
	var buf bytes.Buffer
	require.NoError(t, WriteWAV(&buf, pcm, 24000, 1, 16))

	out := buf.Bytes()
	require.Len(t, out, 44+len(pcm))

	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, uint32(36+len(pcm)), binary.LittleEndian.Uint32(out[4:8]))
	assert.Equal(t, "WAVE", string(out[8:12]))
	assert.Equal(t, "fmt ", string(out[12:16]))
	assert.Equal(t, uint32(16), binary.LittleEndian.Uint32(out[16:20]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(out[20:22]), "PCM format")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(out[22:24]), "mono")
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(out[24:28]))
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(out[28:32]), "byte rate")
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(out[32:34]), "block align")
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(out[34:36]))
	assert.Equal(t, "data", string(out[36:40]))
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(out[40:44]))
	assert.Equal(t, pcm, out[44:])
}

func TestSaveWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	require.NoError(t, SaveWAV(path, pcm, 24000))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 44+len(pcm))
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, pcm, data[44:])
}

func TestFilename(t *testing.T) {
	name := Filename("hello world", "mp3")
	assert.Regexp(t, regexp.MustCompile(`^tts_\d+_[0-9a-f]{8}\.mp3$`), name)

	other := Filename("different text", "mp3")
	assert.NotEqual(t, name, other, "hash differs per text")
}

func TestTempPath(t *testing.T) {
	path := TempPath("/mnt/c/temp", "hello", "wav")
	assert.Equal(t, "/mnt/c/temp", filepath.Dir(path))
	assert.Equal(t, ".wav", filepath.Ext(path))
}
