package audio

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"time"
)

// Filename creates a unique name for synthesized audio.
// Format: tts_{unix_millis}_{8char_hash}.{ext}
func Filename(text, ext string) string {
	millis := time.Now().UnixMilli()
	hash := sha256.Sum256(fmt.Appendf(nil, "%d_%s", millis, text))
	return fmt.Sprintf("tts_%d_%x.%s", millis, hash[:4], ext)
}

// TempPath joins a unique audio filename onto dir.
func TempPath(dir, text, ext string) string {
	return filepath.Join(dir, Filename(text, ext))
}
