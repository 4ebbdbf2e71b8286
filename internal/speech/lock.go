package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// speechLockDir is a var so tests can isolate the lock location.
var speechLockDir = defaultSpeechLockDir()

func defaultSpeechLockDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.TempDir(), "talkback-speech.lock.d")
	}
	return "/tmp/talkback-speech.lock.d"
}

// lockContent stores structured information in the lock file
type lockContent struct {
	PID       int       `json:"pid"`
	StartTime time.Time `json:"start_time"`
	Hostname  string    `json:"hostname"`
}

// Directory-based file locking for speech coordination (mkdir is atomic)
type speechMutexFile struct {
	lockDir     string
	contentFile string
}

// acquireSpeechLock serializes concurrent hook invocations so two hooks
// firing at once don't talk over each other.
func acquireSpeechLock(ctx context.Context) (release func(), err error) {
	lockDir := speechLockDir
	lock := &speechMutexFile{
		lockDir:     lockDir,
		contentFile: filepath.Join(lockDir, "content.json"),
	}

	log.Debug("Attempting to acquire speech lock", "lockDir", lockDir, "pid", os.Getpid())
	acquired := make(chan error, 1)
	go func() {
		acquired <- lock.acquireLock(ctx)
	}()

	select {
	case err := <-acquired:
		if err != nil {
			return nil, err
		}
		log.Debug("Speech lock acquired", "lockDir", lockDir, "pid", os.Getpid())
		return func() {
			lock.releaseLock()
			log.Debug("Speech lock released", "lockDir", lockDir, "pid", os.Getpid())
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// acquireLock attempts to get the global lock with retry using atomic directory creation
func (m *speechMutexFile) acquireLock(ctx context.Context) error {
	for {
		// Try atomic directory creation (mkdir is atomic across all filesystems)
		err := os.Mkdir(m.lockDir, 0755)
		if err == nil {
			// Got the lock - write structured lock content to file inside directory
			hostname, _ := os.Hostname()
			content := lockContent{
				PID:       os.Getpid(),
				StartTime: time.Now(),
				Hostname:  hostname,
			}
			if data, err := json.Marshal(content); err == nil {
				os.WriteFile(m.contentFile, data, 0644)
			}
			return nil
		}

		if !os.IsExist(err) {
			return fmt.Errorf("failed to create lock directory: %w", err)
		}

		// Lock exists - atomically cleanup if stale
		if m.atomicCleanupStale() {
			continue // Successfully cleaned up stale lock, retry immediately
		}

		// Wait and retry with jitter to prevent synchronized attempts
		jitter := time.Duration(25+rand.Intn(50)) * time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(jitter):
			continue
		}
	}
}

// releaseLock releases the directory lock with proper error handling
func (m *speechMutexFile) releaseLock() {
	// Remove the content file first
	os.Remove(m.contentFile)
	// Then remove the lock directory
	if err := os.Remove(m.lockDir); err != nil {
		// Log error but don't fail - stale detection will clean it up
		log.Debug("Failed to remove lock directory", "lockDir", m.lockDir, "error", err)
	}
}

// atomicCleanupStale uses atomic rename to safely clean up stale directory locks
func (m *speechMutexFile) atomicCleanupStale() bool {
	if !m.isStale() {
		return false
	}

	// Use atomic rename to claim the stale lock directory for cleanup
	staleDir := m.lockDir + ".stale." + strconv.Itoa(os.Getpid()) + "." + strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := os.Rename(m.lockDir, staleDir); err != nil {
		// Another process may have already cleaned it up or acquired the lock
		return false
	}

	log.Debug("Claimed and cleaning up stale speech lock", "original", m.lockDir, "temp", staleDir)
	os.RemoveAll(staleDir)
	return true
}

// isStale determines whether the existing lock directory should be considered stale.
// A lock is stale only if:
//   - The recorded PID is not running anymore, OR
//   - The lock metadata is missing/invalid AND the directory is older than a grace period.
//
// We deliberately do NOT time out active locks by age alone to avoid breaking
// long-running speech.
func (m *speechMutexFile) isStale() bool {
	// If we can read valid lock metadata, prefer process liveness over age.
	if data, err := os.ReadFile(m.contentFile); err == nil {
		var content lockContent
		if json.Unmarshal(data, &content) == nil {
			if isProcessAlive(content.PID) {
				// Process is alive: not stale regardless of age.
				return false
			}
			// Process is not running: stale.
			return true
		}
		// Corrupt JSON: fall through to age heuristic below.
	}

	// No readable/valid metadata: use directory age as a conservative heuristic.
	// Give plenty of time in case another process just created the dir but
	// hasn't written content yet.
	const grace = 5 * time.Minute
	if fi, err := os.Stat(m.lockDir); err == nil {
		return time.Since(fi.ModTime()) > grace
	}
	// If we cannot stat the directory, assume stale so callers can clean up.
	return true
}
