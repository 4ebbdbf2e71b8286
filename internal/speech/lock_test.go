package speech

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateLockDir(t *testing.T) string {
	t.Helper()
	old := speechLockDir
	speechLockDir = filepath.Join(t.TempDir(), "speech.lock.d")
	t.Cleanup(func() { speechLockDir = old })
	return speechLockDir
}

func TestAcquireSpeechLockSerializes(t *testing.T) {
	isolateLockDir(t)
	ctx := context.Background()

	release, err := acquireSpeechLock(ctx)
	require.NoError(t, err)

	second := make(chan struct{})
	go func() {
		defer close(second)
		r, err := acquireSpeechLock(ctx)
		if err == nil {
			r()
		}
	}()

	select {
	case <-second:
		t.Fatal("second acquire succeeded while the lock was held")
	case <-time.After(200 * time.Millisecond):
	}

	release()

	select {
	case <-second:
	case <-time.After(3 * time.Second):
		t.Fatal("second acquire never succeeded after release")
	}
}

func TestAcquireSpeechLockReclaimsStaleDeadPID(t *testing.T) {
	lockDir := isolateLockDir(t)

	// A short-lived process that has already exited gives us a PID that
	// is known dead.
	probe := exec.Command("true")
	if runtime.GOOS == "windows" {
		probe = exec.Command("cmd", "/c", "exit 0")
	}
	require.NoError(t, probe.Run())
	deadPID := probe.Process.Pid

	require.NoError(t, os.Mkdir(lockDir, 0o755))
	content := lockContent{
		PID:       deadPID,
		StartTime: time.Now().Add(-time.Hour),
		Hostname:  "stale-host",
	}
	data, err := json.Marshal(content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(lockDir, "content.json"), data, 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	release, err := acquireSpeechLock(ctx)
	require.NoError(t, err, "stale lock with a dead PID should be reclaimed")
	release()

	_, statErr := os.Stat(lockDir)
	assert.True(t, os.IsNotExist(statErr), "lock dir should be gone after release")
}

func TestAcquireSpeechLockHeldByLivePID(t *testing.T) {
	lockDir := isolateLockDir(t)

	require.NoError(t, os.Mkdir(lockDir, 0o755))
	content := lockContent{
		PID:       os.Getpid(), // our own PID is definitely alive
		StartTime: time.Now().Add(-time.Hour),
		Hostname:  "live-host",
	}
	data, err := json.Marshal(content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(lockDir, "content.json"), data, 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	_, err = acquireSpeechLock(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded, "lock held by a live process must not be stolen by age")
}
