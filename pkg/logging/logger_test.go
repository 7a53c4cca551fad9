package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir points the package at a temporary log directory and resets
// the session state.
func setupTestDir(t *testing.T) {
	t.Helper()

	origLogDir := logDir
	origInitErr := initErr
	origSessionID := sessionID

	logDir = t.TempDir()
	initErr = nil
	initOnce = sync.Once{}
	sessionID = ""
	sessionIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDir = origLogDir
		initErr = origInitErr
		initOnce = sync.Once{}
		sessionID = origSessionID
		sessionIDOnce = sync.Once{}
	})
}

func TestNewLogger(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("overlay")
	require.NoError(t, err)
	defer logger.Close()

	assert.Equal(t, "overlay", logger.component)
	assert.NotEmpty(t, logger.SessionID())
	assert.FileExists(t, logger.LogPath())
}

func TestLoggerFormatting(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("overlay")
	require.NoError(t, err)

	logger.Debugf("pointer down at (%d, %d)", 40, 120)
	logger.Infof("bubble attached")
	logger.Warnf("surface lost")
	logger.Errorf("destroy failed: %s", "boom")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "[overlay] [DEBUG] pointer down at (40, 120)")
	assert.Contains(t, text, "[overlay] [INFO] bubble attached")
	assert.Contains(t, text, "[overlay] [WARN] surface lost")
	assert.Contains(t, text, "[overlay] [ERROR] destroy failed: boom")
}

func TestMultipleComponentsShareSessionFile(t *testing.T) {
	setupTestDir(t)

	a, err := NewLogger("overlay")
	require.NoError(t, err)
	b, err := NewLogger("config")
	require.NoError(t, err)

	a.Infof("from overlay")
	b.Infof("from config")
	require.NoError(t, a.Close())
	require.NoError(t, b.Close())

	assert.Equal(t, a.LogPath(), b.LogPath())
	content, err := os.ReadFile(a.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(content), "[overlay] [INFO] from overlay")
	assert.Contains(t, string(content), "[config] [INFO] from config")
}

func TestLogPathFormat(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	require.NoError(t, err)
	defer logger.Close()

	fileName := filepath.Base(logger.LogPath())
	require.True(t, strings.HasSuffix(fileName, "-vocab.log"), fileName)
	assert.Equal(t, GetSessionID(), strings.TrimSuffix(fileName, "-vocab.log"))

	dir, err := GetLogDirectory()
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(logger.LogPath()))
}

func TestLoggerOverWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New("headless", &buf)

	logger.Printf("step %d", 3)
	assert.Contains(t, buf.String(), "[headless] [INFO] step 3")
	assert.Empty(t, logger.LogPath())
	assert.Equal(t, &buf, logger.Writer())
	assert.NoError(t, logger.Close())
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New("tui", &buf)
	logger.SetLevel(LevelWarn)

	logger.Debugf("hidden")
	logger.Infof("hidden")
	logger.Warnf("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARN] shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Errorf("nothing to see")
	assert.Empty(t, logger.LogPath())
}

func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := New("race", &buf)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Infof("line %d", n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, strings.Count(buf.String(), "[race] [INFO] line"))
}
