package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobal(t *testing.T) {
	t.Helper()
	globalMu.Lock()
	globalManager = nil
	globalMu.Unlock()
	t.Cleanup(func() {
		globalMu.Lock()
		globalManager = nil
		globalMu.Unlock()
	})
}

func TestInitialize(t *testing.T) {
	t.Run("registers bubble and wordinfo", func(t *testing.T) {
		resetGlobal(t)
		require.NoError(t, Initialize(filepath.Join(t.TempDir(), "config.json")))

		assert.True(t, IsInitialized())
		require.NotNil(t, GetBubble())
		require.NotNil(t, GetWordInfo())

		ids := []string{}
		for _, s := range Global().GetSections() {
			ids = append(ids, s.ID())
		}
		assert.Equal(t, []string{SectionIDBubble, SectionIDWordInfo}, ids)
	})

	t.Run("loads existing values", func(t *testing.T) {
		resetGlobal(t)
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
  "version": "1",
  "sections": {
    "bubble": {"x": 42, "y": 84, "enabled": false},
    "wordinfo": {"model": "gpt-4o-mini"}
  }
}`), 0o600))

		require.NoError(t, Initialize(path))
		assert.Equal(t, 42, GetBubble().Position().X)
		assert.False(t, GetBubble().IsEnabled())
		assert.Equal(t, "gpt-4o-mini", GetWordInfo().GetModel())
	})

	t.Run("bad section data fails", func(t *testing.T) {
		resetGlobal(t)
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"sections":{"bubble":{"x":"left"}}}`), 0o600))

		assert.Error(t, Initialize(path))
		assert.False(t, IsInitialized())
	})
}

func TestUninitialized(t *testing.T) {
	resetGlobal(t)

	assert.False(t, IsInitialized())
	assert.Nil(t, GetBubble())
	assert.Nil(t, GetWordInfo())
	assert.Panics(t, func() { Global() })
}
