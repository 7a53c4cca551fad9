package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordInfoSection(t *testing.T) {
	s := NewWordInfoSection()
	src, dst := s.Languages()
	assert.Equal(t, "English", src)
	assert.Equal(t, "Ukrainian", dst)
	assert.NoError(t, s.Validate())

	require.NoError(t, s.SetData(map[string]interface{}{
		"model":           "gpt-4o-mini",
		"base_url":        "http://localhost:8080/v1",
		"api_key":         "sk-test",
		"target_language": "Polish",
	}))
	assert.Equal(t, "gpt-4o-mini", s.GetModel())
	assert.Equal(t, "http://localhost:8080/v1", s.GetBaseURL())
	assert.Equal(t, "sk-test", s.GetAPIKey())
	_, dst = s.Languages()
	assert.Equal(t, "Polish", dst)

	s.SetLanguages("", "Polish")
	assert.Error(t, s.Validate())

	s.Reset()
	assert.Empty(t, s.GetModel())
	assert.NoError(t, s.Validate())
}
