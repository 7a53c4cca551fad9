package wordinfo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCard = `{
  "originalWord": "serendipity",
  "translation": "щасливий випадок",
  "transcription": "/ˌser.ənˈdɪp.ə.ti/",
  "partOfSpeech": "іменник",
  "level": "C1",
  "usageInfo": "Синоніми: chance, luck\nПримітка: formal",
  "examples": [
    {"sentence": "It was pure serendipity.", "translation": "Це був чистий випадок."},
    {"sentence": "Serendipity led us here.", "translation": "Випадок привів нас сюди."},
    {"sentence": "What serendipity!", "translation": "Який щасливий випадок!"}
  ]
}`

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o",
		"choices": []map[string]interface{}{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]interface{}{"role": "assistant", "content": content},
		}},
	})
	require.NoError(t, err)
	return body
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestFetchWordInfo_Success(t *testing.T) {
	var got map[string]interface{}
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionBody(t, sampleCard))
	})

	info, err := c.FetchWordInfo(context.Background(), "  serendipity ")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, DefaultModel, got["model"])
	assert.Equal(t, map[string]interface{}{"type": "json_object"}, got["response_format"])
	assert.EqualValues(t, 500, got["max_tokens"])

	msgs, ok := got["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, msgs, 2)
	user := msgs[1].(map[string]interface{})
	assert.Equal(t, "user", user["role"])
	assert.Contains(t, user["content"], `"serendipity"`)
	assert.Contains(t, user["content"], "Target Language: Ukrainian")

	assert.Equal(t, "serendipity", info.OriginalWord)
	assert.Equal(t, "C1", info.Level)
	assert.Len(t, info.Examples, 3)
	assert.Equal(t, "It was pure serendipity.", info.Examples[0].Sentence)
}

func TestFetchWordInfo_FencedContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionBody(t, "```json\n"+sampleCard+"\n```"))
	})

	info, err := c.FetchWordInfo(context.Background(), "serendipity")
	require.NoError(t, err)
	assert.Equal(t, "щасливий випадок", info.Translation)
}

func TestFetchWordInfo_Errors(t *testing.T) {
	t.Run("blank word", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("request must not be sent")
		})
		_, err := c.FetchWordInfo(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrEmptyWord)
	})

	t.Run("empty content", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(completionBody(t, ""))
		})
		_, err := c.FetchWordInfo(context.Background(), "word")
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("no choices", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
		})
		_, err := c.FetchWordInfo(context.Background(), "word")
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("not json", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(completionBody(t, "sorry, I can't"))
		})
		_, err := c.FetchWordInfo(context.Background(), "word")
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("missing fields", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(completionBody(t, `{"level":"A1"}`))
		})
		_, err := c.FetchWordInfo(context.Background(), "word")
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("api error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("rate limited"))
		})
		_, err := c.FetchWordInfo(context.Background(), "word")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		assert.Equal(t, "rate limited", apiErr.Body)
		assert.Contains(t, err.Error(), "429")
	})
}

func TestNewClient(t *testing.T) {
	t.Run("requires key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		_, err := NewClient("")
		assert.Error(t, err)
	})

	t.Run("env fallbacks", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "env-key")
		t.Setenv("OPENAI_BASE_URL", "http://localhost:9999/v1/")
		c, err := NewClient("")
		require.NoError(t, err)
		assert.Equal(t, "env-key", c.apiKey)
		assert.Equal(t, "http://localhost:9999/v1", c.BaseURL())
	})

	t.Run("options win over env", func(t *testing.T) {
		t.Setenv("OPENAI_BASE_URL", "http://env")
		c, err := NewClient("k",
			WithBaseURL("http://opt"),
			WithModel("gpt-4o-mini"),
			WithLanguages("German", ""))
		require.NoError(t, err)
		assert.Equal(t, "http://opt", c.BaseURL())
		assert.Equal(t, "gpt-4o-mini", c.Model())
		src, dst := c.Languages()
		assert.Equal(t, "German", src)
		assert.Equal(t, DefaultTargetLanguage, dst)
	})
}

type stubFetcher struct {
	info *WordInfo
	err  error
}

func (s stubFetcher) FetchWordInfo(ctx context.Context, word string) (*WordInfo, error) {
	return s.info, s.err
}

func TestFetchAsync(t *testing.T) {
	want := &WordInfo{OriginalWord: "cat", Translation: "кіт"}
	res := <-FetchAsync(context.Background(), stubFetcher{info: want}, "cat")
	assert.Equal(t, "cat", res.Word)
	assert.Same(t, want, res.Info)
	assert.NoError(t, res.Err)

	res = <-FetchAsync(context.Background(), stubFetcher{err: ErrEmptyContent}, "dog")
	assert.ErrorIs(t, res.Err, ErrEmptyContent)
}

func TestMarkdown(t *testing.T) {
	var info WordInfo
	require.NoError(t, json.Unmarshal([]byte(sampleCard), &info))

	md := info.Markdown()
	assert.True(t, strings.HasPrefix(md, "# serendipity\n"))
	assert.Contains(t, md, "**C1**")
	assert.Contains(t, md, "> Синоніми: chance, luck")
	assert.Contains(t, md, "## Examples")
	assert.Equal(t, 3, strings.Count(md, "\n- "))
}
