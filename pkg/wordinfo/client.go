package wordinfo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/openai/openai-go"
)

const (
	// DefaultBaseURL is the default OpenAI API base URL
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gpt-4o"

	// DefaultSourceLanguage and DefaultTargetLanguage describe the default
	// language pair for lookups.
	DefaultSourceLanguage = "English"
	DefaultTargetLanguage = "Ukrainian"

	maxTokens = 500
)

// Fetcher looks up a word. The TUI depends on this rather than on *Client.
type Fetcher interface {
	FetchWordInfo(ctx context.Context, word string) (*WordInfo, error)
}

// Client fetches word cards from an OpenAI-compatible chat completions API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
	source     string
	target     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithModel sets the model to use for lookups.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL sets a custom base URL for OpenAI-compatible APIs.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithLanguages sets the source and target languages. Empty values keep
// the defaults.
func WithLanguages(source, target string) ClientOption {
	return func(c *Client) {
		if source != "" {
			c.source = source
		}
		if target != "" {
			c.target = target
		}
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a word-info client.
//
// If apiKey is empty, OPENAI_API_KEY is used. If no base URL option is given,
// OPENAI_BASE_URL is consulted before falling back to DefaultBaseURL.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (provide via parameter or OPENAI_API_KEY environment variable)")
	}

	c := &Client{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		source:     DefaultSourceLanguage,
		target:     DefaultTargetLanguage,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == DefaultBaseURL {
		if envBaseURL := os.Getenv("OPENAI_BASE_URL"); envBaseURL != "" {
			c.baseURL = strings.TrimRight(envBaseURL, "/")
		}
	}
	return c, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Languages returns the configured source and target languages.
func (c *Client) Languages() (source, target string) { return c.source, c.target }

// FetchWordInfo asks the model to describe word and decodes the JSON answer.
func (c *Client) FetchWordInfo(ctx context.Context, word string) (*WordInfo, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrEmptyWord
	}

	resp, err := c.sendRequest(ctx, word)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var completion openai.ChatCompletion
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("%w: decode completion: %v", ErrParse, err)
	}
	if len(completion.Choices) == 0 {
		return nil, ErrEmptyContent
	}

	content := stripFences(completion.Choices[0].Message.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	var info WordInfo
	if err := json.Unmarshal([]byte(content), &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if !info.Valid() {
		return nil, fmt.Errorf("%w: missing originalWord or translation", ErrParse)
	}
	return &info, nil
}

// Result is the outcome of an asynchronous lookup.
type Result struct {
	Word string
	Info *WordInfo
	Err  error
}

// FetchAsync runs FetchWordInfo on its own goroutine and delivers exactly one
// Result on the returned channel.
func FetchAsync(ctx context.Context, f Fetcher, word string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		info, err := f.FetchWordInfo(ctx, word)
		out <- Result{Word: word, Info: info, Err: err}
	}()
	return out
}

func (c *Client) sendRequest(ctx context.Context, word string) (*http.Response, error) {
	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(word, c.source, c.target)),
		},
		"response_format": map[string]string{"type": "json_object"},
		"max_tokens":      maxTokens,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, &APIError{StatusCode: resp.StatusCode, Body: fmt.Sprintf("(failed to read error body: %v)", readErr)}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return resp, nil
}

// stripFences removes a markdown code fence some compatible servers wrap
// JSON-mode output in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
