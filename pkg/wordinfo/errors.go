package wordinfo

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyWord is returned when asked to look up a blank word.
	ErrEmptyWord = errors.New("wordinfo: word is empty")

	// ErrEmptyContent is returned when the completion carries no content.
	ErrEmptyContent = errors.New("wordinfo: empty response content")

	// ErrParse is returned when the completion content is not a word card.
	ErrParse = errors.New("wordinfo: could not parse response")
)

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wordinfo: API request failed with status %d: %s", e.StatusCode, e.Body)
}
