// Package wordinfo looks up translations, transcriptions and usage examples
// for words added from the bubble, using an OpenAI-compatible chat endpoint
// in JSON mode.
package wordinfo

import (
	"fmt"
	"strings"
)

// Example is one usage sentence with its translation.
type Example struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// WordInfo is the structured description returned for a word.
type WordInfo struct {
	OriginalWord  string    `json:"originalWord"`
	Translation   string    `json:"translation"`
	Transcription string    `json:"transcription"`
	PartOfSpeech  string    `json:"partOfSpeech"`
	Level         string    `json:"level"`
	UsageInfo     string    `json:"usageInfo"`
	Examples      []Example `json:"examples"`
}

// Valid reports whether the lookup produced the fields a word card needs.
func (w *WordInfo) Valid() bool {
	return w != nil && strings.TrimSpace(w.OriginalWord) != "" && strings.TrimSpace(w.Translation) != ""
}

// Markdown renders the word as a markdown card.
func (w *WordInfo) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", w.OriginalWord)

	var meta []string
	if w.Transcription != "" {
		meta = append(meta, fmt.Sprintf("`%s`", w.Transcription))
	}
	if w.PartOfSpeech != "" {
		meta = append(meta, "*"+w.PartOfSpeech+"*")
	}
	if w.Level != "" {
		meta = append(meta, "**"+w.Level+"**")
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " · "))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "**%s**\n\n", w.Translation)

	if usage := strings.TrimSpace(w.UsageInfo); usage != "" {
		for _, line := range strings.Split(usage, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				fmt.Fprintf(&b, "> %s\n>\n", line)
			}
		}
		b.WriteString("\n")
	}

	if len(w.Examples) > 0 {
		b.WriteString("## Examples\n\n")
		for _, ex := range w.Examples {
			fmt.Fprintf(&b, "- %s\n  - _%s_\n", ex.Sentence, ex.Translation)
		}
	}
	return b.String()
}
