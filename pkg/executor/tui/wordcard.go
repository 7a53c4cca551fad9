package tui

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"

	"github.com/entrhq/vocab/pkg/wordinfo"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// wordCard is a finished lookup, shown either as a rendered card or as the
// raw JSON the model returned.
type wordCard struct {
	info    *wordinfo.WordInfo
	err     error
	word    string
	rawJSON bool
}

// render draws the card at the given width.
func (c *wordCard) render(width int) string {
	if c.err != nil {
		return errorStyle.Render("Lookup failed for "+c.word+": ") + c.err.Error()
	}
	if c.rawJSON {
		return highlightJSON(c.info)
	}
	return renderMarkdown(c.info.Markdown(), width)
}

// highlightJSON pretty-prints info and colors it for the terminal.
func highlightJSON(info *wordinfo.WordInfo) string {
	raw, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err.Error()
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, string(raw), "json", "terminal256", "monokai"); err != nil {
		return string(raw)
	}
	return buf.String()
}

// renderMarkdown renders md with glamour, falling back to the source.
func renderMarkdown(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// copyTranslation puts the translation on the system clipboard.
func (c *wordCard) copyTranslation() error {
	return writeClipboard(c.info.Translation)
}
