package utils

import (
	"context"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderMarkdown highlights an agent answer for the terminal. Fenced code
// blocks are highlighted with their own language, everything else as
// markdown. Rendering stops early when ctx is canceled.
func RenderMarkdown(ctx context.Context, w io.Writer, content string, theme string, color bool) error {
	if !color {
		_, err := io.WriteString(w, ensureNewline(content))
		return err
	}

	for _, block := range splitFences(content) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := quick.Highlight(w, block.text, block.language, "terminal256", theme); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\x1b[0m")
	return err
}

type markdownBlock struct {
	language string
	text     string
}

// splitFences cuts content into alternating prose and fenced code blocks.
func splitFences(content string) []markdownBlock {
	var blocks []markdownBlock
	var current strings.Builder
	language := "markdown"
	inCode := false

	flush := func() {
		if current.Len() > 0 {
			blocks = append(blocks, markdownBlock{language: language, text: current.String()})
			current.Reset()
		}
	}

	for _, line := range strings.SplitAfter(ensureNewline(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if !inCode {
				flush()
				current.WriteString(line)
				language = DetectLanguageFromCodeBlock(trimmed)
				inCode = true
				continue
			}
			current.WriteString(line)
			flush()
			language = "markdown"
			inCode = false
			continue
		}
		current.WriteString(line)
	}
	flush()
	return blocks
}

// DetectLanguageFromCodeBlock returns the language named after an opening
// fence, or markdown when there is none.
func DetectLanguageFromCodeBlock(fence string) string {
	language := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(fence), "```"))
	if fields := strings.Fields(language); len(fields) > 0 {
		return fields[0]
	}
	return "markdown"
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
