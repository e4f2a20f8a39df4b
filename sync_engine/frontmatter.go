package sync_engine

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	frontmatterDelimiter = "---"
	defaultKBTitle       = "Untitled"
	defaultKBCategory    = "general"
)

// KBDocument is a knowledge-base markdown file split into header and body.
type KBDocument struct {
	ID       int64
	HasID    bool
	Title    string
	Category string
	Content  string

	// InvalidID holds an id value that is not an integer. The manifest
	// decides identity, so it is reported rather than rejected.
	InvalidID string
}

// ParseKBDocument reads a markdown file with an optional "---" delimited
// key: value header. Without a header the whole trimmed text is the body.
func ParseKBDocument(text string) (*KBDocument, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	doc := &KBDocument{Title: defaultKBTitle, Category: defaultKBCategory}

	trimmed := strings.TrimLeft(text, "\n")
	if trimmed != frontmatterDelimiter && !strings.HasPrefix(trimmed, frontmatterDelimiter+"\n") {
		doc.Content = strings.TrimSpace(text)
		return doc, nil
	}

	rest := strings.TrimPrefix(strings.TrimPrefix(trimmed, frontmatterDelimiter), "\n")
	var header []string
	closed := false
	consumed := 0
	scanner := bufio.NewScanner(strings.NewReader(rest))
	scanner.Buffer(make([]byte, 0, 64*1024), len(rest)+1)
	for scanner.Scan() {
		line := scanner.Text()
		consumed += len(line) + 1
		if strings.TrimRight(line, " \t") == frontmatterDelimiter {
			closed = true
			break
		}
		header = append(header, line)
	}
	if !closed {
		return nil, errors.New("frontmatter has no closing delimiter")
	}

	for i, line := range header {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("frontmatter line %d is not a key: value pair", i+2)
		}
		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))

		switch key {
		case "id":
			if value == "" {
				continue
			}
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				doc.InvalidID = value
				continue
			}
			doc.ID = id
			doc.HasID = true
		case "title":
			if value != "" {
				doc.Title = value
			}
		case "category":
			if value != "" {
				doc.Category = value
			}
		}
	}

	if consumed < len(rest) {
		doc.Content = strings.TrimSpace(rest[consumed:])
	}
	return doc, nil
}

// RenderKBDocument writes the header and body the way pull lays them out.
func RenderKBDocument(id int64, title string, category string, content string) []byte {
	if category == "" {
		category = defaultKBCategory
	}
	var b strings.Builder
	b.WriteString(frontmatterDelimiter + "\n")
	fmt.Fprintf(&b, "id: %d\n", id)
	fmt.Fprintf(&b, "title: \"%s\"\n", escapeTitle(title))
	fmt.Fprintf(&b, "category: %s\n", singleLine(category))
	b.WriteString(frontmatterDelimiter + "\n\n")
	b.WriteString(strings.TrimSpace(content))
	b.WriteString("\n")
	return []byte(b.String())
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	switch {
	case value[0] == '"' && value[len(value)-1] == '"':
		inner := value[1 : len(value)-1]
		var b strings.Builder
		for i := 0; i < len(inner); i++ {
			if inner[i] == '\\' && i+1 < len(inner) && (inner[i+1] == '"' || inner[i+1] == '\\') {
				i++
			}
			b.WriteByte(inner[i])
		}
		return b.String()
	case value[0] == '\'' && value[len(value)-1] == '\'':
		return value[1 : len(value)-1]
	}
	return value
}

func escapeTitle(title string) string {
	title = singleLine(title)
	title = strings.ReplaceAll(title, `\`, `\\`)
	return strings.ReplaceAll(title, `"`, `\"`)
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
