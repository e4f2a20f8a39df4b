package sync_engine

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxBaseNameRunes = 80

// Slugify lowercases s and collapses every run of characters outside
// [a-z0-9_-] into a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := strings.Trim(b.String(), "-")
	if utf8.RuneCountInString(slug) > maxBaseNameRunes {
		slug = string([]rune(slug)[:maxBaseNameRunes])
		slug = strings.TrimRight(slug, "-")
	}
	return slug
}

// BaseName picks the filename stem for a remote record: its slug, else its
// title or name, else "<kind>-<id>".
func BaseName(slug string, title string, fallbackPrefix string, id int64) string {
	if name := Slugify(slug); name != "" {
		return name
	}
	if name := Slugify(title); name != "" {
		return name
	}
	return fmt.Sprintf("%s-%d", fallbackPrefix, id)
}

// nameAllocator hands out unique filenames within one kind directory.
type nameAllocator struct {
	ext  string
	used map[string]bool
}

func newNameAllocator(ext string) *nameAllocator {
	return &nameAllocator{ext: ext, used: map[string]bool{}}
}

func (a *nameAllocator) allocate(stem string, id int64) string {
	name := stem + a.ext
	if a.used[name] {
		name = fmt.Sprintf("%s-%d%s", stem, id, a.ext)
	}
	for n := 2; a.used[name]; n++ {
		name = fmt.Sprintf("%s-%d-%d%s", stem, id, n, a.ext)
	}
	a.used[name] = true
	return name
}
