package sync_engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/meysamhadeli/solid/apperr"
	"github.com/meysamhadeli/solid/manifest"
	"github.com/meysamhadeli/solid/sync_engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectClassifiesByManifestMembership(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pages/about.json", `{"_id": 42, "title": "About", "slug": "about"}`)
	writeFile(t, dir, "pages/contact.json", `{"title": "Contact"}`)
	writeFile(t, dir, "kb/welcome.md", "---\nid: 7\ntitle: Welcome\n---\n\nHi")

	m := manifest.New(12, "Acme", "")
	m.Pages["about.json"] = manifest.PageEntry{ID: 42, Slug: "about"}

	changes, err := Detect(dir, m, models.FullScope())
	require.NoError(t, err)

	require.Len(t, changes.Records, 3)
	assert.Equal(t, "about.json", changes.Records[0].File)
	assert.Equal(t, models.ActionUpdate, changes.Records[0].Action)
	assert.Equal(t, int64(42), changes.Records[0].ID)

	assert.Equal(t, "contact.json", changes.Records[1].File)
	assert.Equal(t, models.ActionCreate, changes.Records[1].Action)

	assert.Equal(t, models.KindKB, changes.Records[2].Kind)
	assert.Equal(t, models.ActionCreate, changes.Records[2].Action, "kb mapping is separate from pages")

	assert.Equal(t, 2, changes.Creates)
	assert.Equal(t, 1, changes.Updates)
	assert.False(t, changes.SettingsChanged)
}

func TestDetectIsIdempotentAndReadOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pages/home.json", `{"_id": 1, "title": "Home", "price": 10.50}`)
	writeFile(t, dir, "kb/faq.md", "No header here")
	writeFile(t, dir, "solid.config.json", `{"company_id": 12, "website_settings": {"theme": "dark"}}`)

	m := manifest.New(12, "Acme", "")
	m.Pages["home.json"] = manifest.PageEntry{ID: 1}
	before := m.Clone()

	first, err := Detect(dir, m, models.FullScope())
	require.NoError(t, err)
	second, err := Detect(dir, m, models.FullScope())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, m)
	assert.Equal(t, json.Number("10.50"), first.Records[0].Data["price"])
}

func TestDetectDeletedFileYieldsNoRecord(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pages/kept.json", `{"title": "Kept"}`)

	m := manifest.New(12, "Acme", "")
	m.Pages["kept.json"] = manifest.PageEntry{ID: 1}
	m.Pages["removed.json"] = manifest.PageEntry{ID: 2}

	changes, err := Detect(dir, m, models.FullScope())
	require.NoError(t, err)

	require.Len(t, changes.Records, 1)
	assert.Equal(t, "kept.json", changes.Records[0].File)
}

func TestDetectSkipsForeignEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pages/notes.txt", "not a page")
	writeFile(t, dir, "pages/.draft.json", `{}`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pages", "nested.json"), 0o755))

	changes, err := Detect(dir, manifest.New(1, "", ""), models.FullScope())
	require.NoError(t, err)
	assert.True(t, changes.Empty())
}

func TestDetectCorruptJSONFailsWholeDetection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pages/a.json", `{"title": "ok"}`)
	writeFile(t, dir, "pages/b.json", `{"title": `)

	_, err := Detect(dir, manifest.New(1, "", ""), models.FullScope())
	require.ErrorIs(t, err, apperr.ErrCorruptLocalFile)

	var corrupt *apperr.CorruptLocalFileError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, "pages/b.json", corrupt.File)
}

func TestDetectNonObjectJSONIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "services/list.json", `[1, 2]`)

	_, err := Detect(dir, manifest.New(1, "", ""), models.FullScope())
	assert.ErrorIs(t, err, apperr.ErrCorruptLocalFile)
}

func TestDetectCorruptFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "kb/broken.md", "---\ntitle: never closed\n\nBody")

	_, err := Detect(dir, manifest.New(1, "", ""), models.FullScope())
	assert.ErrorIs(t, err, apperr.ErrCorruptLocalFile)
}

func TestDetectKBUsesManifestID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "kb/welcome.md", "---\nid: 999\ntitle: \"Welcome\"\ncategory: general\n---\n\nHello")

	m := manifest.New(12, "Acme", "")
	m.KB["welcome.md"] = manifest.KBEntry{ID: 7, Title: "Welcome"}

	changes, err := Detect(dir, m, models.FullScope())
	require.NoError(t, err)

	require.Len(t, changes.Records, 1)
	record := changes.Records[0]
	assert.Equal(t, models.ActionUpdate, record.Action)
	assert.Equal(t, int64(7), record.ID)
	assert.Equal(t, int64(999), record.FrontmatterID)
	assert.Equal(t, map[string]any{"title": "Welcome", "content": "Hello", "category": "general"}, record.Data)
}

func TestDetectSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"non empty settings", `{"website_settings": {"theme": "dark"}}`, true},
		{"empty settings", `{"website_settings": {}}`, false},
		{"no settings key", `{"company_id": 1}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, SettingsFile, tt.content)

			changes, err := Detect(dir, manifest.New(1, "", ""), models.FullScope())
			require.NoError(t, err)
			assert.Equal(t, tt.want, changes.SettingsChanged)
			if tt.want {
				require.Len(t, changes.Records, 1)
				assert.Equal(t, models.KindSettings, changes.Records[0].Kind)
				assert.Equal(t, map[string]any{"theme": "dark"}, changes.Records[0].Data)
			}
		})
	}
}

func TestDetectRespectsScope(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pages/a.json", `{}`)
	writeFile(t, dir, "kb/b.md", "body")
	writeFile(t, dir, SettingsFile, `{"website_settings": {"x": 1}}`)

	changes, err := Detect(dir, manifest.New(1, "", ""), models.ScopeFromFlags(false, true, false))
	require.NoError(t, err)

	require.Len(t, changes.Records, 1)
	assert.Equal(t, models.KindKB, changes.Records[0].Kind)
}

func TestDetectMissingDirectories(t *testing.T) {
	changes, err := Detect(t.TempDir(), manifest.New(1, "", ""), models.FullScope())
	require.NoError(t, err)
	assert.True(t, changes.Empty())
}

func TestDetectKBNonIntegerIDIsANote(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "kb/welcome.md", "---\nid: seven\ntitle: Welcome\n---\n\nHello")

	m := manifest.New(12, "Acme", "")
	m.KB["welcome.md"] = manifest.KBEntry{ID: 7, Title: "Welcome"}

	changes, err := Detect(dir, m, models.FullScope())
	require.NoError(t, err)

	require.Len(t, changes.Records, 1)
	record := changes.Records[0]
	assert.Equal(t, models.ActionUpdate, record.Action)
	assert.Equal(t, int64(7), record.ID)
	assert.Zero(t, record.FrontmatterID)
	assert.Contains(t, record.Note, `"seven"`)
}

func TestDetectSkipsDotfiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pages/.solid-tmp-123.json", `{"title": "half written"}`)
	writeFile(t, dir, "kb/.welcome.md", "Draft")
	writeFile(t, dir, "pages/home.json", `{"title": "Home"}`)

	changes, err := Detect(dir, manifest.New(12, "Acme", ""), models.FullScope())
	require.NoError(t, err)

	require.Len(t, changes.Records, 1)
	assert.Equal(t, "home.json", changes.Records[0].File)
}
