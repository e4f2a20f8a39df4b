package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/meysamhadeli/solid/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingManifest(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, apperr.ErrManifestNotFound)
}

func TestLoadCorruptManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, Dir), 0o755))
	require.NoError(t, os.WriteFile(Path(dir), []byte("{not json"), 0o644))

	_, err := Load(dir)
	require.ErrorIs(t, err, apperr.ErrCorruptManifest)

	var corrupt *apperr.CorruptManifestError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, Path(dir), corrupt.Path)

	data, readErr := os.ReadFile(Path(dir))
	require.NoError(t, readErr)
	assert.Equal(t, "{not json", string(data), "a corrupt manifest is never reset")
}

func TestLoadFillsMissingMappings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, Dir), 0o755))
	require.NoError(t, os.WriteFile(Path(dir), []byte(`{"company_id": 12, "pages": {"about.json": {"id": 42, "slug": "about"}}}`), 0o644))

	m, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(12), m.CompanyID)
	assert.NotNil(t, m.KB)
	assert.NotNil(t, m.Services)
	assert.NotNil(t, m.Products)

	id, ok := m.Lookup(KindPages, "about.json")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	m := New(12, "Acme", "https://api.example.test")
	m.PulledAt = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	m.Pages["about.json"] = PageEntry{ID: 42, Slug: "about", Hash: "abc"}
	m.KB["welcome.md"] = KBEntry{ID: 7, Title: "Welcome"}
	m.Services["repair.json"] = ServiceEntry{ID: 3, Slug: "repair"}
	m.Products["widget.json"] = ProductEntry{ID: 9, Name: "Widget"}

	require.NoError(t, Save(dir, m))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)

	entries, err := os.ReadDir(filepath.Join(dir, Dir))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestResetOnlyTouchesNamedKinds(t *testing.T) {
	m := New(1, "Acme", "")
	m.Pages["a.json"] = PageEntry{ID: 1}
	m.KB["b.md"] = KBEntry{ID: 2}

	m.Reset(KindPages)

	assert.Empty(t, m.Pages)
	assert.Len(t, m.KB, 1)
}

func TestCloneIsDeep(t *testing.T) {
	m := New(1, "Acme", "")
	m.Pages["a.json"] = PageEntry{ID: 1}

	clone := m.Clone()
	clone.Pages["b.json"] = PageEntry{ID: 2}

	assert.Len(t, m.Pages, 1)
	assert.Len(t, clone.Pages, 2)
}

func TestVerifyOwnership(t *testing.T) {
	m := New(12, "Acme", "")

	assert.NoError(t, VerifyOwnership(m, 12))

	err := VerifyOwnership(m, 99)
	require.ErrorIs(t, err, apperr.ErrTenantMismatch)

	var mismatch *apperr.TenantMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, int64(12), mismatch.ManifestCompanyID)
	assert.Equal(t, int64(99), mismatch.SessionCompanyID)
}
