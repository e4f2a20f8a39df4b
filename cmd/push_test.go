package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/meysamhadeli/solid/apperr"
	"github.com/meysamhadeli/solid/config"
	"github.com/meysamhadeli/solid/manifest"
	contracts_provider "github.com/meysamhadeli/solid/providers/contracts"
	provider_models "github.com/meysamhadeli/solid/providers/models"
	"github.com/meysamhadeli/solid/token_management/models"
	"github.com/meysamhadeli/solid/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingClient fails the test on any call it does not override.
type recordingClient struct {
	contracts_provider.IResourceClient
	calls []string
}

func (c *recordingClient) UpdatePage(ctx context.Context, id int64, fields map[string]any) error {
	c.calls = append(c.calls, "UpdatePage")
	return nil
}

func (c *recordingClient) CreatePage(ctx context.Context, fields map[string]any) (*provider_models.Page, error) {
	c.calls = append(c.calls, "CreatePage")
	return &provider_models.Page{ID: 42, Slug: "about"}, nil
}

func newTestDependencies(t *testing.T, dir string) (*RootDependencies, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig
	cfg.HomeDir = t.TempDir()
	var out bytes.Buffer
	return &RootDependencies{
		Config: &cfg,
		Cwd:    dir,
		Out:    &out,
	}, &out
}

func writeProjectFile(t *testing.T, dir string, rel string, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

var session12 = &models.AuthState{AccessToken: "tok", CompanyID: 12, CompanyName: "Acme"}

func noConfirm(t *testing.T) func(string) (bool, error) {
	return func(string) (bool, error) {
		t.Fatal("confirmation should not be asked")
		return false, nil
	}
}

func TestPushWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	deps, _ := newTestDependencies(t, dir)
	client := &recordingClient{}

	_, err := runPush(context.Background(), deps, session12, client, pushOptions{yes: true}, noConfirm(t))
	assert.ErrorIs(t, err, apperr.ErrMissingManifest)
	assert.Equal(t, "run `solid pull` first", apperr.Hint(err))
	assert.Empty(t, client.calls)
}

func TestPushRefusesOtherTenantBeforeAnyCall(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, manifest.Save(dir, manifest.New(99, "Other", "")))
	writeProjectFile(t, dir, "pages/about.json", `{"title": "About"}`)
	deps, _ := newTestDependencies(t, dir)
	client := &recordingClient{}

	_, err := runPush(context.Background(), deps, session12, client, pushOptions{yes: true}, noConfirm(t))
	assert.ErrorIs(t, err, apperr.ErrTenantMismatch)
	assert.Empty(t, client.calls)
}

func TestPushCorruptFileSendsNothing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, manifest.Save(dir, manifest.New(12, "Acme", "")))
	writeProjectFile(t, dir, "pages/a.json", `{"title": "A"}`)
	writeProjectFile(t, dir, "pages/b.json", `{broken`)
	deps, _ := newTestDependencies(t, dir)
	client := &recordingClient{}

	_, err := runPush(context.Background(), deps, session12, client, pushOptions{yes: true}, noConfirm(t))
	assert.ErrorIs(t, err, apperr.ErrCorruptLocalFile)
	assert.Empty(t, client.calls)
}

func TestPushWithoutTerminalNeedsYes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, manifest.Save(dir, manifest.New(12, "Acme", "")))
	writeProjectFile(t, dir, "pages/about.json", `{"title": "About"}`)
	deps, _ := newTestDependencies(t, dir)
	client := &recordingClient{}

	confirm := func(question string) (bool, error) {
		return utils.Confirm(question, false, false)
	}
	_, err := runPush(context.Background(), deps, session12, client, pushOptions{}, confirm)
	assert.ErrorIs(t, err, apperr.ErrConfirmationRequired)
	assert.Empty(t, client.calls)
}

func TestPushDryRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, manifest.Save(dir, manifest.New(12, "Acme", "")))
	writeProjectFile(t, dir, "pages/about.json", `{"title": "About"}`)
	deps, out := newTestDependencies(t, dir)
	client := &recordingClient{}

	result, err := runPush(context.Background(), deps, session12, client, pushOptions{dryRun: true}, noConfirm(t))
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, client.calls)
	assert.Contains(t, out.String(), "about.json")
}

func TestPushDeclinedConfirmation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, manifest.Save(dir, manifest.New(12, "Acme", "")))
	writeProjectFile(t, dir, "pages/about.json", `{"title": "About"}`)
	deps, _ := newTestDependencies(t, dir)
	client := &recordingClient{}

	result, err := runPush(context.Background(), deps, session12, client, pushOptions{},
		func(string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, client.calls)
}

func TestPushCreatesAndUpdates(t *testing.T) {
	dir := t.TempDir()
	m := manifest.New(12, "Acme", "")
	m.Pages["home.json"] = manifest.PageEntry{ID: 1, Slug: "home"}
	require.NoError(t, manifest.Save(dir, m))
	writeProjectFile(t, dir, "pages/home.json", `{"_id": 1, "title": "Home"}`)
	writeProjectFile(t, dir, "pages/about.json", `{"title": "About"}`)
	deps, out := newTestDependencies(t, dir)
	client := &recordingClient{}

	var asked string
	result, err := runPush(context.Background(), deps, session12, client, pushOptions{},
		func(question string) (bool, error) {
			asked = question
			return true, nil
		})
	require.NoError(t, err)
	assert.Equal(t, "Push 1 creates, 1 updates to Acme?", asked)
	assert.Equal(t, []string{"CreatePage", "UpdatePage"}, client.calls)
	assert.Equal(t, 2, result.Pushed)

	require.NoError(t, renderPushResult(deps, result))
	assert.Contains(t, out.String(), "Pushed 2 (1 created, 1 updated), 0 failed")

	saved, err := manifest.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(42), saved.Pages["about.json"].ID)
}

func TestPushNothingToDoSkipsConfirmation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, manifest.Save(dir, manifest.New(12, "Acme", "")))
	deps, out := newTestDependencies(t, dir)
	client := &recordingClient{}

	result, err := runPush(context.Background(), deps, session12, client, pushOptions{}, noConfirm(t))
	require.NoError(t, err)
	assert.True(t, result.NothingToDo)

	require.NoError(t, renderPushResult(deps, result))
	assert.Contains(t, out.String(), "Nothing to push")
}
