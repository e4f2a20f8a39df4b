package cmd

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/meysamhadeli/solid/apperr"
	"github.com/meysamhadeli/solid/config"
	"github.com/meysamhadeli/solid/manifest"
	contracts_provider "github.com/meysamhadeli/solid/providers/contracts"
	provider_models "github.com/meysamhadeli/solid/providers/models"
	sync_models "github.com/meysamhadeli/solid/sync_engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageClient serves a single page; any other call panics on the nil embed.
type pageClient struct {
	contracts_provider.IResourceClient
	calls []string
}

func (c *pageClient) ListPages(ctx context.Context) ([]provider_models.Page, error) {
	c.calls = append(c.calls, "ListPages")
	return []provider_models.Page{{ID: 42, Slug: "about"}}, nil
}

func (c *pageClient) GetPage(ctx context.Context, id int64) (*provider_models.Page, error) {
	c.calls = append(c.calls, "GetPage")
	return &provider_models.Page{ID: id, Title: "About", Slug: "about"}, nil
}

func TestRunPullPagesOnly(t *testing.T) {
	dir := t.TempDir()
	deps, _ := newTestDependencies(t, dir)
	client := &pageClient{}

	result, err := runPull(context.Background(), deps, session12, client, pullOptions{pagesOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"ListPages", "GetPage"}, client.calls)
	require.Len(t, result.Kinds, 1)
	assert.Equal(t, sync_models.KindPages, result.Kinds[0].Kind)

	m, err := manifest.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(12), m.CompanyID)
	assert.Equal(t, deps.Config.APIURL, m.APIURL, "config URL is used when the session has none")
	assert.Equal(t, int64(42), m.Pages["about.json"].ID)
}

func TestRunPullRefusesOtherTenant(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, manifest.Save(dir, manifest.New(99, "Other", "")))
	deps, _ := newTestDependencies(t, dir)
	client := &pageClient{}

	_, err := runPull(context.Background(), deps, session12, client, pullOptions{pagesOnly: true})
	assert.ErrorIs(t, err, apperr.ErrTenantMismatch)
	assert.Empty(t, client.calls)

	_, err = runPull(context.Background(), deps, session12, client, pullOptions{pagesOnly: true, force: true})
	require.NoError(t, err)
	m, err := manifest.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(12), m.CompanyID)
}

func TestRenderPullResult(t *testing.T) {
	result := &sync_models.PullResult{
		Dir:         "/work",
		CompanyName: "Acme",
		Kinds: []sync_models.KindResult{
			{Kind: sync_models.KindPages, Written: 2, Skipped: 1},
			{Kind: sync_models.KindKB, Failed: true, Error: "boom"},
		},
	}

	deps, out := newTestDependencies(t, t.TempDir())
	require.NoError(t, renderPullResult(deps, result))
	assert.Contains(t, out.String(), "failed: boom")
	assert.Contains(t, out.String(), "Could not fetch kb")

	deps, out = newTestDependencies(t, t.TempDir())
	deps.Config.Output = config.OutputJSON
	require.NoError(t, renderPullResult(deps, result))
	var decoded sync_models.PullResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, []sync_models.Kind{sync_models.KindKB}, decoded.FailedKinds())
}
