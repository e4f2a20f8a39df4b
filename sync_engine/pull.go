package sync_engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/meysamhadeli/solid/apperr"
	"github.com/meysamhadeli/solid/manifest"
	"github.com/meysamhadeli/solid/providers/contracts"
	"github.com/meysamhadeli/solid/sync_engine/models"
	"github.com/meysamhadeli/solid/utils"
)

// Tenant is the company the session is bound to.
type Tenant struct {
	CompanyID   int64
	CompanyName string
	APIURL      string
}

type PullOptions struct {
	Scope models.Scope
	// Force lets pull overwrite a project owned by another company.
	Force bool
}

// Puller materializes remote resources as local files and rebuilds the
// project manifest from what it wrote.
type Puller struct {
	client  contracts.IResourceClient
	logger  *slog.Logger
	kbLimit int
	now     func() time.Time
}

func NewPuller(client contracts.IResourceClient, logger *slog.Logger, kbLimit int) *Puller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Puller{
		client:  client,
		logger:  logger,
		kbLimit: kbLimit,
		now:     time.Now,
	}
}

// pullRun is the state of one pull.
type pullRun struct {
	dir      string
	tenant   Tenant
	previous *manifest.Manifest
	next     *manifest.Manifest
}

func (puller *Puller) Pull(ctx context.Context, dir string, tenant Tenant, options PullOptions) (*models.PullResult, error) {
	previous, err := manifest.Load(dir)
	switch {
	case errors.Is(err, apperr.ErrManifestNotFound):
		previous = nil
	case err != nil:
		return nil, err
	}

	if previous != nil && !options.Force {
		if err := manifest.VerifyOwnership(previous, tenant.CompanyID); err != nil {
			return nil, err
		}
	}

	run := &pullRun{dir: dir, tenant: tenant, previous: previous}
	if options.Scope.IsFull() || previous == nil || previous.CompanyID != tenant.CompanyID {
		run.next = manifest.New(tenant.CompanyID, tenant.CompanyName, tenant.APIURL)
	} else {
		run.next = previous.Clone()
		run.next.CompanyName = tenant.CompanyName
		run.next.APIURL = tenant.APIURL
	}

	steps := []struct {
		kind models.Kind
		pull func(context.Context, *pullRun, *models.KindResult) error
	}{
		{models.KindSettings, puller.pullSettings},
		{models.KindPages, puller.pullPages},
		{models.KindKB, puller.pullKB},
		{models.KindServices, puller.pullServices},
		{models.KindProducts, puller.pullProducts},
	}

	result := &models.PullResult{
		Dir:         dir,
		CompanyID:   tenant.CompanyID,
		CompanyName: tenant.CompanyName,
	}

	attempted, failed := 0, 0
	var firstErr error
	for _, step := range steps {
		if !options.Scope.Includes(step.kind) {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		if step.kind != models.KindSettings {
			run.next.Reset(manifest.Kind(step.kind))
		}

		attempted++
		kindResult := models.KindResult{Kind: step.kind}
		if err := step.pull(ctx, run, &kindResult); err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			kindResult.Failed = true
			kindResult.Error = err.Error()
			run.restore(step.kind)
			puller.logger.WarnContext(ctx, "pull failed for kind",
				slog.String("kind", string(step.kind)),
				slog.String("error", err.Error()))
		}
		result.Kinds = append(result.Kinds, kindResult)
	}

	// The previous manifest is replaced only once every kind in scope has
	// been processed.
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("pull interrupted: %w", err)
	}
	if attempted > 0 && failed == attempted {
		return result, fmt.Errorf("%w: %w", apperr.ErrPullFailed, firstErr)
	}

	if _, err := utils.EnsureGitignore(dir); err != nil {
		puller.logger.WarnContext(ctx, "could not create .gitignore", slog.String("error", err.Error()))
	}

	result.PulledAt = puller.now().UTC()
	run.next.PulledAt = result.PulledAt
	if err := manifest.Save(dir, run.next); err != nil {
		return result, err
	}
	return result, nil
}

// restore puts back the previous mapping of a kind whose fetch failed, so
// files from the last good pull keep resolving to their remote records.
func (run *pullRun) restore(kind models.Kind) {
	if run.previous == nil || run.previous.CompanyID != run.tenant.CompanyID {
		return
	}
	previous := run.previous.Clone()
	switch manifest.Kind(kind) {
	case manifest.KindPages:
		run.next.Pages = previous.Pages
	case manifest.KindKB:
		run.next.KB = previous.KB
	case manifest.KindServices:
		run.next.Services = previous.Services
	case manifest.KindProducts:
		run.next.Products = previous.Products
	}
}

func (run *pullRun) write(kind manifest.Kind, name string, content []byte) (string, error) {
	path := filepath.Join(run.dir, layoutOf(kind).dir, name)
	if err := utils.WriteFileAtomic(path, content, 0o644); err != nil {
		return "", err
	}
	return ContentHash(content), nil
}

func (puller *Puller) pullSettings(ctx context.Context, run *pullRun, result *models.KindResult) error {
	company, err := puller.client.GetCompanyInfo(ctx)
	if err != nil {
		return err
	}

	settings := company.WebsiteSettings
	if settings == nil {
		settings = map[string]any{}
	}
	content, err := encodeFile(settingsFile{
		CompanyID:       company.ID,
		CompanyName:     company.Name,
		WebsiteSettings: settings,
	})
	if err != nil {
		return fmt.Errorf("error encoding settings: %w", err)
	}
	if err := utils.WriteFileAtomic(filepath.Join(run.dir, SettingsFile), content, 0o644); err != nil {
		return err
	}
	result.Written++
	return nil
}

func (puller *Puller) pullPages(ctx context.Context, run *pullRun, result *models.KindResult) error {
	pages, err := puller.client.ListPages(ctx)
	if err != nil {
		return err
	}

	names := newNameAllocator(layoutOf(manifest.KindPages).ext)
	for _, summary := range pages {
		page, err := puller.client.GetPage(ctx, summary.ID)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			result.Skipped++
			puller.logger.WarnContext(ctx, "skipping page",
				slog.Int64("id", summary.ID),
				slog.String("error", err.Error()))
			continue
		}

		content, err := encodeFile(pageToFile(page))
		if err != nil {
			result.Skipped++
			continue
		}
		name := names.allocate(BaseName(page.Slug, page.Title, "page", page.ID), page.ID)
		hash, err := run.write(manifest.KindPages, name, content)
		if err != nil {
			return err
		}
		run.next.Pages[name] = manifest.PageEntry{
			ID:        page.ID,
			Slug:      page.Slug,
			UpdatedAt: page.UpdatedAt,
			Hash:      hash,
		}
		result.Written++
	}
	return nil
}

func (puller *Puller) pullKB(ctx context.Context, run *pullRun, result *models.KindResult) error {
	entries, err := puller.client.SearchKB(ctx, "", puller.kbLimit)
	if err != nil {
		return err
	}

	names := newNameAllocator(layoutOf(manifest.KindKB).ext)
	for _, entry := range entries {
		content := RenderKBDocument(entry.ID, entry.Title, entry.Category, entry.Content)
		name := names.allocate(BaseName("", entry.Title, "kb", entry.ID), entry.ID)
		hash, err := run.write(manifest.KindKB, name, content)
		if err != nil {
			return err
		}
		run.next.KB[name] = manifest.KBEntry{ID: entry.ID, Title: entry.Title, Hash: hash}
		result.Written++
	}
	return nil
}

func (puller *Puller) pullServices(ctx context.Context, run *pullRun, result *models.KindResult) error {
	services, err := puller.client.ListServices(ctx)
	if err != nil {
		return err
	}

	names := newNameAllocator(layoutOf(manifest.KindServices).ext)
	for _, service := range services {
		content, err := encodeFile(serviceToFile(service))
		if err != nil {
			result.Skipped++
			continue
		}
		name := names.allocate(BaseName(service.Slug, service.Name, "service", service.ID), service.ID)
		hash, err := run.write(manifest.KindServices, name, content)
		if err != nil {
			return err
		}
		run.next.Services[name] = manifest.ServiceEntry{ID: service.ID, Slug: service.Slug, Hash: hash}
		result.Written++
	}
	return nil
}

func (puller *Puller) pullProducts(ctx context.Context, run *pullRun, result *models.KindResult) error {
	products, err := puller.client.ListProducts(ctx)
	if err != nil {
		return err
	}

	names := newNameAllocator(layoutOf(manifest.KindProducts).ext)
	for _, product := range products {
		content, err := encodeFile(productToFile(product))
		if err != nil {
			result.Skipped++
			continue
		}
		name := names.allocate(BaseName(product.Slug, product.Name, "product", product.ID), product.ID)
		hash, err := run.write(manifest.KindProducts, name, content)
		if err != nil {
			return err
		}
		run.next.Products[name] = manifest.ProductEntry{ID: product.ID, Name: product.Name, Hash: hash}
		result.Written++
	}
	return nil
}
