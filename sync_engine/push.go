package sync_engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/meysamhadeli/solid/apperr"
	"github.com/meysamhadeli/solid/manifest"
	"github.com/meysamhadeli/solid/providers/contracts"
	"github.com/meysamhadeli/solid/sync_engine/models"
)

// pushOrder is the dispatch order. Kinds missing here have no remote write
// endpoint and are never pushed.
var pushOrder = map[models.Kind]int{
	models.KindPages:    0,
	models.KindKB:       1,
	models.KindSettings: 2,
}

// PushScope builds the scope push detects with from its --*-only flags.
func PushScope(pagesOnly bool, kbOnly bool, settingsOnly bool) models.Scope {
	scope := models.ScopeFromFlags(pagesOnly, kbOnly, settingsOnly)
	scope.Services = false
	scope.Products = false
	return scope
}

// Pusher sends detected changes to the remote and records new mappings.
type Pusher struct {
	client contracts.IResourceClient
	logger *slog.Logger
	now    func() time.Time
}

func NewPusher(client contracts.IResourceClient, logger *slog.Logger) *Pusher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pusher{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// Push dispatches every record one at a time. A failed record is counted
// and dispatch moves on; the manifest is saved once at the end, including
// when nothing was pushed.
func (pusher *Pusher) Push(ctx context.Context, dir string, changes *models.ChangeSet, m *manifest.Manifest) (*models.PushResult, error) {
	records := orderedForPush(changes)
	result := &models.PushResult{NothingToDo: len(records) == 0}

	for _, record := range records {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}

		if err := pusher.dispatch(ctx, record, m); err != nil {
			result.Errors++
			result.Failures = append(result.Failures, models.Failure{
				Kind:    record.Kind,
				File:    record.File,
				Action:  record.Action,
				Message: failureMessage(err),
			})
			pusher.logger.WarnContext(ctx, "push failed",
				slog.String("kind", string(record.Kind)),
				slog.String("file", record.File),
				slog.String("action", string(record.Action)),
				slog.String("error", err.Error()))
			continue
		}

		result.Pushed++
		if record.Action == models.ActionCreate {
			result.Created++
		} else {
			result.Updated++
		}
		pusher.logger.InfoContext(ctx, "pushed",
			slog.String("kind", string(record.Kind)),
			slog.String("file", record.File),
			slog.String("action", string(record.Action)))
	}

	m.PulledAt = pusher.now().UTC()
	if err := manifest.Save(dir, m); err != nil {
		return result, err
	}

	if result.Interrupted {
		return result, fmt.Errorf("push interrupted: %w", ctx.Err())
	}
	if result.TotalFailure() {
		return result, fmt.Errorf("%w: all %d records failed", apperr.ErrPushFailed, result.Errors)
	}
	return result, nil
}

func orderedForPush(changes *models.ChangeSet) []models.ChangeRecord {
	if changes == nil {
		return nil
	}
	var records []models.ChangeRecord
	for _, record := range changes.Records {
		if _, ok := pushOrder[record.Kind]; ok {
			records = append(records, record)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return pushOrder[records[i].Kind] < pushOrder[records[j].Kind]
	})
	return records
}

func (pusher *Pusher) dispatch(ctx context.Context, record models.ChangeRecord, m *manifest.Manifest) error {
	switch record.Kind {
	case models.KindPages:
		return pusher.pushPage(ctx, record, m)
	case models.KindKB:
		return pusher.pushKB(ctx, record, m)
	case models.KindSettings:
		return pusher.client.UpdateCompanySettings(ctx, map[string]any{"website_settings": record.Data})
	}
	return fmt.Errorf("kind %s cannot be pushed", record.Kind)
}

func (pusher *Pusher) pushPage(ctx context.Context, record models.ChangeRecord, m *manifest.Manifest) error {
	patch := pagePatch(record.Data)

	if record.Action == models.ActionUpdate {
		return pusher.client.UpdatePage(ctx, record.ID, patch)
	}

	page, err := pusher.client.CreatePage(ctx, patch)
	if err != nil {
		return err
	}
	slug := page.Slug
	if slug == "" {
		slug, _ = record.Data["slug"].(string)
	}
	updatedAt := pusher.now().UTC()
	m.Pages[record.File] = manifest.PageEntry{
		ID:        page.ID,
		Slug:      slug,
		UpdatedAt: &updatedAt,
		Hash:      record.Hash,
	}
	return nil
}

func (pusher *Pusher) pushKB(ctx context.Context, record models.ChangeRecord, m *manifest.Manifest) error {
	data := map[string]any{
		"title":    record.Data["title"],
		"content":  record.Data["content"],
		"category": record.Data["category"],
	}

	if record.Action == models.ActionUpdate {
		// The manifest mapping decides the target, not the frontmatter id.
		return pusher.client.UpdateKB(ctx, record.ID, data)
	}

	entry, err := pusher.client.CreateKB(ctx, data)
	if err != nil {
		return err
	}
	title := entry.Title
	if title == "" {
		title, _ = data["title"].(string)
	}
	m.KB[record.File] = manifest.KBEntry{ID: entry.ID, Title: title, Hash: record.Hash}
	return nil
}

func failureMessage(err error) string {
	var remoteErr *apperr.RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return remoteErr.Message
	}
	return err.Error()
}
