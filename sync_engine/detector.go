package sync_engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/meysamhadeli/solid/apperr"
	"github.com/meysamhadeli/solid/manifest"
	"github.com/meysamhadeli/solid/sync_engine/models"
)

// SettingsFile is the company settings snapshot at the project root.
const SettingsFile = "solid.config.json"

// kindLayout describes where a mapped kind lives on disk.
type kindLayout struct {
	kind manifest.Kind
	dir  string
	ext  string
}

var layouts = []kindLayout{
	{kind: manifest.KindPages, dir: "pages", ext: ".json"},
	{kind: manifest.KindKB, dir: "kb", ext: ".md"},
	{kind: manifest.KindServices, dir: "services", ext: ".json"},
	{kind: manifest.KindProducts, dir: "products", ext: ".json"},
}

func layoutOf(kind manifest.Kind) kindLayout {
	for _, layout := range layouts {
		if layout.kind == kind {
			return layout
		}
	}
	return kindLayout{kind: kind, dir: string(kind), ext: ".json"}
}

// Detect scans the project directory and classifies every resource file as
// a create or an update against the manifest. It makes no remote calls and
// writes nothing; a file removed locally simply yields no record.
func Detect(dir string, m *manifest.Manifest, scope models.Scope) (*models.ChangeSet, error) {
	changes := &models.ChangeSet{Records: []models.ChangeRecord{}}

	for _, layout := range layouts {
		if !scope.Includes(models.Kind(layout.kind)) {
			continue
		}
		records, err := detectKind(dir, m, layout)
		if err != nil {
			return nil, err
		}
		for _, record := range records {
			changes.Add(record)
		}
	}

	if scope.Settings {
		record, err := detectSettings(dir)
		if err != nil {
			return nil, err
		}
		if record != nil {
			changes.Add(*record)
		}
	}

	return changes, nil
}

func detectKind(dir string, m *manifest.Manifest, layout kindLayout) ([]models.ChangeRecord, error) {
	kindDir := filepath.Join(dir, layout.dir)
	entries, err := os.ReadDir(kindDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", kindDir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var records []models.ChangeRecord
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != layout.ext {
			continue
		}

		relPath := filepath.ToSlash(filepath.Join(layout.dir, name))
		content, err := os.ReadFile(filepath.Join(kindDir, name))
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", relPath, err)
		}

		record := models.ChangeRecord{
			Kind: models.Kind(layout.kind),
			File: name,
			Hash: ContentHash(content),
		}

		if layout.kind == manifest.KindKB {
			doc, err := ParseKBDocument(string(content))
			if err != nil {
				return nil, &apperr.CorruptLocalFileError{File: relPath, Err: err}
			}
			record.Data = map[string]any{
				"title":    doc.Title,
				"content":  doc.Content,
				"category": doc.Category,
			}
			if doc.HasID {
				record.FrontmatterID = doc.ID
			}
			if doc.InvalidID != "" {
				record.Note = fmt.Sprintf("frontmatter id %q is not an integer, ignored", doc.InvalidID)
			}
		} else {
			data, err := decodeObject(content)
			if err != nil {
				return nil, &apperr.CorruptLocalFileError{File: relPath, Err: err}
			}
			record.Data = data
		}

		if id, ok := m.Lookup(layout.kind, name); ok {
			record.Action = models.ActionUpdate
			record.ID = id
		} else {
			record.Action = models.ActionCreate
		}
		records = append(records, record)
	}
	return records, nil
}

func detectSettings(dir string) (*models.ChangeRecord, error) {
	content, err := os.ReadFile(filepath.Join(dir, SettingsFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", SettingsFile, err)
	}

	data, err := decodeObject(content)
	if err != nil {
		return nil, &apperr.CorruptLocalFileError{File: SettingsFile, Err: err}
	}

	raw, ok := data["website_settings"]
	if !ok || raw == nil {
		return nil, nil
	}
	settings, ok := raw.(map[string]any)
	if !ok {
		return nil, &apperr.CorruptLocalFileError{File: SettingsFile, Err: errors.New("website_settings is not an object")}
	}
	if len(settings) == 0 {
		return nil, nil
	}

	return &models.ChangeRecord{
		Kind:   models.KindSettings,
		File:   SettingsFile,
		Action: models.ActionUpdate,
		Data:   settings,
		Hash:   ContentHash(content),
	}, nil
}

// decodeObject parses a JSON object, keeping numbers as json.Number so they
// are sent back exactly as written.
func decodeObject(content []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid JSON: trailing data after object")
	}
	object, ok := value.(map[string]any)
	if !ok {
		return nil, errors.New("expected a JSON object")
	}
	return object, nil
}
