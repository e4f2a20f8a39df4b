// Package manifest persists the mapping between local resource files and
// remote record IDs for one project directory.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/meysamhadeli/solid/apperr"
	"github.com/meysamhadeli/solid/utils"
)

const (
	Dir      = ".solid"
	FileName = "manifest.json"
)

// Kind names one of the four mapped resource kinds.
type Kind string

const (
	KindPages    Kind = "pages"
	KindKB       Kind = "kb"
	KindServices Kind = "services"
	KindProducts Kind = "products"
)

// Kinds lists the mapped kinds in processing order.
var Kinds = []Kind{KindPages, KindKB, KindServices, KindProducts}

type PageEntry struct {
	ID        int64      `json:"id"`
	Slug      string     `json:"slug"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Hash      string     `json:"hash,omitempty"`
}

type KBEntry struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Hash  string `json:"hash,omitempty"`
}

type ServiceEntry struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Hash string `json:"hash,omitempty"`
}

type ProductEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Hash string `json:"hash,omitempty"`
}

// Manifest records which company a project belongs to and, per kind, which
// local file maps to which remote record. Keys are file basenames.
type Manifest struct {
	CompanyID   int64                   `json:"company_id"`
	CompanyName string                  `json:"company_name"`
	PulledAt    time.Time               `json:"pulled_at"`
	APIURL      string                  `json:"api_url,omitempty"`
	Pages       map[string]PageEntry    `json:"pages"`
	KB          map[string]KBEntry      `json:"kb"`
	Services    map[string]ServiceEntry `json:"services"`
	Products    map[string]ProductEntry `json:"products"`
}

// New returns an empty manifest owned by the given company.
func New(companyID int64, companyName string, apiURL string) *Manifest {
	m := &Manifest{
		CompanyID:   companyID,
		CompanyName: companyName,
		APIURL:      apiURL,
	}
	m.ensureMaps()
	return m
}

func (m *Manifest) ensureMaps() {
	if m.Pages == nil {
		m.Pages = map[string]PageEntry{}
	}
	if m.KB == nil {
		m.KB = map[string]KBEntry{}
	}
	if m.Services == nil {
		m.Services = map[string]ServiceEntry{}
	}
	if m.Products == nil {
		m.Products = map[string]ProductEntry{}
	}
}

// Reset empties the mappings of the given kinds.
func (m *Manifest) Reset(kinds ...Kind) {
	for _, kind := range kinds {
		switch kind {
		case KindPages:
			m.Pages = map[string]PageEntry{}
		case KindKB:
			m.KB = map[string]KBEntry{}
		case KindServices:
			m.Services = map[string]ServiceEntry{}
		case KindProducts:
			m.Products = map[string]ProductEntry{}
		}
	}
}

// Lookup returns the remote ID mapped to file for kind.
func (m *Manifest) Lookup(kind Kind, file string) (int64, bool) {
	switch kind {
	case KindPages:
		entry, ok := m.Pages[file]
		return entry.ID, ok
	case KindKB:
		entry, ok := m.KB[file]
		return entry.ID, ok
	case KindServices:
		entry, ok := m.Services[file]
		return entry.ID, ok
	case KindProducts:
		entry, ok := m.Products[file]
		return entry.ID, ok
	}
	return 0, false
}

// Hash returns the content hash recorded for file, if any.
func (m *Manifest) Hash(kind Kind, file string) string {
	switch kind {
	case KindPages:
		return m.Pages[file].Hash
	case KindKB:
		return m.KB[file].Hash
	case KindServices:
		return m.Services[file].Hash
	case KindProducts:
		return m.Products[file].Hash
	}
	return ""
}

// Files returns the mapped basenames of kind.
func (m *Manifest) Files(kind Kind) []string {
	var files []string
	switch kind {
	case KindPages:
		for file := range m.Pages {
			files = append(files, file)
		}
	case KindKB:
		for file := range m.KB {
			files = append(files, file)
		}
	case KindServices:
		for file := range m.Services {
			files = append(files, file)
		}
	case KindProducts:
		for file := range m.Products {
			files = append(files, file)
		}
	}
	return files
}

// Clone returns a deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	clone := *m
	clone.Pages = make(map[string]PageEntry, len(m.Pages))
	for k, v := range m.Pages {
		clone.Pages[k] = v
	}
	clone.KB = make(map[string]KBEntry, len(m.KB))
	for k, v := range m.KB {
		clone.KB[k] = v
	}
	clone.Services = make(map[string]ServiceEntry, len(m.Services))
	for k, v := range m.Services {
		clone.Services[k] = v
	}
	clone.Products = make(map[string]ProductEntry, len(m.Products))
	for k, v := range m.Products {
		clone.Products[k] = v
	}
	return &clone
}

// Path returns the manifest location inside a project directory.
func Path(projectDir string) string {
	return filepath.Join(projectDir, Dir, FileName)
}

// Load reads the project's manifest. A missing file yields
// ErrManifestNotFound; an unparseable one a CorruptManifestError.
func Load(projectDir string) (*Manifest, error) {
	path := Path(projectDir)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperr.ErrManifestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &apperr.CorruptManifestError{Path: path, Err: err}
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, &apperr.CorruptManifestError{Path: path, Err: errors.New("manifest is null")}
	}
	m.ensureMaps()
	return &m, nil
}

// Save replaces the project's manifest atomically.
func Save(projectDir string, m *Manifest) error {
	m.ensureMaps()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling manifest: %w", err)
	}
	data = append(data, '\n')
	return utils.WriteFileAtomic(Path(projectDir), data, 0o644)
}

// VerifyOwnership fails when the manifest was pulled for another company.
func VerifyOwnership(m *Manifest, expectedCompanyID int64) error {
	if m.CompanyID != expectedCompanyID {
		return &apperr.TenantMismatchError{
			ManifestCompanyID: m.CompanyID,
			SessionCompanyID:  expectedCompanyID,
		}
	}
	return nil
}
