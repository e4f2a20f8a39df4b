package models

import "github.com/meysamhadeli/solid/manifest"

// Kind is the resource kind of a change record. The mapped kinds share their
// names with manifest.Kind; settings has no mapping.
type Kind string

const (
	KindPages    = Kind(manifest.KindPages)
	KindKB       = Kind(manifest.KindKB)
	KindServices = Kind(manifest.KindServices)
	KindProducts = Kind(manifest.KindProducts)
	KindSettings Kind = "settings"
)

// Action says whether a record targets a new or an existing remote record.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// ChangeRecord is one local file that push would send.
type ChangeRecord struct {
	Kind   Kind           `json:"kind" yaml:"kind"`
	File   string         `json:"file" yaml:"file"`
	Action Action         `json:"action" yaml:"action"`
	ID     int64          `json:"id,omitempty" yaml:"id,omitempty"`
	Data   map[string]any `json:"-" yaml:"-"`

	// FrontmatterID is the id written in a KB file header, kept to report
	// when it disagrees with the manifest.
	FrontmatterID int64 `json:"frontmatter_id,omitempty" yaml:"frontmatter_id,omitempty"`
	// Note flags something about the file that does not block a push.
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
	// Hash is the content hash of the file as read.
	Hash string `json:"-" yaml:"-"`
}

// ChangeSet is the ordered result of change detection.
type ChangeSet struct {
	Records         []ChangeRecord `json:"records" yaml:"records"`
	Creates         int            `json:"creates" yaml:"creates"`
	Updates         int            `json:"updates" yaml:"updates"`
	SettingsChanged bool           `json:"settings_changed" yaml:"settings_changed"`
}

// Add appends a record and keeps the counts in step.
func (c *ChangeSet) Add(record ChangeRecord) {
	c.Records = append(c.Records, record)
	switch {
	case record.Kind == KindSettings:
		c.SettingsChanged = true
	case record.Action == ActionCreate:
		c.Creates++
	case record.Action == ActionUpdate:
		c.Updates++
	}
}

// Empty reports whether there is nothing to push.
func (c *ChangeSet) Empty() bool {
	return len(c.Records) == 0
}
