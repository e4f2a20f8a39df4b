package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/meysamhadeli/solid/constants/lipgloss"
	"github.com/meysamhadeli/solid/manifest"
	"github.com/meysamhadeli/solid/sync_engine"
	sync_models "github.com/meysamhadeli/solid/sync_engine/models"
	"github.com/meysamhadeli/solid/utils"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what push would send, without contacting the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("dir")
		return handleStatusCommand(rootDependencies, dir)
	},
}

func init() {
	statusCmd.Flags().StringP("dir", "d", ".", "Project directory")
	rootCmd.AddCommand(statusCmd)
}

// File states reported by status.
const (
	stateNew       = "new"
	stateModified  = "modified"
	stateUnchanged = "unchanged"
	stateMissing   = "missing locally"
)

type statusEntry struct {
	Kind  string `json:"kind" yaml:"kind"`
	File  string `json:"file" yaml:"file"`
	State string `json:"state" yaml:"state"`
	ID    int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Note  string `json:"note,omitempty" yaml:"note,omitempty"`
}

type statusReport struct {
	CompanyID   int64         `json:"company_id" yaml:"company_id"`
	CompanyName string        `json:"company_name" yaml:"company_name"`
	PulledAt    string        `json:"pulled_at" yaml:"pulled_at"`
	Warning     string        `json:"warning,omitempty" yaml:"warning,omitempty"`
	Entries     []statusEntry `json:"entries" yaml:"entries"`
}

func handleStatusCommand(rootDependencies *RootDependencies, dirFlag string) error {
	dir := projectDir(rootDependencies.Cwd, dirFlag)
	report, err := buildStatus(dir)
	if err != nil {
		return err
	}

	if session, err := rootDependencies.Session(); err == nil {
		if err := manifest.VerifyOwnership(&manifest.Manifest{CompanyID: report.CompanyID}, session.CompanyID); err != nil {
			report.Warning = err.Error()
		}
	}

	if rootDependencies.StructuredOutput() {
		return rootDependencies.Render(report, utils.Table{})
	}

	if report.Warning != "" {
		fmt.Fprintln(rootDependencies.Out, lipgloss.Yellow.Render("! "+report.Warning))
	}

	fmt.Fprintln(rootDependencies.Out, lipgloss.Info.Render(
		fmt.Sprintf("%s (company %d), last synced %s", report.CompanyName, report.CompanyID, report.PulledAt)))

	table := utils.Table{Header: []string{"KIND", "FILE", "STATE", "ID", "NOTE"}}
	for _, entry := range report.Entries {
		id := ""
		if entry.ID > 0 {
			id = strconv.FormatInt(entry.ID, 10)
		}
		table.Rows = append(table.Rows, []string{entry.Kind, entry.File, styleState(entry.State), id, entry.Note})
	}
	return utils.RenderTable(rootDependencies.Out, table)
}

// buildStatus classifies every local file and every mapped file that is
// gone. It never contacts the server.
func buildStatus(dir string) (*statusReport, error) {
	m, err := loadProjectManifest(dir)
	if err != nil {
		return nil, err
	}

	changes, err := sync_engine.Detect(dir, m, sync_models.FullScope())
	if err != nil {
		return nil, err
	}

	report := &statusReport{
		CompanyID:   m.CompanyID,
		CompanyName: m.CompanyName,
		PulledAt:    m.PulledAt.Local().Format("2006-01-02 15:04:05"),
		Entries:     []statusEntry{},
	}

	for _, record := range changes.Records {
		entry := statusEntry{Kind: string(record.Kind), File: record.File, ID: record.ID}
		switch {
		case record.Kind == sync_models.KindSettings:
			entry.State = stateModified
			entry.Note = "website_settings are sent as a whole"
		case record.Action == sync_models.ActionCreate:
			entry.State = stateNew
		default:
			recorded := m.Hash(manifest.Kind(record.Kind), record.File)
			if recorded != "" && recorded == record.Hash {
				entry.State = stateUnchanged
			} else {
				entry.State = stateModified
			}
		}

		if record.Kind == sync_models.KindServices || record.Kind == sync_models.KindProducts {
			entry.Note = "read-only, not pushed"
		}
		if record.Note != "" {
			entry.Note = record.Note
		}
		if record.FrontmatterID != 0 && record.ID != 0 && record.FrontmatterID != record.ID {
			entry.Note = fmt.Sprintf("frontmatter id %d ignored, manifest id %d wins", record.FrontmatterID, record.ID)
		}
		report.Entries = append(report.Entries, entry)
	}

	for _, kind := range manifest.Kinds {
		files := m.Files(kind)
		sort.Strings(files)
		for _, file := range files {
			_, err := os.Stat(filepath.Join(dir, string(kind), file))
			if err == nil {
				continue
			}
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("error checking %s/%s: %w", kind, file, err)
			}
			id, _ := m.Lookup(kind, file)
			report.Entries = append(report.Entries, statusEntry{
				Kind:  string(kind),
				File:  file,
				State: stateMissing,
				ID:    id,
				Note:  "push never deletes remotely",
			})
		}
	}

	return report, nil
}

func styleState(state string) string {
	switch state {
	case stateNew:
		return lipgloss.Green.Render(state)
	case stateModified:
		return lipgloss.Yellow.Render(state)
	case stateMissing:
		return lipgloss.Red.Render(state)
	}
	return lipgloss.Gray.Render(state)
}
