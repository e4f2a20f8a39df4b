package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/meysamhadeli/solid/constants/lipgloss"
	"github.com/meysamhadeli/solid/manifest"
	contracts_provider "github.com/meysamhadeli/solid/providers/contracts"
	"github.com/meysamhadeli/solid/sync_engine"
	sync_models "github.com/meysamhadeli/solid/sync_engine/models"
	"github.com/meysamhadeli/solid/token_management/models"
	"github.com/meysamhadeli/solid/utils"
	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Send local edits back to the company",
	Long: `The 'push' command compares the project directory with .solid/manifest.json.
Files listed in the manifest update their remote record; other files are
created. Pages, knowledge-base articles and settings are pushed; services and
products are read-only. Nothing is ever deleted remotely.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		options := pushOptions{}
		options.dir, _ = cmd.Flags().GetString("dir")
		options.dryRun, _ = cmd.Flags().GetBool("dry-run")
		options.yes, _ = cmd.Flags().GetBool("yes")
		options.pagesOnly, _ = cmd.Flags().GetBool("pages-only")
		options.kbOnly, _ = cmd.Flags().GetBool("kb-only")
		options.settingsOnly, _ = cmd.Flags().GetBool("settings-only")
		return handlePushCommand(cmd, rootDependencies, options)
	},
}

type pushOptions struct {
	dir          string
	dryRun       bool
	yes          bool
	pagesOnly    bool
	kbOnly       bool
	settingsOnly bool
}

func init() {
	pushCmd.Flags().StringP("dir", "d", ".", "Project directory")
	pushCmd.Flags().Bool("dry-run", false, "Show what would be pushed without sending anything")
	pushCmd.Flags().BoolP("yes", "y", false, "Push without asking for confirmation")
	pushCmd.Flags().Bool("pages-only", false, "Only push pages")
	pushCmd.Flags().Bool("kb-only", false, "Only push knowledge-base articles")
	pushCmd.Flags().Bool("settings-only", false, "Only push website settings")

	rootCmd.AddCommand(pushCmd)
}

func handlePushCommand(cmd *cobra.Command, rootDependencies *RootDependencies, options pushOptions) error {
	session, err := rootDependencies.Session()
	if err != nil {
		return err
	}
	client := rootDependencies.Client(session)

	confirm := func(question string) (bool, error) {
		return utils.Confirm(question, options.yes, rootDependencies.Interactive)
	}

	result, err := runPush(cmd.Context(), rootDependencies, session, client, options, confirm)
	if result != nil {
		if renderErr := renderPushResult(rootDependencies, result); renderErr != nil {
			return renderErr
		}
	}
	return err
}

// runPush checks every precondition before detection, so a failed check
// never reaches the remote.
func runPush(
	ctx context.Context,
	rootDependencies *RootDependencies,
	session *models.AuthState,
	client contracts_provider.IResourceClient,
	options pushOptions,
	confirm func(question string) (bool, error),
) (*sync_models.PushResult, error) {
	dir := projectDir(rootDependencies.Cwd, options.dir)

	m, err := loadProjectManifest(dir)
	if err != nil {
		return nil, err
	}
	if err := manifest.VerifyOwnership(m, session.CompanyID); err != nil {
		return nil, err
	}

	changes, err := sync_engine.Detect(dir, m, sync_engine.PushScope(options.pagesOnly, options.kbOnly, options.settingsOnly))
	if err != nil {
		return nil, err
	}

	if !changes.Empty() {
		if err := renderPushPreview(rootDependencies, changes); err != nil {
			return nil, err
		}
	}

	if options.dryRun {
		if rootDependencies.StructuredOutput() {
			return nil, rootDependencies.Render(changes, utils.Table{})
		}
		fmt.Fprintln(rootDependencies.Out, lipgloss.Yellow.Render("Dry run: nothing was sent"))
		return nil, nil
	}

	if !changes.Empty() {
		question := fmt.Sprintf("Push %d creates, %d updates%s to %s?",
			changes.Creates, changes.Updates, settingsSuffix(changes), session.CompanyName)
		ok, err := confirm(question)
		if err != nil {
			return nil, err
		}
		if !ok {
			fmt.Fprintln(rootDependencies.Out, lipgloss.Yellow.Render("Push cancelled"))
			return nil, nil
		}
	}

	stop := rootDependencies.startSpinner("Pushing changes...")
	defer stop()
	pusher := sync_engine.NewPusher(client, rootDependencies.Logger)
	return pusher.Push(ctx, dir, changes, m)
}

func settingsSuffix(changes *sync_models.ChangeSet) string {
	if changes.SettingsChanged {
		return " and settings"
	}
	return ""
}

func renderPushPreview(rootDependencies *RootDependencies, changes *sync_models.ChangeSet) error {
	if rootDependencies.StructuredOutput() {
		return nil
	}

	table := utils.Table{Header: []string{"KIND", "ACTION", "FILE", "ID"}}
	for _, record := range changes.Records {
		id := ""
		if record.ID > 0 {
			id = strconv.FormatInt(record.ID, 10)
		}
		table.Rows = append(table.Rows, []string{string(record.Kind), string(record.Action), record.File, id})
	}
	if err := utils.RenderTable(rootDependencies.Out, table); err != nil {
		return err
	}

	for _, record := range changes.Records {
		if record.Note != "" {
			fmt.Fprintln(rootDependencies.Out, lipgloss.Yellow.Render(fmt.Sprintf("! %s: %s", record.File, record.Note)))
		}
		if record.Kind == sync_models.KindKB && record.Action == sync_models.ActionUpdate &&
			record.FrontmatterID != 0 && record.FrontmatterID != record.ID {
			fmt.Fprintln(rootDependencies.Out, lipgloss.Yellow.Render(fmt.Sprintf(
				"! %s: frontmatter id %d is ignored, updating %d from the manifest",
				record.File, record.FrontmatterID, record.ID)))
		}
	}
	return nil
}

func renderPushResult(rootDependencies *RootDependencies, result *sync_models.PushResult) error {
	if rootDependencies.StructuredOutput() {
		return rootDependencies.Render(result, utils.Table{})
	}

	if result.NothingToDo {
		fmt.Fprintln(rootDependencies.Out, lipgloss.Green.Render("✓ Nothing to push"))
		return nil
	}

	for _, failure := range result.Failures {
		fmt.Fprintln(rootDependencies.Out, lipgloss.Red.Render(
			fmt.Sprintf("✗ %s %s/%s: %s", failure.Action, failure.Kind, failure.File, failure.Message)))
	}

	summary := fmt.Sprintf("Pushed %d (%d created, %d updated), %d failed",
		result.Pushed, result.Created, result.Updated, result.Errors)
	style := lipgloss.Green
	if result.Errors > 0 {
		style = lipgloss.Yellow
	}
	fmt.Fprintln(rootDependencies.Out, lipgloss.BoxStyle.Render(style.Render(summary)))
	return nil
}
