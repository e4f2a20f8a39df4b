package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/meysamhadeli/solid/constants/lipgloss"
	contracts_provider "github.com/meysamhadeli/solid/providers/contracts"
	"github.com/meysamhadeli/solid/sync_engine"
	sync_models "github.com/meysamhadeli/solid/sync_engine/models"
	"github.com/meysamhadeli/solid/token_management/models"
	"github.com/meysamhadeli/solid/utils"
	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download company content into the project directory",
	Long: `The 'pull' command writes settings, pages, knowledge-base articles, services
and products as local files and rebuilds .solid/manifest.json from them.
Local files are overwritten; nothing is deleted. A project pulled for another
company is refused unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		options := pullOptions{}
		options.dir, _ = cmd.Flags().GetString("dir")
		options.force, _ = cmd.Flags().GetBool("force")
		options.pagesOnly, _ = cmd.Flags().GetBool("pages-only")
		options.kbOnly, _ = cmd.Flags().GetBool("kb-only")
		return handlePullCommand(cmd, rootDependencies, options)
	},
}

type pullOptions struct {
	dir       string
	force     bool
	pagesOnly bool
	kbOnly    bool
}

func init() {
	pullCmd.Flags().StringP("dir", "d", ".", "Project directory")
	pullCmd.Flags().BoolP("force", "f", false, "Overwrite a project that belongs to another company")
	pullCmd.Flags().Bool("pages-only", false, "Only pull pages")
	pullCmd.Flags().Bool("kb-only", false, "Only pull knowledge-base articles")

	rootCmd.AddCommand(pullCmd)
}

func handlePullCommand(cmd *cobra.Command, rootDependencies *RootDependencies, options pullOptions) error {
	session, err := rootDependencies.Session()
	if err != nil {
		return err
	}
	client := rootDependencies.Client(session)

	warnUncommittedEdits(cmd.Context(), rootDependencies, projectDir(rootDependencies.Cwd, options.dir))

	stop := rootDependencies.startSpinner("Pulling content...")
	result, err := runPull(cmd.Context(), rootDependencies, session, client, options)
	stop()
	if result != nil {
		if renderErr := renderPullResult(rootDependencies, result); renderErr != nil {
			return renderErr
		}
	}
	return err
}

// warnUncommittedEdits points out local edits that pull is about to overwrite
// when the project is tracked in git.
func warnUncommittedEdits(ctx context.Context, rootDependencies *RootDependencies, dir string) {
	git := utils.NewGitOperations(dir)
	if !git.IsGitRepo(ctx) {
		return
	}
	files, err := git.UncommittedFiles(ctx, "pages", "kb", "services", "products", sync_engine.SettingsFile)
	if err != nil {
		rootDependencies.Logger.Debug("git status failed", "error", err)
		return
	}
	if len(files) > 0 {
		fmt.Fprintln(rootDependencies.Out, lipgloss.Yellow.Render(
			fmt.Sprintf("! %d file(s) with uncommitted changes will be overwritten: %s", len(files), strings.Join(files, ", "))))
	}
}

func runPull(ctx context.Context, rootDependencies *RootDependencies, session *models.AuthState, client contracts_provider.IResourceClient, options pullOptions) (*sync_models.PullResult, error) {
	dir := projectDir(rootDependencies.Cwd, options.dir)
	puller := sync_engine.NewPuller(client, rootDependencies.Logger, rootDependencies.Config.KBPullLimit)

	tenant := sync_engine.Tenant{
		CompanyID:   session.CompanyID,
		CompanyName: session.CompanyName,
		APIURL:      session.APIURL,
	}
	if tenant.APIURL == "" {
		tenant.APIURL = rootDependencies.Config.APIURL
	}

	return puller.Pull(ctx, dir, tenant, sync_engine.PullOptions{
		Scope: sync_models.ScopeFromFlags(options.pagesOnly, options.kbOnly, false),
		Force: options.force,
	})
}

func renderPullResult(rootDependencies *RootDependencies, result *sync_models.PullResult) error {
	if rootDependencies.StructuredOutput() {
		return rootDependencies.Render(result, utils.Table{})
	}

	table := utils.Table{Header: []string{"KIND", "WRITTEN", "SKIPPED", "STATUS"}}
	for _, kind := range result.Kinds {
		status := lipgloss.Green.Render("ok")
		if kind.Failed {
			status = lipgloss.Red.Render("failed: " + kind.Error)
		}
		table.Rows = append(table.Rows, []string{
			string(kind.Kind),
			strconv.Itoa(kind.Written),
			strconv.Itoa(kind.Skipped),
			status,
		})
	}
	if err := utils.RenderTable(rootDependencies.Out, table); err != nil {
		return err
	}

	if failed := result.FailedKinds(); len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for _, kind := range failed {
			names = append(names, string(kind))
		}
		fmt.Fprintln(rootDependencies.Out, lipgloss.Yellow.Render(
			fmt.Sprintf("! Could not fetch %s; any previous mappings for them were kept", strings.Join(names, ", "))))
	}
	if !result.PulledAt.IsZero() {
		fmt.Fprintln(rootDependencies.Out, lipgloss.Green.Render(
			fmt.Sprintf("✓ Pulled %d files for %s into %s", result.Written(), result.CompanyName, result.Dir)))
	}
	return nil
}
