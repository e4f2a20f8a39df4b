package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meysamhadeli/solid/config"
	"github.com/meysamhadeli/solid/providers/solid"
	"github.com/meysamhadeli/solid/token_management"
	"github.com/meysamhadeli/solid/token_management/contracts"
	"github.com/meysamhadeli/solid/token_management/models"
	"github.com/meysamhadeli/solid/utils"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// RootDependencies is everything a command needs for one invocation.
type RootDependencies struct {
	Config          *config.Config
	Logger          *slog.Logger
	Cwd             string
	TokenManagement contracts.ITokenManagement
	Out             io.Writer
	Color           bool
	Interactive     bool
}

var rootCmd = &cobra.Command{
	Use:   "solid",
	Short: "Sync your company's website content with local files",
	Long: `solid pulls pages, knowledge-base articles, services, products and settings
from the Solid platform into a local project directory, and pushes your edits back.

Typical flow:
  solid login
  solid pull --dir ./site
  # edit files
  solid status --dir ./site
  solid push --dir ./site`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the command tree with a context canceled on SIGINT/SIGTERM.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("error getting current directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd, cwd)
	if err != nil {
		return nil, err
	}

	color := !termenv.EnvNoColor() && term.IsTerminal(int(os.Stdout.Fd()))
	if !color {
		pterm.DisableColor()
	}

	logger := utils.NewLogger(cfg).With(slog.String("command", cmd.CommandPath()))

	return &RootDependencies{
		Config:          cfg,
		Logger:          logger,
		Cwd:             cwd,
		TokenManagement: token_management.NewTokenManager(cfg.AuthFile()),
		Out:             cmd.OutOrStdout(),
		Color:           color,
		Interactive:     utils.IsInteractive(),
	}, nil
}

// Session loads the stored login.
func (deps *RootDependencies) Session() (*models.AuthState, error) {
	return deps.TokenManagement.Load()
}

// Client returns an API client bound to the session's token and company.
// The API URL the session was issued by takes precedence over config.
func (deps *RootDependencies) Client(session *models.AuthState) *solid.SolidClient {
	baseURL := deps.Config.APIURL
	if session != nil && session.APIURL != "" {
		baseURL = session.APIURL
	}
	solidConfig := &solid.SolidConfig{
		BaseURL:   baseURL,
		Timeout:   time.Duration(deps.Config.TimeoutSeconds) * time.Second,
		UserAgent: "solid-cli/" + deps.Config.Version,
		Logger:    deps.Logger,
	}
	if session != nil {
		solidConfig.Token = session.AccessToken
		solidConfig.CompanyID = session.CompanyID
	}
	return solid.NewSolidClient(solidConfig)
}

// Render prints value in the configured output format.
func (deps *RootDependencies) Render(value any, table utils.Table) error {
	return utils.Render(deps.Out, deps.Config.Output, value, table)
}

// StructuredOutput reports whether --output asks for machine-readable output.
func (deps *RootDependencies) StructuredOutput() bool {
	return deps.Config.Output != config.OutputTable
}

// startSpinner shows a spinner on interactive table output and returns the
// function that stops it.
func (deps *RootDependencies) startSpinner(text string) func() {
	if !deps.Interactive || deps.StructuredOutput() {
		return func() {}
	}
	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100 * time.Millisecond).
		WithRemoveWhenDone(true)

	spinnerInstance, err := spinner.Start(text)
	if err != nil {
		return func() {}
	}
	return func() {
		_ = spinnerInstance.Stop()
	}
}
