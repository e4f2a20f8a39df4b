package cmd

import (
	"errors"
	"fmt"

	"github.com/meysamhadeli/solid/constants/lipgloss"
	"github.com/meysamhadeli/solid/token_management/models"
	"github.com/meysamhadeli/solid/utils"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store a session for later commands",
	Long: `The 'login' command signs in with your email and password and stores the
session in the solid home directory (~/.solid/auth.json by default).
Without a terminal, pass --email and --password-file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		email, _ := cmd.Flags().GetString("email")
		passwordFile, _ := cmd.Flags().GetString("password-file")
		return handleLoginCommand(cmd, rootDependencies, email, passwordFile)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		if err := rootDependencies.TokenManagement.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(rootDependencies.Out, lipgloss.Green.Render("✓ Logged out"))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user and company",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleWhoamiCommand(cmd, rootDependencies)
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password-file", "", "Read the password from this file instead of prompting")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func handleLoginCommand(cmd *cobra.Command, rootDependencies *RootDependencies, email string, passwordFile string) error {
	var creds *utils.Credentials
	switch {
	case passwordFile != "":
		if email == "" {
			return errors.New("--email is required with --password-file")
		}
		password, err := utils.ReadSecretFile(passwordFile)
		if err != nil {
			return err
		}
		creds = &utils.Credentials{Email: email, Password: password}
	case rootDependencies.Interactive:
		var err error
		creds, err = utils.PromptCredentials(email)
		if err != nil {
			return err
		}
	default:
		return errors.New("no terminal available for the login prompt (use --email and --password-file)")
	}

	client := rootDependencies.Client(nil)
	stop := rootDependencies.startSpinner("Signing in...")
	session, err := client.Login(cmd.Context(), creds.Email, creds.Password)
	stop()
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	companyID, companyName := session.Company.ID, session.Company.Name
	if companyName == "" {
		companyName = session.User.Company.Name
	}

	state := &models.AuthState{
		AccessToken: session.AccessToken,
		Email:       session.User.Email,
		UserID:      session.User.ID,
		CompanyID:   companyID,
		CompanyName: companyName,
		APIURL:      rootDependencies.Config.APIURL,
		ExpiresAt:   session.ExpiresAt,
	}
	if err := rootDependencies.TokenManagement.Save(state); err != nil {
		return err
	}

	rootDependencies.Logger.Info("logged in",
		"user_id", state.UserID,
		"company_id", state.CompanyID)
	fmt.Fprintln(rootDependencies.Out, lipgloss.Green.Render(
		fmt.Sprintf("✓ Logged in as %s (%s, company %d)", state.Email, state.CompanyName, state.CompanyID)))
	return nil
}

type whoami struct {
	UserID      int64  `json:"user_id" yaml:"user_id"`
	Email       string `json:"email" yaml:"email"`
	Name        string `json:"name" yaml:"name"`
	Role        string `json:"role" yaml:"role"`
	CompanyID   int64  `json:"company_id" yaml:"company_id"`
	CompanyName string `json:"company_name" yaml:"company_name"`
	APIURL      string `json:"api_url" yaml:"api_url"`
}

func handleWhoamiCommand(cmd *cobra.Command, rootDependencies *RootDependencies) error {
	session, err := rootDependencies.Session()
	if err != nil {
		return err
	}

	user, err := rootDependencies.Client(session).Me(cmd.Context())
	if err != nil {
		return err
	}

	info := whoami{
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		CompanyID:   session.CompanyID,
		CompanyName: session.CompanyName,
		APIURL:      session.APIURL,
	}
	return rootDependencies.Render(info, utils.Table{
		Header: []string{"FIELD", "VALUE"},
		Rows: [][]string{
			{"User", fmt.Sprintf("%s (%d)", info.Email, info.UserID)},
			{"Name", info.Name},
			{"Role", info.Role},
			{"Company", fmt.Sprintf("%s (%d)", info.CompanyName, info.CompanyID)},
			{"API", info.APIURL},
		},
	})
}
