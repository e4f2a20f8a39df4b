package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/meysamhadeli/solid/apperr"
	"github.com/meysamhadeli/solid/constants/lipgloss"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Confirm asks a yes/no question. assumeYes skips the prompt; without a
// terminal the answer cannot be asked and ErrConfirmationRequired is returned.
func Confirm(question string, assumeYes bool, interactive bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !interactive {
		return false, apperr.ErrConfirmationRequired
	}

	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		WithConfirmStyle(pterm.NewStyle(pterm.FgGreen)).
		WithRejectStyle(pterm.NewStyle(pterm.FgRed)).
		Show(question)
}

// Credentials are what the login prompt collects.
type Credentials struct {
	Email    string
	Password string
}

// PromptCredentials shows a login form. A known email is prefilled and only
// the password is asked for.
func PromptCredentials(email string) (*Credentials, error) {
	creds := &Credentials{Email: strings.TrimSpace(email)}

	fields := []huh.Field{}
	if creds.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(&creds.Email).
			Validate(func(value string) error {
				if !strings.Contains(value, "@") {
					return errors.New("enter a valid email address")
				}
				return nil
			}))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&creds.Password).
		Validate(func(value string) error {
			if value == "" {
				return errors.New("password is required")
			}
			return nil
		}))

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, fmt.Errorf("login cancelled")
		}
		return nil, fmt.Errorf("error reading credentials: %w", err)
	}
	return creds, nil
}

// ReadSecretFile reads a password from a file ("-" for stdin), dropping
// trailing newlines.
func ReadSecretFile(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", path, err)
	}
	secret := strings.TrimRight(string(data), "\r\n")
	if secret == "" {
		return "", fmt.Errorf("file %s is empty", path)
	}
	return secret, nil
}

// PrintError prints a fatal error and the command that would fix it.
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, lipgloss.Red.Render("✗ "+err.Error()))
	if hint := apperr.Hint(err); hint != "" {
		fmt.Fprintln(os.Stderr, lipgloss.Gray.Render("  "+hint))
	}
}
