package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"github.com/kachayev/nasus/config"
	nasushttp "github.com/kachayev/nasus/http"
)

// resolveCredential turns the auth configuration into the pre-encoded
// Authorization value the pipeline compares against. A user configured
// without a password is asked for one on the terminal; when no terminal
// is attached that is a startup error, never a server that silently runs
// with an empty password.
func resolveCredential(cfg config.AuthConfig) (string, error) {
	if !cfg.Enabled() {
		return "", nil
	}

	user, password := cfg.Credential()
	if password == "" {
		var err error
		password, err = promptPassword(user)
		if err != nil {
			return "", err
		}
	}

	return nasushttp.BasicCredential(user, password), nil
}

func promptPassword(user string) (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", fmt.Errorf("no password configured for user %q and no terminal to prompt on", user)
	}

	prompt := promptui.Prompt{
		Label: fmt.Sprintf("Password for %s", user),
		Mask:  '*',
		Validate: func(input string) error {
			if input == "" {
				return errors.New("password must not be empty")
			}
			return nil
		},
	}

	password, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return "", errors.New("password entry cancelled")
		}
		return "", fmt.Errorf("read password: %w", err)
	}

	return password, nil
}
