package prompts

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/hance08/remit/internal/ui"
)

// PromptUsername prompts for a username with survey, the same way the
// password is asked for right after it.
func PromptUsername(defaultValue string) (string, error) {
	var username string

	prompt := &survey.Input{
		Message: "Username:",
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &username, survey.WithValidator(survey.Required), ui.IconOption()); err != nil {
		return "", err
	}

	return strings.TrimSpace(username), nil
}

// PromptPassword reads a password without echoing it.
func PromptPassword(message string) (string, error) {
	var password string

	prompt := &survey.Password{Message: message}
	if err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required), ui.IconOption()); err != nil {
		return "", err
	}

	return password, nil
}

// PromptNewPassword asks twice and fails when the answers differ.
func PromptNewPassword() (string, error) {
	first, err := PromptPassword("Password:")
	if err != nil {
		return "", err
	}

	second, err := PromptPassword("Repeat password:")
	if err != nil {
		return "", err
	}

	if first != second {
		return "", fmt.Errorf("passwords do not match")
	}

	return first, nil
}

// ConfirmDestructive asks a yes/no question that defaults to no.
func ConfirmDestructive(message string) (bool, error) {
	var confirmation bool

	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmation, ui.WarningIconOption()); err != nil {
		return false, err
	}

	return confirmation, nil
}
