package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/remit/internal/validation"
)

// RegistrationInput holds the raw answers of the registration wizard.
type RegistrationInput struct {
	Username       string
	Email          string
	PhoneNumber    string
	OpeningBalance string
}

// PromptRegistration fills in whatever current leaves empty.
func PromptRegistration(current RegistrationInput) (RegistrationInput, error) {
	input := current
	if input.OpeningBalance == "" {
		input.OpeningBalance = "0"
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username:").
				Value(&input.Username).
				Validate(validation.ValidateUsername),
			huh.NewInput().
				Title("Email:").
				Value(&input.Email).
				Validate(validation.ValidateEmail),
			huh.NewInput().
				Title("Phone number:").
				Value(&input.PhoneNumber).
				Validate(validation.ValidatePhoneNumber),
			huh.NewInput().
				Title("Opening balance:").
				Description("Press Enter for 0").
				Value(&input.OpeningBalance).
				Validate(validation.ValidateOpeningBalance),
		).Title("Welcome to remit! Create your account"),
	).Run()
	if err != nil {
		return RegistrationInput{}, err
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)
	return input, nil
}
