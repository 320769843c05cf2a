package cmd

import (
	"github.com/hance08/remit/internal/app"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/service"
	"github.com/hance08/remit/internal/store"
	"github.com/hance08/remit/internal/ui/prompts"
	"github.com/hance08/remit/internal/ui/views"
	"github.com/hance08/remit/internal/utils"
	"github.com/hance08/remit/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type registerFlags struct {
	Username       string
	Email          string
	PhoneNumber    string
	OpeningBalance string
}

type registerRunner struct {
	app   *app.App
	flags *registerFlags
}

func NewRegisterCmd(application *app.App) *cobra.Command {
	flags := &registerFlags{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user and its account",
		Long: `Create a user together with the account that sends and receives money.

Missing fields are asked for interactively. The password is always prompted.

Example: remit register -u alice -e alice@mail.com -p +15550100 -b 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &registerRunner{
				app:   application,
				flags: flags,
			}
			return runner.Run(cmd)
		},
	}

	cmd.Flags().StringVarP(&flags.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&flags.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&flags.PhoneNumber, "phone", "p", "", "Phone number")
	cmd.Flags().StringVarP(&flags.OpeningBalance, "balance", "b", "", "Opening balance (default 0)")

	return cmd
}

func (r *registerRunner) Run(cmd *cobra.Command) error {
	input := prompts.RegistrationInput{
		Username:       r.flags.Username,
		Email:          r.flags.Email,
		PhoneNumber:    r.flags.PhoneNumber,
		OpeningBalance: r.flags.OpeningBalance,
	}

	if input.Username == "" || input.Email == "" || input.PhoneNumber == "" {
		var err error
		if input, err = prompts.PromptRegistration(input); err != nil {
			return err
		}
	}
	if input.OpeningBalance == "" {
		input.OpeningBalance = "0"
	}

	for _, check := range []error{
		validation.ValidateUsername(input.Username),
		validation.ValidateEmail(input.Email),
		validation.ValidatePhoneNumber(input.PhoneNumber),
		validation.ValidateOpeningBalance(input.OpeningBalance),
	} {
		if check != nil {
			return check
		}
	}

	balance, err := utils.ParseAmount(input.OpeningBalance)
	if err != nil {
		return err
	}

	password, err := prompts.PromptNewPassword()
	if err != nil {
		return err
	}

	req := service.RegistrationRequest{
		Username:       input.Username,
		Password:       password,
		Email:          input.Email,
		PhoneNumber:    input.PhoneNumber,
		OpeningBalance: balance,
	}

	var user *model.User
	err = r.app.Do(cmd.Context(), func(sess store.Session) error {
		user, err = r.app.Service.User.Register(cmd.Context(), sess, req)
		return err
	})
	if err != nil {
		return err
	}

	return views.RenderRegistrationSuccess(user, balance)
}

type loginRunner struct {
	app      *app.App
	username string
}

func NewLoginCmd(application *app.App) *cobra.Command {
	runner := &loginRunner{app: application}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the user for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd)
		},
	}

	cmd.Flags().StringVarP(&runner.username, "username", "u", "", "Username")

	return cmd
}

func (r *loginRunner) Run(cmd *cobra.Command) error {
	username := r.username
	if username == "" {
		var err error
		if username, err = prompts.PromptUsername(r.app.Config.Session.Username); err != nil {
			return err
		}
	}

	password, err := prompts.PromptPassword("Password:")
	if err != nil {
		return err
	}

	var user *model.User
	err = r.app.Do(cmd.Context(), func(sess store.Session) error {
		user, err = r.app.Service.User.Authenticate(cmd.Context(), sess, username, password)
		return err
	})
	if err != nil {
		return err
	}

	if err := saveSession(user.Username); err != nil {
		return err
	}

	pterm.Success.Printf("Logged in as %s\n", user.Username)
	return nil
}

func NewLogoutCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if application.Config.Session.Username == "" {
				pterm.Info.Println("Nobody is logged in")
				return nil
			}
			if err := saveSession(""); err != nil {
				return err
			}
			pterm.Success.Println("Logged out")
			return nil
		},
	}
}

func NewWhoamiCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user commands act as",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := application.Principal()
			if err != nil {
				return err
			}
			pterm.Info.Printf("Acting as %s\n", username)
			return nil
		},
	}
}
