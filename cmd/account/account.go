package account

import (
	"github.com/hance08/remit/internal/app"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/store"
	"github.com/hance08/remit/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewAccountCmd(application *app.App) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Show your account",
	}

	accountCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show your balance and account state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := application.Principal()
			if err != nil {
				return err
			}

			var acc *model.Account
			err = application.Do(cmd.Context(), func(sess store.Session) error {
				acc, err = application.Service.User.GetAccount(cmd.Context(), sess, username)
				return err
			})
			if err != nil {
				return err
			}

			return views.RenderAccount(acc)
		},
	})

	return accountCmd
}
