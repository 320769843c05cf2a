package cmd

import (
	"github.com/hance08/remit/internal/app"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/store"
	"github.com/hance08/remit/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewSentCmd(application *app.App) *cobra.Command {
	sentCmd := &cobra.Command{
		Use:   "sent",
		Short: "Transfers you have confirmed",
	}

	sentCmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List confirmed transfers, pending and completed",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := application.Principal()
			if err != nil {
				return err
			}

			var (
				txs        []*model.Transaction
				categories []*model.Category
			)
			err = application.Do(cmd.Context(), func(sess store.Session) error {
				if txs, err = application.Service.Transaction.ListOutgoing(cmd.Context(), sess, owner); err != nil {
					return err
				}
				categories, err = application.Service.Category.List(cmd.Context(), sess)
				return err
			})
			if err != nil {
				return err
			}

			items := views.BuildTransactionListItems(txs, owner, views.CategoryNames(categories))
			return views.NewTransactionListView("Sent transfers").Render(items, application.Config.Ledger.ListLimit)
		},
	})

	return sentCmd
}
