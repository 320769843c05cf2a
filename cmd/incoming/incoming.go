package incoming

import (
	"context"

	"github.com/hance08/remit/internal/app"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/store"
	"github.com/hance08/remit/internal/ui/prompts"
	"github.com/hance08/remit/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func NewIncomingCmd(application *app.App) *cobra.Command {
	incomingCmd := &cobra.Command{
		Use:   "incoming",
		Short: "Transfers sent to you",
		Long: `Confirmed transfers wait here until you accept them. Accepting one adds
the amount to your balance.`,
	}

	incomingCmd.AddCommand(newListCmd(application))
	incomingCmd.AddCommand(newAcceptCmd(application))

	return incomingCmd
}

func loadIncoming(ctx context.Context, application *app.App, owner string) ([]*model.Transaction, []*model.Category, error) {
	var (
		txs        []*model.Transaction
		categories []*model.Category
	)
	err := application.Do(ctx, func(sess store.Session) error {
		var err error
		if txs, err = application.Service.Transaction.ListIncoming(ctx, sess, owner); err != nil {
			return err
		}
		categories, err = application.Service.Category.List(ctx, sess)
		return err
	})
	return txs, categories, err
}

func newListCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transfers waiting for you, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := application.Principal()
			if err != nil {
				return err
			}

			txs, categories, err := loadIncoming(cmd.Context(), application, owner)
			if err != nil {
				return err
			}

			items := views.BuildTransactionListItems(txs, owner, views.CategoryNames(categories))
			return views.NewTransactionListView("Incoming transfers").Render(items, application.Config.Ledger.ListLimit)
		},
	}
}

func newAcceptCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "accept [transaction-id]",
		Short: "Accept an incoming transfer and credit your balance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			receiver, err := application.Principal()
			if err != nil {
				return err
			}

			var id int64
			if len(args) == 1 {
				if id, err = prompts.ParseID(args[0]); err != nil {
					return err
				}
			} else {
				txs, _, err := loadIncoming(ctx, application, receiver)
				if err != nil {
					return err
				}
				if len(txs) == 0 {
					pterm.Info.Println("Nothing to accept")
					return nil
				}
				if id, err = prompts.PromptTransactionID("Which transfer do you want to accept?", txs); err != nil {
					return err
				}
			}

			var balance decimal.Decimal
			err = application.Do(ctx, func(sess store.Session) error {
				var err error
				balance, err = application.Service.Transaction.AcceptIncoming(ctx, sess, receiver, id)
				return err
			})
			if err != nil {
				return err
			}

			views.RenderAccepted(id, balance)
			return nil
		},
	}
}
