package draft

import (
	"github.com/hance08/remit/internal/app"
	"github.com/hance08/remit/internal/apperror"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/store"
	"github.com/hance08/remit/internal/ui/prompts"
	"github.com/hance08/remit/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type confirmRunner struct {
	app *app.App
	yes bool
}

func NewConfirmCmd(application *app.App) *cobra.Command {
	runner := &confirmRunner{app: application}

	cmd := &cobra.Command{
		Use:   "confirm [draft-id]",
		Short: "Send a draft: debit your balance and notify the receiver",
		Long: `Confirm one of your drafts. The amount is taken from your balance right
away and the receiver sees the transfer under 'remit incoming list'.
Without an ID you pick from your drafts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd, args)
		},
	}

	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func (r *confirmRunner) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sender, err := r.app.Principal()
	if err != nil {
		return err
	}

	drafts, err := loadDrafts(ctx, r.app, sender)
	if err != nil {
		return err
	}

	var id int64
	if len(args) == 1 {
		if id, err = prompts.ParseID(args[0]); err != nil {
			return err
		}
	} else {
		if len(drafts) == 0 {
			pterm.Warning.Println("No drafts to confirm")
			return nil
		}
		if id, err = prompts.PromptTransactionID("Which draft do you want to send?", drafts); err != nil {
			return err
		}
	}

	if !r.yes {
		current := findByID(drafts, id)
		if current == nil {
			return apperror.NotFound(apperror.MsgDraftNotFound)
		}

		var acc *model.Account
		err = r.app.Do(ctx, func(sess store.Session) error {
			var err error
			acc, err = r.app.Service.User.GetAccount(ctx, sess, sender)
			return err
		})
		if err != nil {
			return err
		}

		if err := views.RenderConfirmSummary(current, acc.Balance); err != nil {
			return err
		}

		confirmed, err := prompts.PromptConfirm("Send this transfer?", true)
		if err != nil {
			return err
		}
		if !confirmed {
			pterm.Info.Println("Nothing was sent")
			return nil
		}
	}

	var tx *model.Transaction
	err = r.app.Do(ctx, func(sess store.Session) error {
		var err error
		tx, err = r.app.Service.Transaction.ConfirmDraft(ctx, sess, sender, id)
		return err
	})
	if err != nil {
		return err
	}

	views.RenderConfirmed(tx)
	return nil
}
