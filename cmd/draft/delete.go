package draft

import (
	"github.com/hance08/remit/internal/app"
	"github.com/hance08/remit/internal/apperror"
	"github.com/hance08/remit/internal/store"
	"github.com/hance08/remit/internal/ui/prompts"
	"github.com/hance08/remit/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type deleteRunner struct {
	app *app.App
	yes bool
}

func NewDeleteCmd(application *app.App) *cobra.Command {
	runner := &deleteRunner{app: application}

	cmd := &cobra.Command{
		Use:   "delete <draft-id>",
		Short: "Delete a transfer draft",
		Long:  `Delete one of your drafts. Confirmed transfers can not be deleted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd, args)
		},
	}

	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func (r *deleteRunner) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := prompts.ParseID(args[0])
	if err != nil {
		return err
	}

	sender, err := r.app.Principal()
	if err != nil {
		return err
	}

	if !r.yes {
		drafts, err := loadDrafts(ctx, r.app, sender)
		if err != nil {
			return err
		}
		current := findByID(drafts, id)
		if current == nil {
			return apperror.NotFound(apperror.MsgDraftNotFound)
		}

		if err := views.RenderDraftDeletePreview(current); err != nil {
			return err
		}

		confirmed, err := prompts.ConfirmDestructive("Do you want to delete this draft?")
		if err != nil {
			return err
		}
		if !confirmed {
			pterm.Info.Println("Deletion cancelled")
			return nil
		}
	}

	err = r.app.Do(ctx, func(sess store.Session) error {
		return r.app.Service.Transaction.DeleteDraft(ctx, sess, sender, id)
	})
	if err != nil {
		return err
	}

	views.RenderDraftDeleteSuccess(id)
	return nil
}
