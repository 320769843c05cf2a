package draft

import (
	"github.com/hance08/remit/internal/app"
	"github.com/hance08/remit/internal/apperror"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/service"
	"github.com/hance08/remit/internal/store"
	"github.com/hance08/remit/internal/ui/prompts"
	"github.com/hance08/remit/internal/ui/views"
	"github.com/hance08/remit/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type editRunner struct {
	app   *app.App
	flags *draftFlags
}

func NewEditCmd(application *app.App) *cobra.Command {
	flags := &draftFlags{}

	cmd := &cobra.Command{
		Use:   "edit <draft-id>",
		Short: "Edit a transfer draft",
		Long: `Edit the receiver, amount, category or description of one of your drafts.
Fields given as flags replace the current ones; without flags a form opens
with the current values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &editRunner{
				app:   application,
				flags: flags,
			}
			return runner.Run(cmd, args)
		},
	}

	flags.register(cmd)

	return cmd
}

func (r *editRunner) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := prompts.ParseID(args[0])
	if err != nil {
		return err
	}

	sender, err := r.app.Principal()
	if err != nil {
		return err
	}

	drafts, err := loadDrafts(ctx, r.app, sender)
	if err != nil {
		return err
	}
	current := findByID(drafts, id)
	if current == nil {
		return apperror.NotFound(apperror.MsgDraftNotFound)
	}

	categories, err := loadCategories(ctx, r.app)
	if err != nil {
		return err
	}

	req, err := r.request(current, categories)
	if err != nil {
		return err
	}

	var tx *model.Transaction
	err = r.app.Do(ctx, func(sess store.Session) error {
		var err error
		tx, err = r.app.Service.Transaction.UpdateDraft(ctx, sess, sender, id, req)
		return err
	})
	if err != nil {
		return err
	}

	pterm.Success.Printf("Draft #%d updated\n", tx.ID)
	return views.RenderTransactionDetail(tx, views.CategoryNames(categories)[tx.CategoryID])
}

func (r *editRunner) request(current *model.Transaction, categories []*model.Category) (service.DraftRequest, error) {
	input := prompts.DraftInput{
		Receiver:    current.ReceiverAccount,
		Amount:      utils.FormatAmount(current.Amount),
		CategoryID:  current.CategoryID,
		Description: current.Description,
	}

	if r.flags.any() {
		if r.flags.To != "" {
			input.Receiver = r.flags.To
		}
		if r.flags.Amount != "" {
			input.Amount = r.flags.Amount
		}
		if r.flags.Category != "" {
			id, err := resolveCategory(r.flags.Category, categories)
			if err != nil {
				return service.DraftRequest{}, err
			}
			input.CategoryID = id
		}
		if r.flags.Description != "" {
			input.Description = r.flags.Description
		}
	} else {
		var err error
		if input, err = prompts.PromptDraft("Edit draft", input, categories); err != nil {
			return service.DraftRequest{}, err
		}
	}

	amount, err := utils.ParseAmount(input.Amount)
	if err != nil {
		return service.DraftRequest{}, err
	}

	return service.DraftRequest{
		ReceiverAccount: input.Receiver,
		Amount:          amount,
		CategoryID:      input.CategoryID,
		Description:     input.Description,
	}, nil
}
