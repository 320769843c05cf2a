package draft

import (
	"github.com/hance08/remit/internal/app"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/service"
	"github.com/hance08/remit/internal/store"
	"github.com/hance08/remit/internal/ui/prompts"
	"github.com/hance08/remit/internal/ui/views"
	"github.com/hance08/remit/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type createRunner struct {
	app   *app.App
	flags *draftFlags
}

func NewCreateCmd(application *app.App) *cobra.Command {
	flags := &draftFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a transfer draft",
		Long: `Create a transfer draft. Without --to and --amount an interactive form
asks for every field.

Example: remit draft create --to bob --amount 11.20 --category rent`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &createRunner{
				app:   application,
				flags: flags,
			}
			return runner.Run(cmd)
		},
	}

	flags.register(cmd)

	return cmd
}

func (r *createRunner) Run(cmd *cobra.Command) error {
	ctx := cmd.Context()

	sender, err := r.app.Principal()
	if err != nil {
		return err
	}

	categories, err := loadCategories(ctx, r.app)
	if err != nil {
		return err
	}

	req, err := r.request(categories)
	if err != nil {
		return err
	}

	var tx *model.Transaction
	err = r.app.Do(ctx, func(sess store.Session) error {
		var err error
		tx, err = r.app.Service.Transaction.CreateDraft(ctx, sess, sender, req)
		return err
	})
	if err != nil {
		return err
	}

	pterm.Success.Println(views.DraftCreatedMessage(tx))
	pterm.Info.Printf("Run 'remit draft confirm %d' to send it\n", tx.ID)
	return nil
}

func (r *createRunner) request(categories []*model.Category) (service.DraftRequest, error) {
	input := prompts.DraftInput{
		Receiver:    r.flags.To,
		Amount:      r.flags.Amount,
		Description: r.flags.Description,
	}

	if r.flags.Category != "" {
		id, err := resolveCategory(r.flags.Category, categories)
		if err != nil {
			return service.DraftRequest{}, err
		}
		input.CategoryID = id
	}

	if input.Receiver == "" || input.Amount == "" || input.CategoryID == 0 {
		var err error
		if input, err = prompts.PromptDraft("New transfer draft", input, categories); err != nil {
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
