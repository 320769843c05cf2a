package draft

import (
	"github.com/hance08/remit/internal/app"
	"github.com/hance08/remit/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewListCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your drafts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := application.Principal()
			if err != nil {
				return err
			}

			drafts, err := loadDrafts(cmd.Context(), application, owner)
			if err != nil {
				return err
			}

			categories, err := loadCategories(cmd.Context(), application)
			if err != nil {
				return err
			}

			items := views.BuildTransactionListItems(drafts, owner, views.CategoryNames(categories))
			return views.NewTransactionListView("Drafts").Render(items, application.Config.Ledger.ListLimit)
		},
	}
}
