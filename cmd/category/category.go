package category

import (
	"github.com/hance08/remit/internal/app"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/store"
	"github.com/hance08/remit/internal/ui/prompts"
	"github.com/hance08/remit/internal/ui/views"
	"github.com/hance08/remit/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewCategoryCmd(application *app.App) *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Manage transfer categories",
	}

	categoryCmd.AddCommand(newCreateCmd(application))
	categoryCmd.AddCommand(newListCmd(application))

	return categoryCmd
}

func newCreateCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := application.Principal(); err != nil {
				return err
			}

			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				var err error
				if name, err = prompts.PromptInput("Category name:", "", validation.ValidateCategoryName); err != nil {
					return err
				}
			}

			var cat *model.Category
			err := application.Do(cmd.Context(), func(sess store.Session) error {
				var err error
				cat, err = application.Service.Category.Create(cmd.Context(), sess, name)
				return err
			})
			if err != nil {
				return err
			}

			pterm.Success.Printf("Category '%s' created [ID: %d]\n", cat.Name, cat.ID)
			return nil
		},
	}
}

func newListCmd(application *app.App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var categories []*model.Category
			err := application.Do(cmd.Context(), func(sess store.Session) error {
				var err error
				categories, err = application.Service.Category.List(cmd.Context(), sess)
				return err
			})
			if err != nil {
				return err
			}

			return views.RenderCategoryList(categories)
		},
	}
}
