package draft

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hance08/remit/internal/app"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/store"
	"github.com/spf13/cobra"
)

func NewDraftCmd(application *app.App) *cobra.Command {
	draftCmd := &cobra.Command{
		Use:   "draft",
		Short: "Create, edit, delete and confirm transfer drafts",
		Long: `Drafts are transfers only you can see. Nothing moves until you confirm
a draft: then your balance is debited and the receiver can accept it.`,
	}

	draftCmd.AddCommand(NewCreateCmd(application))
	draftCmd.AddCommand(NewEditCmd(application))
	draftCmd.AddCommand(NewDeleteCmd(application))
	draftCmd.AddCommand(NewConfirmCmd(application))
	draftCmd.AddCommand(NewListCmd(application))

	return draftCmd
}

// draftFlags are the fields shared by create and edit.
type draftFlags struct {
	To          string
	Amount      string
	Category    string
	Description string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.To, "to", "t", "", "Receiver username")
	cmd.Flags().StringVarP(&f.Amount, "amount", "a", "", "Amount, up to two decimal places")
	cmd.Flags().StringVarP(&f.Category, "category", "g", "", "Category name or ID")
	cmd.Flags().StringVarP(&f.Description, "description", "d", "", "Description")
}

func (f *draftFlags) any() bool {
	return f.To != "" || f.Amount != "" || f.Category != "" || f.Description != ""
}

func loadCategories(ctx context.Context, application *app.App) ([]*model.Category, error) {
	var categories []*model.Category
	err := application.Do(ctx, func(sess store.Session) error {
		var err error
		categories, err = application.Service.Category.List(ctx, sess)
		return err
	})
	return categories, err
}

func loadDrafts(ctx context.Context, application *app.App, owner string) ([]*model.Transaction, error) {
	var drafts []*model.Transaction
	err := application.Do(ctx, func(sess store.Session) error {
		var err error
		drafts, err = application.Service.Transaction.ListDrafts(ctx, sess, owner)
		return err
	})
	return drafts, err
}

func findByID(txs []*model.Transaction, id int64) *model.Transaction {
	for _, tx := range txs {
		if tx.ID == id {
			return tx
		}
	}
	return nil
}

// resolveCategory accepts a category id or a case-insensitive name.
func resolveCategory(value string, categories []*model.Category) (int64, error) {
	value = strings.TrimSpace(value)
	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		return id, nil
	}

	for _, cat := range categories {
		if strings.EqualFold(cat.Name, value) {
			return cat.ID, nil
		}
	}

	return 0, fmt.Errorf("category '%s' not found", value)
}
