package views

import (
	"fmt"

	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/ui"
	"github.com/hance08/remit/internal/utils"
	"github.com/pterm/pterm"
)

func RenderAccount(acc *model.Account) error {
	status := pterm.Green("Active")
	if acc.IsBlocked {
		status = pterm.Red("Blocked")
	}

	balance := utils.FormatAmount(acc.Balance)
	if acc.Balance.IsNegative() {
		balance = pterm.Red(balance)
	}

	ui.PrintTitle("Account %s", acc.Username)
	tableData := pterm.TableData{
		{pterm.Blue("Account ID"), fmt.Sprintf("%d", acc.ID)},
		{pterm.Blue("Username"), acc.Username},
		{pterm.Blue("Balance"), balance},
		{pterm.Blue("Status"), status},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}

func RenderCategoryList(categories []*model.Category) error {
	if len(categories) == 0 {
		pterm.Warning.Println("No categories found")
		return nil
	}

	tableData := pterm.TableData{{"ID", "Name"}}
	for _, cat := range categories {
		tableData = append(tableData, []string{fmt.Sprintf("%d", cat.ID), cat.Name})
	}

	pterm.DefaultSection.Printf("Category List")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d categories\n", len(categories))
	return nil
}
