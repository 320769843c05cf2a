package views

import (
	"fmt"

	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/ui"
	"github.com/pterm/pterm"
)

type TransactionListItem struct {
	ID           int64
	Date         string
	Counterparty string
	Category     string
	Description  string
	Amount       string
	Status       model.Status
	Outgoing     bool
}

type TransactionListView struct {
	Title string
}

func NewTransactionListView(title string) *TransactionListView {
	return &TransactionListView{Title: title}
}

func (v *TransactionListView) Render(items []TransactionListItem, limit int) error {
	if len(items) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Printf("%s (limit: %d)", v.Title, limit)

	tableData := pterm.TableData{
		{"ID", "Date", "Counterparty", "Category", "Description", "Amount", "Status"},
	}

	for _, item := range items {
		tableData = append(tableData, []string{
			fmt.Sprintf("%d", item.ID),
			item.Date,
			item.Counterparty,
			item.Category,
			item.Description,
			ui.SignedAmount(item.Amount, item.Outgoing),
			ui.StatusLabel(item.Status),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(items))
	return nil
}
