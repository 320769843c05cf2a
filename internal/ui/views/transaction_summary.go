package views

import (
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/ui"
	"github.com/hance08/remit/internal/utils"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// RenderConfirmSummary shows what confirming a draft will do to balance.
func RenderConfirmSummary(tx *model.Transaction, balance decimal.Decimal) error {
	pterm.DefaultSection.Println("Transfer Summary")

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"Receiver", tx.ReceiverAccount},
		{"Amount", utils.FormatAmount(tx.Amount)},
		{"Balance now", utils.FormatAmount(balance)},
		{"Balance after", utils.FormatAmount(balance.Sub(tx.Amount))},
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func RenderConfirmed(tx *model.Transaction) {
	pterm.Success.Printf("Sent %s to %s, waiting for them to accept [ID: %d]\n",
		utils.FormatAmount(tx.Amount), tx.ReceiverAccount, tx.ID)
	ui.Separator()
}

func RenderAccepted(id int64, balance decimal.Decimal) {
	pterm.Success.Printf("Transaction #%d accepted. Your balance is now %s\n", id, utils.FormatAmount(balance))
	ui.Separator()
}
