package views

import (
	"fmt"

	"github.com/hance08/remit/internal/constants"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/ui"
	"github.com/hance08/remit/internal/utils"
	"github.com/pterm/pterm"
)

func RenderTransactionDetail(tx *model.Transaction, category string) error {
	date := "-"
	if tx.TransactionDate != nil {
		date = tx.TransactionDate.Local().Format(constants.DateTimeLayout)
	}

	description := tx.Description
	if description == "" {
		description = "-"
	}

	pterm.Println()
	ui.PrintSubtitle("Transaction #%d", tx.ID)
	infoData := pterm.TableData{
		{"Field", "Value"},
		{"From", tx.SenderAccount},
		{"To", tx.ReceiverAccount},
		{"Amount", utils.FormatAmount(tx.Amount)},
		{"Category", category},
		{"Description", description},
		{"Status", ui.StatusLabel(tx.Status)},
		{"Completed", date},
	}
	if tx.IsFlagged {
		infoData = append(infoData, []string{"Flagged", pterm.Red("yes")})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(infoData).
		Render()
}

// DraftCreatedMessage is what the sender sees after creating a draft.
func DraftCreatedMessage(tx *model.Transaction) string {
	return fmt.Sprintf("You are about to send %s to %s [Draft ID: %d]",
		utils.FormatAmount(tx.Amount), tx.ReceiverAccount, tx.ID)
}
