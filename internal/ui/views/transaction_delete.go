package views

import (
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/ui"
	"github.com/hance08/remit/internal/utils"
	"github.com/pterm/pterm"
)

func RenderDraftDeletePreview(tx *model.Transaction) error {
	pterm.Warning.Printf("About to delete draft #%d:\n", tx.ID)

	deletionInfo := pterm.TableData{
		{"Receiver", tx.ReceiverAccount},
		{"Amount", utils.FormatAmount(tx.Amount)},
		{"Description", tx.Description},
	}

	if err := pterm.DefaultTable.WithData(deletionInfo).Render(); err != nil {
		return err
	}
	pterm.Warning.Println("This action cannot be undone!")
	return nil
}

func RenderDraftDeleteSuccess(id int64) {
	pterm.Success.Printf("Draft #%d deleted successfully\n", id)
	ui.Separator()
}
