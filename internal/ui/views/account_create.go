package views

import (
	"fmt"

	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/ui"
	"github.com/hance08/remit/internal/utils"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

func RenderRegistrationSuccess(user *model.User, openingBalance decimal.Decimal) error {
	ui.Separator()

	tableData := pterm.TableData{
		{pterm.Blue("User ID"), fmt.Sprintf("%d", user.ID)},
		{pterm.Blue("Username"), user.Username},
		{pterm.Blue("Email"), user.Email},
		{pterm.Blue("Phone"), user.PhoneNumber},
		{pterm.Blue("Opening Balance"), utils.FormatAmount(openingBalance)},
	}

	if err := pterm.DefaultTable.WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Success.Print("Account created successfully! Log in with 'remit login'.\n")

	return nil
}
