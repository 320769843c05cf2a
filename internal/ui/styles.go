package ui

import (
	"fmt"
	"strings"

	"github.com/hance08/remit/internal/model"
	"github.com/pterm/pterm"
)

var (
	titleStyle    = pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)
	subtitleStyle = pterm.NewStyle(pterm.FgCyan, pterm.Bold)
)

// PrintTitle prints a banner line, used above account and ledger views.
func PrintTitle(format string, a ...any) {
	titleStyle.Println(fmt.Sprintf(" %s   ", fmt.Sprintf(format, a...)))
}

func PrintSubtitle(format string, a ...any) {
	subtitleStyle.Println(fmt.Sprintf("# %s   ", fmt.Sprintf(format, a...)))
}

func Separator() {
	pterm.Println(pterm.Green(strings.Repeat("-", 57)))
}

// StatusLabel colors a transaction status for tables.
func StatusLabel(status model.Status) string {
	switch status {
	case model.StatusDraft:
		return pterm.Gray("Draft")
	case model.StatusPending:
		return pterm.Yellow("Pending")
	case model.StatusCompleted:
		return pterm.Green("Completed")
	default:
		return string(status)
	}
}

// SignedAmount shows money leaving the owner in red and money arriving in
// green.
func SignedAmount(amount string, outgoing bool) string {
	if outgoing {
		return pterm.Red("-" + amount)
	}
	return pterm.Green("+" + amount)
}
