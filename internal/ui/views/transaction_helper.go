package views

import (
	"github.com/hance08/remit/internal/constants"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/utils"
)

// BuildTransactionListItems shapes transactions as seen by owner. The
// counterparty is whoever is on the other side of owner.
func BuildTransactionListItems(txs []*model.Transaction, owner string, categories map[int64]string) []TransactionListItem {
	items := make([]TransactionListItem, 0, len(txs))

	for _, tx := range txs {
		outgoing := tx.SenderAccount == owner
		counterparty := tx.ReceiverAccount
		if !outgoing {
			counterparty = tx.SenderAccount
		}

		date := "-"
		if tx.TransactionDate != nil {
			date = tx.TransactionDate.Local().Format(constants.DateTimeLayout)
		}

		category, ok := categories[tx.CategoryID]
		if !ok {
			category = "-"
		}

		description := tx.Description
		if description == "" {
			description = "-"
		}

		items = append(items, TransactionListItem{
			ID:           tx.ID,
			Date:         date,
			Counterparty: counterparty,
			Category:     category,
			Description:  description,
			Amount:       utils.FormatAmount(tx.Amount),
			Status:       tx.Status,
			Outgoing:     outgoing,
		})
	}

	return items
}

// CategoryNames indexes categories by id.
func CategoryNames(categories []*model.Category) map[int64]string {
	names := make(map[int64]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}
	return names
}
