package prompts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/remit/internal/model"
	"github.com/hance08/remit/internal/utils"
	"github.com/hance08/remit/internal/validation"
)

// DraftInput holds the raw answers of the draft form.
type DraftInput struct {
	Receiver    string
	Amount      string
	CategoryID  int64
	Description string
}

// PromptDraft asks for every draft field at once, starting from current.
// It is used both to create a draft and to edit one.
func PromptDraft(title string, current DraftInput, categories []*model.Category) (DraftInput, error) {
	if len(categories) == 0 {
		return DraftInput{}, errors.New("no categories yet, create one with 'remit category create'")
	}

	input := current
	if input.CategoryID == 0 {
		input.CategoryID = categories[0].ID
	}

	var opts []huh.Option[int64]
	for _, cat := range categories {
		opts = append(opts, huh.NewOption(cat.Name, cat.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Receiver username:").
				Value(&input.Receiver).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("receiver is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Amount:").
				Description("Up to two decimal places, e.g. 11.20").
				Value(&input.Amount).
				Validate(utils.ValidateAmountInput),
			huh.NewSelect[int64]().
				Title("Category:").
				Options(opts...).
				Value(&input.CategoryID).
				Height(8),
			huh.NewInput().
				Title("Description:").
				Value(&input.Description).
				Validate(validation.ValidateDescription),
		).Title(title),
	)

	if err := form.Run(); err != nil {
		return DraftInput{}, err
	}

	input.Receiver = strings.TrimSpace(input.Receiver)
	return input, nil
}

// PromptTransactionID asks for an id when none was given on the command
// line.
func PromptTransactionID(message string, candidates []*model.Transaction) (int64, error) {
	if len(candidates) == 0 {
		return 0, errors.New("no transactions to choose from")
	}

	var opts []string
	ids := make(map[string]int64, len(candidates))
	for _, tx := range candidates {
		label := fmt.Sprintf("#%d  %s -> %s  %s", tx.ID, tx.SenderAccount, tx.ReceiverAccount, utils.FormatAmount(tx.Amount))
		opts = append(opts, label)
		ids[label] = tx.ID
	}

	selected, err := PromptSelect(message, opts, opts[0])
	if err != nil {
		return 0, err
	}

	return ids[selected], nil
}

// ParseID reads a transaction id argument.
func ParseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid transaction ID: %s", arg)
	}
	return id, nil
}
