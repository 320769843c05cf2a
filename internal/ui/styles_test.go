package ui

import (
	"testing"

	"github.com/hance08/remit/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestStatusLabel(t *testing.T) {
	assert.Contains(t, StatusLabel(model.StatusDraft), "Draft")
	assert.Contains(t, StatusLabel(model.StatusPending), "Pending")
	assert.Contains(t, StatusLabel(model.StatusCompleted), "Completed")
	assert.Equal(t, "odd", StatusLabel(model.Status("odd")))
}

func TestSignedAmount(t *testing.T) {
	assert.Contains(t, SignedAmount("11.30", true), "-11.30")
	assert.Contains(t, SignedAmount("11.30", false), "+11.30")
}
