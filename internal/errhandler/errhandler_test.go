package errhandler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/hance08/remit/internal/apperror"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", apperror.NotFound(apperror.MsgDraftNotFound), "[404] Transaction draft not found!"},
		{"invalid", apperror.InvalidRequest(apperror.MsgReceiverNotExist), "[400] Receiver doesn't exist!"},
		{"unauthorized", apperror.Unauthorized(apperror.MsgNotLoggedIn), "[401] You are not logged in"},
		{"internal hides cause", apperror.Internal(errors.New("database is locked")), "[500] Could not complete operation"},
		{"wrapped", fmt.Errorf("accept: %w", apperror.NotFound(apperror.MsgIncomingNotFound)), "[404] Incoming transaction not found!"},
		{"plain", errors.New("invalid transaction ID: x"), "Invalid transaction ID: x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.err))
		})
	}
}

func TestHandleErrorExitCode(t *testing.T) {
	assert.Equal(t, 0, HandleError(nil))
	assert.Equal(t, 0, HandleError(terminal.InterruptErr))
	assert.Equal(t, 1, HandleError(apperror.NotFound(apperror.MsgAccountNotFound)))
}
