package errhandler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/remit/internal/apperror"
	"github.com/pterm/pterm"
)

// HandleError reports err to the user and returns the exit code.
func HandleError(err error) int {
	if err == nil {
		return 0
	}

	if IsInterrupt(err) {
		pterm.Warning.Println("Operation Cancelled")
		return 0
	}

	pterm.Error.Println(Format(err))
	return 1
}

func IsInterrupt(err error) bool {
	return errors.Is(err, terminal.InterruptErr) ||
		errors.Is(err, huh.ErrUserAborted) ||
		strings.Contains(err.Error(), "interrupt")
}

// Format renders domain errors as "[<status>] <message>". Anything else is
// a usage or setup error and is shown as is.
func Format(err error) string {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return fmt.Sprintf("[%d] %s", apperror.Status(err), appErr.Message)
	}
	return capitalize(err.Error())
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
