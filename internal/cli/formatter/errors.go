package formatter

import (
	"github.com/alexanderramin/clientdesk/internal/domain"
)

// FormatError renders a command failure with a retry hint when repeating
// the command may succeed.
func FormatError(err error) string {
	msg := StyleRed.Render("Error: ") + err.Error()
	if domain.IsRetryable(err) {
		msg += "\n" + Dim("This may be temporary; retry the command.")
	}
	return msg
}
