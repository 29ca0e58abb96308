// Package operator abstracts every blocking interaction with the person
// running the converter: console output, line prompts and native dialogs.
package operator

import (
	"context"
	"io"
)

// Operator is the interactive surface of the converter.
type Operator interface {
	// Output is where console messages and toolkit output are written.
	Output() io.Writer

	// Say prints one formatted line to the console.
	Say(format string, args ...any)

	// Ask prints prompt and returns the next input line, trimmed.
	Ask(prompt string) (string, error)

	// SelectFile opens the model file dialog. It returns "" if the operator cancels.
	SelectFile(ctx context.Context) (string, error)

	// ShowError shows a modal error dialog.
	ShowError(title, message string) error

	// WaitForAck prints prompt and blocks until the operator presses Enter.
	WaitForAck(prompt string)
}
