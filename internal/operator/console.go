package operator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ncruces/zenity"
)

// FileDialogTitle is the title of the model selection dialog.
const FileDialogTitle = "Select YOLO Model (.pt or .onnx)"

// ModelFileFilters restricts the dialog to the supported model extensions.
var ModelFileFilters = zenity.FileFilters{
	{Name: "YOLO Models", Patterns: []string{"*.pt", "*.onnx"}, CaseFold: true},
	{Name: "PyTorch Model", Patterns: []string{"*.pt"}, CaseFold: true},
	{Name: "ONNX Model", Patterns: []string{"*.onnx"}, CaseFold: true},
}

// Dialogs is the native dialog surface used by Console.
type Dialogs interface {
	SelectFile(ctx context.Context) (string, error)
	Error(title, message string) error
}

// NativeDialogs shows dialogs through zenity.
type NativeDialogs struct{}

// SelectFile implements Dialogs. Cancellation yields "" with no error.
func (NativeDialogs) SelectFile(ctx context.Context) (string, error) {
	path, err := zenity.SelectFile(
		zenity.Context(ctx),
		zenity.Title(FileDialogTitle),
		ModelFileFilters,
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return path, err
}

// Error implements Dialogs.
func (NativeDialogs) Error(title, message string) error {
	return zenity.Error(message, zenity.Title(title), zenity.ErrorIcon)
}

// Console is an Operator backed by a terminal and native dialogs.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	dialogs Dialogs
}

// NewConsole creates a Console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer, dialogs Dialogs) *Console {
	if dialogs == nil {
		dialogs = NativeDialogs{}
	}
	return &Console{in: bufio.NewReader(in), out: out, dialogs: dialogs}
}

// Output implements Operator.
func (c *Console) Output() io.Writer {
	return c.out
}

// Say implements Operator.
func (c *Console) Say(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Ask implements Operator. A final line without newline is accepted.
func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)

	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// SelectFile implements Operator.
func (c *Console) SelectFile(ctx context.Context) (string, error) {
	return c.dialogs.SelectFile(ctx)
}

// ShowError implements Operator.
func (c *Console) ShowError(title, message string) error {
	return c.dialogs.Error(title, message)
}

// WaitForAck implements Operator. Read errors (closed stdin) end the wait.
func (c *Console) WaitForAck(prompt string) {
	fmt.Fprint(c.out, prompt)
	if _, err := c.in.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		slog.Debug("Acknowledgement read failed", "error", err)
	}
}
