// Package operatortest provides a scripted operator.Operator for tests.
package operatortest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrorDialog records one ShowError call.
type ErrorDialog struct {
	Title   string
	Message string
}

// Scripted answers prompts from a fixed list and records every interaction.
type Scripted struct {
	mu sync.Mutex

	// File is returned by SelectFile; "" simulates a cancelled dialog.
	File string
	// FileErr is returned by SelectFile.
	FileErr error

	answers []string
	out     bytes.Buffer

	Prompts      []string
	ErrorDialogs []ErrorDialog
	Acks         int
	FileDialogs  int
}

// New creates a Scripted operator that answers prompts with answers, in order.
func New(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

// Output implements operator.Operator.
func (s *Scripted) Output() io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.out.Write(p)
	})
}

// Say implements operator.Operator.
func (s *Scripted) Say(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(&s.out, format+"\n", args...)
}

// Ask implements operator.Operator. It fails with io.EOF once answers run out.
func (s *Scripted) Ask(prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Prompts = append(s.Prompts, prompt)
	s.out.WriteString(prompt)
	if len(s.answers) == 0 {
		return "", io.EOF
	}

	answer := s.answers[0]
	s.answers = s.answers[1:]
	return strings.TrimSpace(answer), nil
}

// SelectFile implements operator.Operator.
func (s *Scripted) SelectFile(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.FileDialogs++
	return s.File, s.FileErr
}

// ShowError implements operator.Operator.
func (s *Scripted) ShowError(title, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ErrorDialogs = append(s.ErrorDialogs, ErrorDialog{Title: title, Message: message})
	return nil
}

// WaitForAck implements operator.Operator.
func (s *Scripted) WaitForAck(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Acks++
	s.out.WriteString(prompt)
}

// Transcript returns everything written to the console so far.
func (s *Scripted) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
