package ultralytics

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/ekisa-team/yoloconv/internal/backend"
)

type MockInterpreter struct {
	mock.Mock
}

func (m *MockInterpreter) Execute(ctx context.Context, args []string, stdin io.Reader) ([]byte, []byte, error) {
	a := m.Called(ctx, args, stdin)
	stdout, _ := a.Get(0).([]byte)
	stderr, _ := a.Get(1).([]byte)
	return stdout, stderr, a.Error(2)
}

func (m *MockInterpreter) Stream(ctx context.Context, args []string, stdin io.Reader) (<-chan backend.StreamChunk, error) {
	a := m.Called(ctx, args, stdin)
	ch, _ := a.Get(0).(<-chan backend.StreamChunk)
	return ch, a.Error(1)
}

// chunks builds a finished stream from lines and a final error.
func chunks(final error, lines ...string) <-chan backend.StreamChunk {
	ch := make(chan backend.StreamChunk, len(lines)+1)
	for _, l := range lines {
		ch <- backend.StreamChunk{Data: []byte(l + "\n")}
	}
	ch <- backend.StreamChunk{Done: true, Error: final}
	close(ch)
	return ch
}

// scriptArgs matches interpreter args for a given script followed by params.
func scriptArgs(script string, params ...string) []string {
	return append([]string{"-c", script}, params...)
}
