package ultralytics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ekisa-team/yoloconv/internal/backend"
)

// Interpreter runs Python code. *backend.Executor satisfies it.
type Interpreter interface {
	Execute(ctx context.Context, args []string, stdin io.Reader) (stdout, stderr []byte, err error)
	Stream(ctx context.Context, args []string, stdin io.Reader) (<-chan backend.StreamChunk, error)
}

// runScript streams a helper script, relays its output lines to out and
// returns the value it reported on the result line.
func runScript(ctx context.Context, python Interpreter, out io.Writer, script string, args ...string) (string, error) {
	ch, err := python.Stream(ctx, append([]string{"-c", script}, args...), nil)
	if err != nil {
		return "", err
	}

	var result string
	var reported bool
	for chunk := range ch {
		if len(chunk.Data) > 0 {
			line := strings.TrimRight(string(chunk.Data), "\r\n")
			if v, ok := strings.CutPrefix(line, resultPrefix); ok {
				result, reported = strings.TrimSpace(v), true
			} else if out != nil {
				fmt.Fprintln(out, line)
			}
		}
		if chunk.Done && chunk.Error != nil {
			return "", chunk.Error
		}
	}

	if !reported {
		return "", fmt.Errorf("toolkit exited without reporting a result")
	}

	return result, nil
}

func trimOutput(b []byte) string {
	return string(bytes.TrimSpace(b))
}
