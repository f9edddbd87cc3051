package mini

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/edwingeng/deque"
)

// LineSource supplies the lines read by `input_`. Returning io.EOF means no
// more input; the interpreter reads that as an empty line.
type LineSource interface {
	ReadLine() (string, error)
}

type readerInput struct {
	r *bufio.Reader
}

// NewReaderInput reads newline-terminated lines from r.
func NewReaderInput(r io.Reader) LineSource {
	return &readerInput{r: bufio.NewReader(r)}
}

func (in *readerInput) ReadLine() (string, error) {
	line, err := in.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if err != nil && line == "" {
		return "", io.EOF
	}
	return trimLineEnding(line), nil
}

// ScriptedInput is a FIFO of prepared lines, for tests and for hosts that
// cannot block on a terminal.
type ScriptedInput struct {
	lines deque.Deque
}

func NewScriptedInput(lines ...string) *ScriptedInput {
	in := &ScriptedInput{lines: deque.NewDeque()}
	in.Push(lines...)
	return in
}

// Push queues lines behind any that are already waiting.
func (in *ScriptedInput) Push(lines ...string) {
	for _, line := range lines {
		in.lines.PushBack(line)
	}
}

func (in *ScriptedInput) Len() int {
	return in.lines.Len()
}

func (in *ScriptedInput) ReadLine() (string, error) {
	if in.lines.Len() == 0 {
		return "", io.EOF
	}
	line := in.lines.Front().(string)
	in.lines.PopFront()
	return trimLineEnding(line), nil
}

func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
