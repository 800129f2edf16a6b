// Package console reads one line of user input per prompt.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Out returns the writer that prompts and messages go to.
func (c *Console) Out() io.Writer {
	return c.out
}

// Prompt writes prompt and returns the next input line without its line
// terminator. A final line without a newline is returned as is; io.EOF is
// only returned when nothing was read.
func (c *Console) Prompt(prompt string) (string, error) {
	if prompt != "" {
		if _, err := io.WriteString(c.out, prompt); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Println writes a line of user-facing text.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes formatted user-facing text.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}
