package calculator

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// InputProvider asks the user for a line of text. ok is false when the user
// cancels or no input is available.
type InputProvider interface {
	PromptText(prompt, def string) (text string, ok bool)
}

// InputProviderFunc adapts a function to InputProvider.
type InputProviderFunc func(prompt, def string) (string, bool)

func (f InputProviderFunc) PromptText(prompt, def string) (string, bool) {
	return f(prompt, def)
}

// Console prompts on a writer and reads answers line by line from a reader.
// An empty answer selects the default; end of input cancels.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) PromptText(prompt, def string) (string, bool) {
	if def != "" {
		fmt.Fprintf(c.out, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(c.out, "%s: ", prompt)
	}

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, true
	}
	return line, true
}

// ReadLine reads the next raw line from the console input.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
