// Package prompt asks the user for the path of the next model to show.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrCancelled is returned when the user gives up choosing a file.
var ErrCancelled = errors.New("prompt cancelled")

// Prompter returns a model path chosen by the user.
type Prompter interface {
	Prompt() (string, error)
}

// Teller is implemented by prompters that can show a message to the user.
type Teller interface {
	Tell(msg string)
}

// Console reads paths line by line, echoing a question before each one.
type Console struct {
	out     io.Writer
	scanner *bufio.Scanner
}

// NewConsole returns a Console reading from in and writing prompts to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{out: out, scanner: bufio.NewScanner(in)}
}

// Prompt implements Prompter. Blank lines are skipped; end of input cancels.
func (c *Console) Prompt() (string, error) {
	for {
		fmt.Fprint(c.out, "Please enter the full path of the file: ")
		if !c.scanner.Scan() {
			fmt.Fprintln(c.out)
			if err := c.scanner.Err(); err != nil {
				return "", fmt.Errorf("reading path: %w", err)
			}
			return "", ErrCancelled
		}
		if path := cleanPath(c.scanner.Text()); path != "" {
			return path, nil
		}
	}
}

// Tell prints a message next to the prompt, e.g. why the last path was refused.
func (c *Console) Tell(msg string) {
	fmt.Fprintln(c.out, msg)
}

// cleanPath trims whitespace and one pair of surrounding quotes, as left by
// drag-and-drop into a terminal.
func cleanPath(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return s
}
