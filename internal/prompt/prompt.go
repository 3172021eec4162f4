// Package prompt reads validated answers from a line-oriented console.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Cancel is the answer a user types to abandon the form they are filling in.
const Cancel = "0"

// Answer is the outcome of a single Ask.
// When Cancelled is true, Value is empty.
type Answer struct {
	Value     string
	Cancelled bool
}

// Prompter writes prompts to out and reads one line per answer from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New returns a Prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Ask prints label and reads lines until one passes check, printing the
// check's error before every retry. A nil check accepts any line. Typing
// Cancel returns a cancelled Answer without running check.
//
// The only error Ask returns is from the input itself; io.EOF means the
// console was closed.
func (p *Prompter) Ask(label string, check func(string) error) (Answer, error) {
	for {
		fmt.Fprint(p.out, label)
		line, err := p.readLine()
		if err != nil {
			return Answer{}, err
		}
		if line == Cancel {
			return Answer{Cancelled: true}, nil
		}
		if check != nil {
			if err := check(line); err != nil {
				fmt.Fprintln(p.out, err)
				continue
			}
		}
		return Answer{Value: line}, nil
	}
}

// Choose reads lines until one equals an option and returns it. Invalid
// lines print retry (when non-empty) and are read again, without limit.
func (p *Prompter) Choose(retry string, options ...string) (string, error) {
	for {
		fmt.Fprint(p.out, "-->")
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		for _, o := range options {
			if line == o {
				return line, nil
			}
		}
		if retry != "" {
			fmt.Fprintln(p.out, retry)
		}
	}
}

// Println writes a line to the console.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes formatted text to the console.
func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// IsClosed reports whether err means the console input has ended.
func IsClosed(err error) bool {
	return errors.Is(err, io.EOF)
}
