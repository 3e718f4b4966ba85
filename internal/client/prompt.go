package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is replaced in tests to avoid touching the terminal.
var readPassword = term.ReadPassword

// TerminalPrompter reads answers line by line from in and writes prompts
// to out. Passwords are read from the terminal without echo when stdin is
// one; otherwise they are read as plain lines.
type TerminalPrompter struct {
	in         *bufio.Reader
	out        io.Writer
	stdinFd    int
	isTerminal func(fd int) bool
}

// NewTerminalPrompter builds a prompter over stdin and stderr.
func NewTerminalPrompter() *TerminalPrompter {
	return newTerminalPrompter(os.Stdin, os.Stderr, int(os.Stdin.Fd()), term.IsTerminal)
}

func newTerminalPrompter(in io.Reader, out io.Writer, fd int, isTerminal func(int) bool) *TerminalPrompter {
	return &TerminalPrompter{
		in:         bufio.NewReader(in),
		out:        out,
		stdinFd:    fd,
		isTerminal: isTerminal,
	}
}

func (p *TerminalPrompter) Prompt(label string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", err
	}
	return p.readLine()
}

func (p *TerminalPrompter) PromptPassword(label string) (string, error) {
	if !p.isTerminal(p.stdinFd) {
		return p.Prompt(label)
	}

	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", err
	}
	pw, err := readPassword(p.stdinFd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
