package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// lineReader hands the shell one line of input at a time.
type lineReader interface {
	ReadLine() (string, error)
	AppendHistory(line string)
	Interactive() bool
	Close()
}

// newReader returns a liner prompt when in is a terminal and a plain
// buffered reader otherwise.
func newReader(in io.Reader) lineReader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return newInteractive()
	}
	return newNonInteractive(in)
}

type noninteractive struct {
	input *bufio.Reader
}

func newNonInteractive(in io.Reader) *noninteractive {
	return &noninteractive{bufio.NewReader(in)}
}

// ReadLine returns the next line without its terminator. A final line
// without a newline is still returned; io.EOF comes after it.
func (i *noninteractive) ReadLine() (string, error) {
	line, err := i.input.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (i *noninteractive) AppendHistory(string) {}

func (i *noninteractive) Interactive() bool { return false }

func (i *noninteractive) Close() {}

type interactive struct {
	line *liner.State
}

func newInteractive() *interactive {
	i := &interactive{
		line: liner.NewLiner(),
	}
	i.line.SetCtrlCAborts(true)
	return i
}

func (i *interactive) ReadLine() (string, error) {
	return i.line.Prompt("rowdb> ")
}

func (i *interactive) AppendHistory(line string) {
	i.line.AppendHistory(line)
}

func (i *interactive) Interactive() bool { return true }

func (i *interactive) Close() {
	i.line.Close()
}
