package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"v.io/x/lib/vlog"

	"rowdb/internal/engine"
	"rowdb/internal/sql"
	"rowdb/internal/writer"
)

// shell is the read-exec loop around one open database.
type shell struct {
	db     *engine.Database
	cache  *sql.Cache
	out    writer.FormattingWriter
	stdout io.Writer
	stderr io.Writer
	path   string // snapshot file
}

// run executes statements until exit/quit or end of input, then saves the
// database one last time.
func (s *shell) run(input lineReader) error {
	for {
		line, err := input.ReadLine()
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				// ctrl-c drops the current line
				continue
			}
			if err == io.EOF && input.Interactive() {
				// ctrl-d
				fmt.Fprintln(s.stdout)
			}
			if err != io.EOF {
				vlog.Errorf("read input: %v", err)
			}
			break
		}

		stmt := strings.TrimSpace(line)
		if stmt == "" {
			continue
		}
		input.AppendHistory(stmt)
		if isQuit(stmt) {
			break
		}
		s.exec(stmt)
	}

	if err := s.db.Save(s.path); err != nil {
		vlog.Errorf("final save to %s: %v", s.path, err)
		return err
	}
	return nil
}

func isQuit(stmt string) bool {
	word := strings.TrimSpace(strings.TrimSuffix(stmt, ";"))
	return strings.EqualFold(word, "exit") || strings.EqualFold(word, "quit")
}

// exec runs one statement and reports the outcome. Errors are printed and
// never stop the shell.
func (s *shell) exec(stmt string) {
	vlog.VI(2).Infof("exec: %s", stmt)

	cmd, err := s.cache.ParseCached(stmt)
	if err != nil {
		fmt.Fprintln(s.stderr, "Error:", err)
		return
	}
	res, err := s.db.Execute(cmd)
	if err != nil {
		fmt.Fprintln(s.stderr, "Error:", err)
		return
	}

	if res.Kind == engine.ResultRows {
		if err := s.out.Write(res.Columns, res.Rows); err != nil {
			fmt.Fprintln(s.stderr, "Error:", err)
		}
		return
	}
	fmt.Fprintln(s.stdout, res.Message())

	if res.Mutating() {
		if err := s.db.Save(s.path); err != nil {
			vlog.Errorf("save to %s: %v", s.path, err)
			fmt.Fprintln(s.stderr, "Error: changes not saved:", err)
		}
	}
}
