package main

import (
	"fmt"
	"os"
	"path/filepath"

	"v.io/x/lib/cmdline"
	"v.io/x/lib/vlog"

	"rowdb/internal/engine"
	"rowdb/internal/sql"
	"rowdb/internal/writer"
)

var (
	flagDataDir   string
	flagFormat    string
	flagLogLevel  int
	flagCacheSize int
)

var cmdRowdb = &cmdline.Command{
	Runner: cmdline.RunnerFunc(runRowdb),
	Name:   "rowdb",
	Short:  "Interactive shell for a small embedded SQL database",
	Long: `
Rowdb reads SQL statements, one per line, and runs them against a database
kept in memory and saved to a single snapshot file after every change.

Supported statements:
  CREATE TABLE name (column TYPE, ...)
  INSERT INTO name (column, ...) VALUES (literal, ...)
  SELECT column, ... | * FROM name [WHERE ...]

Type exit or quit to leave the shell.
`,
	ArgsName: "<database>",
	ArgsLong: `
<database> names the database. Its snapshot lives at <data-dir>/<database>.db
and is created on first save.
`,
}

func init() {
	cmdRowdb.Flags.StringVar(&flagDataDir, "data-dir", ".", "Directory holding database snapshot files.")
	cmdRowdb.Flags.StringVar(&flagFormat, "format", "table", "Output format for query results: table, csv or json.")
	cmdRowdb.Flags.IntVar(&flagLogLevel, "log-level", 0, "Verbosity of the log written to stderr.")
	cmdRowdb.Flags.IntVar(&flagCacheSize, "parse-cache", 128, "Number of parsed statements to keep; 0 disables the parse cache.")
}

func main() {
	cmdline.Main(cmdRowdb)
}

func runRowdb(env *cmdline.Env, args []string) error {
	if len(args) != 1 {
		return env.UsageErrorf("expected exactly one database name, got %d", len(args))
	}
	name := args[0]
	if name == "" || filepath.Base(name) != name {
		return env.UsageErrorf("invalid database name %q", name)
	}

	if err := vlog.Log.Configure(
		vlog.OverridePriorConfiguration(true),
		vlog.LogToStderr(true),
		vlog.Level(flagLogLevel),
	); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	out, err := writer.New(flagFormat, env.Stdout)
	if err != nil {
		return env.UsageErrorf("%v", err)
	}

	if err := os.MkdirAll(flagDataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(flagDataDir, name+".db")

	db, err := engine.Open(path)
	if err != nil {
		return err
	}

	sh := &shell{
		db:     db,
		cache:  sql.NewCache(flagCacheSize),
		out:    out,
		stdout: env.Stdout,
		stderr: env.Stderr,
		path:   path,
	}

	input := newReader(env.Stdin)
	defer input.Close()
	return sh.run(input)
}
