package sql

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestParseCreateTable_Basic(t *testing.T) {
	query := "CREATE TABLE t (id INTEGER, name TEXT);"

	cmd, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ct, ok := cmd.(*CreateTableCmd)
	if !ok {
		t.Fatalf("expected *CreateTableCmd, got %T", cmd)
	}

	want := &CreateTableCmd{
		Name: "t",
		Columns: []Column{
			{Name: "id", Type: TypeInteger},
			{Name: "name", Type: TypeText},
		},
	}
	if !reflect.DeepEqual(ct, want) {
		t.Fatalf("unexpected command:\n%s", spew.Sdump(ct))
	}
}

func TestParseCreateTable_CaseAndSpaces(t *testing.T) {
	query := "  create   table   Accounts  (  balance   decimal ,  owner  varchar , opened date )  "

	cmd, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ct, ok := cmd.(*CreateTableCmd)
	if !ok {
		t.Fatalf("expected *CreateTableCmd, got %T", cmd)
	}

	if ct.Name != "Accounts" {
		t.Fatalf("expected table name %q, got %q", "Accounts", ct.Name)
	}

	assertCol := func(idx int, name string, dt DataType) {
		if ct.Columns[idx].Name != name {
			t.Fatalf("column %d: expected name %q, got %q", idx, name, ct.Columns[idx].Name)
		}
		if ct.Columns[idx].Type != dt {
			t.Fatalf("column %d: expected type %v, got %v", idx, dt, ct.Columns[idx].Type)
		}
	}

	if len(ct.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(ct.Columns))
	}
	assertCol(0, "balance", TypeDecimal)
	assertCol(1, "owner", TypeVarchar)
	assertCol(2, "opened", TypeDate)
}

func TestParseCreateTable_ColumnCountMatchesSource(t *testing.T) {
	types := []string{"INTEGER", "TEXT", "REAL", "BLOB", "NULL", "BOOLEAN", "DATE",
		"TIMESTAMP", "VARCHAR", "CHAR", "FLOAT", "DOUBLE", "DECIMAL"}

	for n := 1; n <= len(types); n++ {
		defs := make([]string, n)
		for i := 0; i < n; i++ {
			defs[i] = fmt.Sprintf("c%d %s", i, types[i])
		}
		query := "CREATE TABLE wide (" + strings.Join(defs, ", ") + ")"

		cmd, err := Parse(query)
		if err != nil {
			t.Fatalf("%q: Parse failed: %v", query, err)
		}
		ct := cmd.(*CreateTableCmd)
		if len(ct.Columns) != n {
			t.Fatalf("%q: expected %d columns, got %d", query, n, len(ct.Columns))
		}
		for i, col := range ct.Columns {
			if col.Name != fmt.Sprintf("c%d", i) || col.Type.String() != types[i] {
				t.Fatalf("%q: column %d out of order: %+v", query, i, col)
			}
		}
	}
}

func TestParseInsert_Basic(t *testing.T) {
	query := "INSERT INTO t (id, name) VALUES (1, 'Tom');"

	cmd, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ins, ok := cmd.(*InsertCmd)
	if !ok {
		t.Fatalf("expected *InsertCmd, got %T", cmd)
	}

	want := &InsertCmd{
		Table:   "t",
		Columns: []string{"id", "name"},
		Values: []Literal{
			{Kind: LitNumber, Raw: "1"},
			{Kind: LitString, Raw: "Tom"},
		},
	}
	if !reflect.DeepEqual(ins, want) {
		t.Fatalf("unexpected command:\n%s", spew.Sdump(ins))
	}

	v, err := ins.Values[0].Value()
	if err != nil || v != Integer(1) {
		t.Fatalf("unexpected first value: %v (err=%v)", v, err)
	}
	v, err = ins.Values[1].Value()
	if err != nil || v != Text("Tom") {
		t.Fatalf("unexpected second value: %v (err=%v)", v, err)
	}
}

func TestParseSelect_Star(t *testing.T) {
	query := "   select   *   from   Accounts   ; "

	cmd, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sel, ok := cmd.(*SelectCmd)
	if !ok {
		t.Fatalf("expected *SelectCmd, got %T", cmd)
	}
	if sel.Table != "Accounts" {
		t.Fatalf("expected table name %q, got %q", "Accounts", sel.Table)
	}
	if len(sel.Columns) != 1 || !sel.Columns[0].Wildcard {
		t.Fatalf("unexpected Columns: %#v", sel.Columns)
	}
	if sel.Where != nil || sel.Join != nil {
		t.Fatalf("expected no WHERE/JOIN, got %s", spew.Sdump(sel))
	}
}

func TestParseSelect_ColumnList(t *testing.T) {
	query := `SELECT id, "Full Name" FROM users;`

	cmd, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sel := cmd.(*SelectCmd)
	want := []SelectItem{{Name: "id"}, {Name: "Full Name"}}
	if !reflect.DeepEqual(sel.Columns, want) {
		t.Fatalf("unexpected Columns: %#v", sel.Columns)
	}
}

func TestParseSelect_QuotedStarIsAColumn(t *testing.T) {
	cmd, err := Parse(`SELECT "*", * FROM t`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sel := cmd.(*SelectCmd)
	want := []SelectItem{{Name: "*"}, {Wildcard: true}}
	if !reflect.DeepEqual(sel.Columns, want) {
		t.Fatalf("unexpected Columns: %#v", sel.Columns)
	}
}

func TestParseSelect_WhereConditions(t *testing.T) {
	query := "SELECT id FROM users WHERE age > 18 AND name != 'Bob' OR 5 < \"Score\""

	cmd, err := Parse(query)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sel := cmd.(*SelectCmd)
	want := []Condition{
		{Conn: ConnNone, Left: Operand{OperandColumn, "age"}, Op: ">", Right: Operand{OperandNumber, "18"}},
		{Conn: ConnAnd, Left: Operand{OperandColumn, "name"}, Op: "!=", Right: Operand{OperandString, "Bob"}},
		{Conn: ConnOr, Left: Operand{OperandNumber, "5"}, Op: "<", Right: Operand{OperandColumn, "Score"}},
	}
	if !reflect.DeepEqual(sel.Where, want) {
		t.Fatalf("unexpected WHERE:\n%s", spew.Sdump(sel.Where))
	}
}

func TestParseSelect_Join(t *testing.T) {
	for _, query := range []string{
		"SELECT * FROM users JOIN posts ON id = user_id WHERE id = 1",
		"SELECT * FROM users WHERE id = 1 JOIN posts ON id = user_id;",
	} {
		cmd, err := Parse(query)
		if err != nil {
			t.Fatalf("%q: Parse failed: %v", query, err)
		}

		sel := cmd.(*SelectCmd)
		if sel.Join == nil {
			t.Fatalf("%q: expected JOIN clause, got nil", query)
		}
		if sel.Join.Table != "posts" || sel.Join.On.Left.Text != "id" || sel.Join.On.Right.Text != "user_id" {
			t.Fatalf("%q: unexpected JOIN:\n%s", query, spew.Sdump(sel.Join))
		}
		if len(sel.Where) != 1 {
			t.Fatalf("%q: expected 1 WHERE condition, got %d", query, len(sel.Where))
		}
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		query string
		msg   string
	}{
		{"", "empty statement"},
		{";", "empty statement"},
		{"DROP TABLE t", "unsupported command"},
		{"UPDATE t", "unsupported command"},
		{"users", "unsupported command"},
		{"CREATE t (id INTEGER)", "expected TABLE"},
		{"CREATE TABLE (id INTEGER)", "expected table name"},
		{"CREATE TABLE t id INTEGER", "expected '('"},
		{"CREATE TABLE t ()", "expected column name"},
		{"CREATE TABLE t (id)", "expected data type"},
		{"CREATE TABLE t (id WIDGET)", "expected data type"},
		{"CREATE TABLE t (id INTEGER", "expected ')'"},
		{"CREATE TABLE t (id INTEGER, id TEXT)", "duplicate column"},
		{"CREATE TABLE t (id INTEGER) extra", "unexpected identifier"},
		{"CREATE TABLE t (id INTEGER);;", "unexpected ';'"},
		{"INSERT t (id) VALUES (1)", "expected INTO"},
		{"INSERT INTO t VALUES (1)", "expected '('"},
		{"INSERT INTO t (id) (1)", "expected VALUES"},
		{"INSERT INTO t (id) VALUES (id)", "expected literal"},
		{"INSERT INTO t (id, name) VALUES (1)", "2 columns but 1 values"},
		{"INSERT INTO t (id) VALUES (1, 2)", "1 columns but 2 values"},
		{"SELECT FROM t", "expected column name or '*'"},
		{"SELECT a, FROM t", "expected column name or '*'"},
		{"SELECT a t", "expected FROM"},
		{"SELECT a FROM", "expected table name"},
		{"SELECT a FROM t WHERE", "expected column name or literal"},
		{"SELECT a FROM t WHERE a", "expected comparison operator"},
		{"SELECT a FROM t WHERE a = ", "expected column name or literal"},
		{"SELECT a FROM t WHERE a = 1 AND", "expected column name or literal"},
		{"SELECT a FROM t WHERE a = 1 b = 2", "unexpected identifier"},
		{"SELECT a FROM t JOIN u", "expected ON"},
		{"SELECT a FROM t JOIN u ON a = b JOIN v ON a = c", "only one JOIN"},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.query)
		if err == nil {
			t.Fatalf("%q: expected error, got command %s", tc.query, spew.Sdump(cmd))
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("%q: expected *ParseError, got %T (%v)", tc.query, err, err)
		}
		if !strings.Contains(err.Error(), tc.msg) {
			t.Fatalf("%q: expected error containing %q, got %q", tc.query, tc.msg, err.Error())
		}
	}
}

func TestParse_LexErrorPassesThrough(t *testing.T) {
	_, err := Parse("SELECT 'oops FROM t")
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *LexError, got %T (%v)", err, err)
	}
}

func TestParseTokens_NotEqualNeedsEquals(t *testing.T) {
	tokens := []Token{
		KeywordToken(KwSelect), IdentToken("a"), KeywordToken(KwFrom), IdentToken("t"),
		KeywordToken(KwWhere), IdentToken("a"), SymbolToken('!'), NumberToken(1),
	}
	_, err := ParseTokens(tokens)
	if err == nil || !strings.Contains(err.Error(), "expected '=' after '!'") {
		t.Fatalf("expected '!' without '=' to fail, got %v", err)
	}
}

func TestCache_ParseCached(t *testing.T) {
	c := NewCache(2)

	first, err := c.ParseCached("SELECT * FROM t;")
	if err != nil {
		t.Fatalf("ParseCached failed: %v", err)
	}
	second, err := c.ParseCached("  SELECT * FROM t;  ")
	if err != nil {
		t.Fatalf("ParseCached failed: %v", err)
	}
	if first != second {
		t.Fatalf("expected the cached command to be reused")
	}

	if _, err := c.ParseCached("SELECT FROM"); err == nil {
		t.Fatalf("expected parse error")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 cached entry, got %d", c.Len())
	}

	_, _ = c.ParseCached("SELECT a FROM t")
	_, _ = c.ParseCached("SELECT b FROM t")
	if c.Len() != 2 {
		t.Fatalf("expected cache to stay at 2 entries, got %d", c.Len())
	}
}

func TestCache_Disabled(t *testing.T) {
	for _, size := range []int{0, -1} {
		c := NewCache(size)

		first, err := c.ParseCached("SELECT * FROM t")
		if err != nil {
			t.Fatalf("ParseCached failed: %v", err)
		}
		second, err := c.ParseCached("SELECT * FROM t")
		if err != nil {
			t.Fatalf("ParseCached failed: %v", err)
		}
		if first == second {
			t.Fatalf("size %d: expected a fresh command on every call", size)
		}
		if c.Len() != 0 {
			t.Fatalf("size %d: expected an empty cache, got %d entries", size, c.Len())
		}
	}
}
