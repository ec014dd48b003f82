package sql

import (
	"fmt"
	"strconv"
)

// Command is the parsed form of one statement.
type Command interface {
	cmdNode()
}

// CreateTableCmd represents a parsed CREATE TABLE statement.
type CreateTableCmd struct {
	Name    string
	Columns []Column
}

// InsertCmd represents a parsed INSERT statement. Values are kept as raw
// literals; turning them into typed Values happens at execution time,
// against the target table's schema.
type InsertCmd struct {
	Table   string
	Columns []string
	Values  []Literal
}

// SelectCmd represents a parsed SELECT statement.
// Where is nil when the statement had no WHERE clause.
type SelectCmd struct {
	Table   string
	Columns []SelectItem
	Where   []Condition
	Join    *JoinClause
}

// SelectItem is one entry of a SELECT list: either the bare '*' or a column
// name. A quoted "*" is a column name, not a wildcard.
type SelectItem struct {
	Name     string
	Wildcard bool
}

func (it SelectItem) String() string {
	if it.Wildcard {
		return "*"
	}
	return it.Name
}

func (*CreateTableCmd) cmdNode() {}
func (*InsertCmd) cmdNode()      {}
func (*SelectCmd) cmdNode()      {}

// LiteralKind tells a Literal's source token apart.
type LiteralKind int

const (
	LitNumber LiteralKind = iota
	LitString
)

// Literal is a constant exactly as it appeared in the statement.
type Literal struct {
	Kind LiteralKind
	Raw  string // digits for LitNumber, text between the quotes for LitString
}

// Value converts the literal into a typed Value: numbers become integers and
// strings become text.
func (l Literal) Value() (Value, error) {
	switch l.Kind {
	case LitNumber:
		n, err := strconv.ParseInt(l.Raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid integer literal %q: %w", l.Raw, err)
		}
		return Integer(n), nil
	case LitString:
		return Text(l.Raw), nil
	default:
		return Value{}, fmt.Errorf("unknown literal kind %d", l.Kind)
	}
}

func (l Literal) String() string {
	if l.Kind == LitString {
		return "'" + l.Raw + "'"
	}
	return l.Raw
}

// OperandKind tells what token an Operand came from.
type OperandKind int

const (
	OperandColumn OperandKind = iota // identifier or quoted identifier
	OperandNumber
	OperandString
)

// Operand is one side of a Condition, holding the raw token text.
type Operand struct {
	Kind OperandKind
	Text string
}

// Connective joins a condition to the one before it. AND and OR are
// recorded but carry no evaluation semantics yet.
type Connective int

const (
	ConnNone Connective = iota // first condition
	ConnAnd
	ConnOr
)

// Condition is a single "left op right" comparison of a WHERE or ON clause.
type Condition struct {
	Conn  Connective
	Left  Operand
	Op    string // one of "=", ">", "<", "!="
	Right Operand
}

// JoinClause is the parsed "JOIN table ON condition" part of a SELECT.
// It is recognized by the parser but never executed.
type JoinClause struct {
	Table string
	On    Condition
}
