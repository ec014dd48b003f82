package sql

import "fmt"

// LexError reports text the tokenizer could not turn into a token.
type LexError struct {
	Msg string
	Pos int // byte offset into the statement
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Pos, e.Msg)
}

// ParseError reports a token sequence that does not match the grammar.
// Msg names the construct that was expected.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Msg
}

func parseErrorf(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}
