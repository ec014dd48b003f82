package sql

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Tokenize splits a single statement into tokens.
//
// Rules, checked in this order at every position:
//
//	;                 Semicolon
//	space, tab, CR/LF skipped
//	[A-Za-z_][A-Za-z0-9_]*  keyword, then data type, else Identifier
//	[0-9]+            Number (int64, no sign or fraction)
//	'...'             String
//	"..."             QuotedIdentifier
//	, ( ) > < = *     Symbol
//	!=                Symbol('!') followed by Symbol('=')
//
// Anything else is a *LexError.
func Tokenize(input string) ([]Token, error) {
	lx := lexer{input: input}
	for lx.pos < len(lx.input) {
		if err := lx.next(); err != nil {
			return nil, err
		}
	}
	return lx.tokens, nil
}

type lexer struct {
	input  string
	pos    int
	tokens []Token
}

func (lx *lexer) emit(t Token) {
	lx.tokens = append(lx.tokens, t)
}

func (lx *lexer) next() error {
	c := lx.input[lx.pos]
	switch {
	case c == ';':
		lx.emit(SemicolonToken())
		lx.pos++
	case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		lx.pos++
	case isWordStart(c):
		lx.readWord()
	case isDigit(c):
		return lx.readNumber()
	case c == '\'':
		s, err := lx.readQuoted('\'', "string literal")
		if err != nil {
			return err
		}
		lx.emit(StringToken(s))
	case c == '"':
		s, err := lx.readQuoted('"', "quoted identifier")
		if err != nil {
			return err
		}
		lx.emit(QuotedIdentToken(s))
	case strings.IndexByte(",()><=*", c) >= 0:
		lx.emit(SymbolToken(c))
		lx.pos++
	case c == '!' && lx.pos+1 < len(lx.input) && lx.input[lx.pos+1] == '=':
		// Only the '!' is consumed; the '=' becomes its own symbol.
		lx.emit(SymbolToken('!'))
		lx.pos++
	default:
		return &LexError{Msg: "unexpected character " + strconv.QuoteRune(rune(c)), Pos: lx.pos}
	}
	return nil
}

func (lx *lexer) readWord() {
	start := lx.pos
	for lx.pos < len(lx.input) && isWordPart(lx.input[lx.pos]) {
		lx.pos++
	}
	word := lx.input[start:lx.pos]

	if kw, ok := LookupKeyword(word); ok {
		lx.emit(KeywordToken(kw))
		return
	}
	if dt, ok := LookupDataType(word); ok {
		lx.emit(DataTypeToken(dt))
		return
	}
	lx.emit(IdentToken(word))
}

func (lx *lexer) readNumber() error {
	start := lx.pos
	for lx.pos < len(lx.input) && isDigit(lx.input[lx.pos]) {
		lx.pos++
	}
	n, err := strconv.ParseInt(lx.input[start:lx.pos], 10, 64)
	if err != nil {
		return &LexError{Msg: "invalid number literal " + lx.input[start:lx.pos], Pos: start}
	}
	lx.emit(NumberToken(n))
	return nil
}

// readQuoted consumes a quote-delimited run and returns its contents.
// There are no escape sequences. The contents must be valid UTF-8.
func (lx *lexer) readQuoted(quote byte, what string) (string, error) {
	start := lx.pos
	end := strings.IndexByte(lx.input[start+1:], quote)
	if end < 0 {
		return "", &LexError{Msg: "unterminated " + what, Pos: start}
	}
	s := lx.input[start+1 : start+1+end]
	if !utf8.ValidString(s) {
		return "", &LexError{Msg: "invalid UTF-8 in " + what, Pos: start}
	}
	lx.pos = start + 1 + end + 1
	return s, nil
}

func isWordStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isWordPart(c byte) bool {
	return isWordStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
