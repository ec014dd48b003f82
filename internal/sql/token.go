package sql

import (
	"fmt"
	"strconv"
	"strings"
)

// Keyword is one of the reserved words of the statement grammar.
type Keyword int

const (
	KwSelect Keyword = iota
	KwFrom
	KwWhere
	KwInsert
	KwInto
	KwValues
	KwCreate
	KwTable
	KwAnd
	KwOr
	KwJoin
	KwOn
)

var keywordNames = [...]string{
	KwSelect: "SELECT",
	KwFrom:   "FROM",
	KwWhere:  "WHERE",
	KwInsert: "INSERT",
	KwInto:   "INTO",
	KwValues: "VALUES",
	KwCreate: "CREATE",
	KwTable:  "TABLE",
	KwAnd:    "AND",
	KwOr:     "OR",
	KwJoin:   "JOIN",
	KwOn:     "ON",
}

var keywordsByName = func() map[string]Keyword {
	m := make(map[string]Keyword, len(keywordNames))
	for kw, name := range keywordNames {
		m[name] = Keyword(kw)
	}
	return m
}()

func (k Keyword) String() string {
	if k < 0 || int(k) >= len(keywordNames) {
		return fmt.Sprintf("Keyword(%d)", int(k))
	}
	return keywordNames[k]
}

// LookupKeyword matches word case-insensitively against the keyword table.
func LookupKeyword(word string) (Keyword, bool) {
	kw, ok := keywordsByName[strings.ToUpper(word)]
	return kw, ok
}

// TokenKind tags which variant a Token holds.
type TokenKind int

const (
	TokenKeyword TokenKind = iota
	TokenIdentifier
	TokenQuotedIdentifier
	TokenDataType
	TokenNumber
	TokenString
	TokenSymbol
	TokenSemicolon
)

func (k TokenKind) String() string {
	switch k {
	case TokenKeyword:
		return "keyword"
	case TokenIdentifier:
		return "identifier"
	case TokenQuotedIdentifier:
		return "quoted identifier"
	case TokenDataType:
		return "data type"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenSymbol:
		return "symbol"
	case TokenSemicolon:
		return "';'"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a single lexical unit. Which payload field is meaningful depends
// on Kind: Keyword for TokenKeyword, Type for TokenDataType, Num for
// TokenNumber, Sym for TokenSymbol and Text for identifiers and strings.
// Tokens are comparable with ==.
type Token struct {
	Kind    TokenKind
	Keyword Keyword
	Type    DataType
	Text    string
	Num     int64
	Sym     byte
}

// Constructors for each token variant.

func KeywordToken(k Keyword) Token { return Token{Kind: TokenKeyword, Keyword: k} }
func IdentToken(s string) Token { return Token{Kind: TokenIdentifier, Text: s} }
func QuotedIdentToken(s string) Token { return Token{Kind: TokenQuotedIdentifier, Text: s} }
func DataTypeToken(dt DataType) Token { return Token{Kind: TokenDataType, Type: dt} }
func NumberToken(n int64) Token { return Token{Kind: TokenNumber, Num: n} }
func StringToken(s string) Token { return Token{Kind: TokenString, Text: s} }
func SymbolToken(c byte) Token { return Token{Kind: TokenSymbol, Sym: c} }
func SemicolonToken() Token { return Token{Kind: TokenSemicolon} }
func (t Token) IsKeyword(k Keyword) bool { return t.Kind == TokenKeyword && t.Keyword == k }
func (t Token) IsSymbol(c byte) bool { return t.Kind == TokenSymbol && t.Sym == c }
func (t Token) isName() bool { return t.Kind == TokenIdentifier || t.Kind == TokenQuotedIdentifier }
func (t Token) isOperand() bool { return t.isName() || t.Kind == TokenNumber || t.Kind == TokenString }

// String renders the token the way it would be written in a statement.
func (t Token) String() string {
	switch t.Kind {
	case TokenKeyword:
		return t.Keyword.String()
	case TokenIdentifier:
		return t.Text
	case TokenQuotedIdentifier:
		return `"` + t.Text + `"`
	case TokenDataType:
		return t.Type.String()
	case TokenNumber:
		return strconv.FormatInt(t.Num, 10)
	case TokenString:
		return "'" + t.Text + "'"
	case TokenSymbol:
		return string(t.Sym)
	case TokenSemicolon:
		return ";"
	default:
		return "?"
	}
}

// Render joins tokens back into canonical statement text: upper-case
// keywords and types, one space between tokens, no space before ',' or ';'
// and "!=" kept together. Tokenizing the result yields the same tokens.
func Render(tokens []Token) string {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 {
			prev := tokens[i-1]
			glued := t.IsSymbol(',') || t.Kind == TokenSemicolon ||
				(prev.IsSymbol('!') && t.IsSymbol('='))
			if !glued {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.String())
	}
	return b.String()
}
