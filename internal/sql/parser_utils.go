package sql

import "strconv"

// parser walks a token slice once, front to back.
type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

// found describes the next token for error messages.
func (p *parser) found() string {
	t, ok := p.peek()
	if !ok {
		return "end of statement"
	}
	return describe(t)
}

// acceptKeyword consumes the next token if it is kw.
func (p *parser) acceptKeyword(kw Keyword) bool {
	if t, ok := p.peek(); ok && t.IsKeyword(kw) {
		p.pos++
		return true
	}
	return false
}

// acceptSymbol consumes the next token if it is the symbol c.
func (p *parser) acceptSymbol(c byte) bool {
	if t, ok := p.peek(); ok && t.IsSymbol(c) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectKeyword(kw Keyword, context string) error {
	if p.acceptKeyword(kw) {
		return nil
	}
	return parseErrorf("expected %s %s, found %s", kw, context, p.found())
}

func (p *parser) expectSymbol(c byte, context string) error {
	if p.acceptSymbol(c) {
		return nil
	}
	return parseErrorf("expected '%c' %s, found %s", c, context, p.found())
}

// expectIdentifier consumes a plain (unquoted) identifier.
func (p *parser) expectIdentifier(what string) (string, error) {
	if t, ok := p.peek(); ok && t.Kind == TokenIdentifier {
		p.pos++
		return t.Text, nil
	}
	return "", parseErrorf("expected %s, found %s", what, p.found())
}

// finish accepts one optional trailing semicolon and then requires the end
// of the token stream.
func (p *parser) finish() error {
	if t, ok := p.peek(); ok && t.Kind == TokenSemicolon {
		p.pos++
	}
	if p.pos < len(p.tokens) {
		return parseErrorf("unexpected %s after end of statement", p.found())
	}
	return nil
}

// parseCondition parses "operand op operand".
func (p *parser) parseCondition(conn Connective) (Condition, error) {
	left, err := p.parseOperand("left side of condition")
	if err != nil {
		return Condition{}, err
	}
	op, err := p.parseOperator()
	if err != nil {
		return Condition{}, err
	}
	right, err := p.parseOperand("right side of condition")
	if err != nil {
		return Condition{}, err
	}
	return Condition{Conn: conn, Left: left, Op: op, Right: right}, nil
}

func (p *parser) parseOperand(what string) (Operand, error) {
	t, ok := p.peek()
	if !ok || !t.isOperand() {
		return Operand{}, parseErrorf("expected column name or literal as %s, found %s", what, p.found())
	}
	p.pos++
	switch t.Kind {
	case TokenNumber:
		return Operand{Kind: OperandNumber, Text: strconv.FormatInt(t.Num, 10)}, nil
	case TokenString:
		return Operand{Kind: OperandString, Text: t.Text}, nil
	default:
		return Operand{Kind: OperandColumn, Text: t.Text}, nil
	}
}

func (p *parser) parseOperator() (string, error) {
	switch {
	case p.acceptSymbol('='):
		return "=", nil
	case p.acceptSymbol('>'):
		return ">", nil
	case p.acceptSymbol('<'):
		return "<", nil
	case p.acceptSymbol('!'):
		if !p.acceptSymbol('=') {
			return "", parseErrorf("expected '=' after '!', found %s", p.found())
		}
		return "!=", nil
	}
	return "", parseErrorf("expected comparison operator (=, >, <, !=), found %s", p.found())
}

// describe renders a token for error messages, e.g. `keyword FROM` or
// `identifier "users"`.
func describe(t Token) string {
	switch t.Kind {
	case TokenKeyword:
		return "keyword " + t.Keyword.String()
	case TokenDataType:
		return "data type " + t.Type.String()
	case TokenIdentifier, TokenQuotedIdentifier, TokenString:
		return t.Kind.String() + " " + strconv.Quote(t.Text)
	case TokenNumber:
		return "number " + strconv.FormatInt(t.Num, 10)
	case TokenSymbol:
		return "'" + string(t.Sym) + "'"
	default:
		return t.Kind.String()
	}
}
