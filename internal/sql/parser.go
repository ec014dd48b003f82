package sql

// Parse tokenizes and parses a single SQL statement.
// Supported: CREATE TABLE, INSERT INTO ... VALUES, SELECT.
func Parse(query string) (Command, error) {
	tokens, err := Tokenize(query)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses the complete token sequence of one statement.
// Parsing is all-or-nothing: the first mismatch aborts with a *ParseError
// naming what was expected.
func ParseTokens(tokens []Token) (Command, error) {
	p := &parser{tokens: tokens}

	first, ok := p.peek()
	if !ok || first.Kind == TokenSemicolon {
		return nil, parseErrorf("empty statement")
	}

	var (
		cmd Command
		err error
	)
	switch {
	case first.IsKeyword(KwCreate):
		cmd, err = p.parseCreateTable()
	case first.IsKeyword(KwInsert):
		cmd, err = p.parseInsert()
	case first.IsKeyword(KwSelect):
		cmd, err = p.parseSelect()
	default:
		return nil, parseErrorf("unsupported command %s (supported: CREATE TABLE, INSERT, SELECT)", describe(first))
	}
	if err != nil {
		return nil, err
	}

	if err := p.finish(); err != nil {
		return nil, err
	}
	return cmd, nil
}
