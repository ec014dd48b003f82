package sql

import "strconv"

// parseInsert parses:
//
//	INSERT INTO name (col, col, ...) VALUES (literal, literal, ...)
//
// The column list is mandatory and must have as many entries as the value
// list.
func (p *parser) parseInsert() (Command, error) {
	if err := p.expectKeyword(KwInsert, "at start of statement"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(KwInto, "after INSERT"); err != nil {
		return nil, err
	}

	table, err := p.expectIdentifier("table name after INSERT INTO")
	if err != nil {
		return nil, err
	}

	if err := p.expectSymbol('(', "before column list"); err != nil {
		return nil, err
	}
	var columns []string
	for {
		col, err := p.expectIdentifier("column name in INSERT column list")
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
		if p.acceptSymbol(',') {
			continue
		}
		if err := p.expectSymbol(')', "or ',' in column list"); err != nil {
			return nil, err
		}
		break
	}

	if err := p.expectKeyword(KwValues, "after column list"); err != nil {
		return nil, err
	}

	if err := p.expectSymbol('(', "after VALUES"); err != nil {
		return nil, err
	}
	var values []Literal
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		values = append(values, lit)
		if p.acceptSymbol(',') {
			continue
		}
		if err := p.expectSymbol(')', "or ',' in VALUES list"); err != nil {
			return nil, err
		}
		break
	}

	if len(values) != len(columns) {
		return nil, parseErrorf("INSERT has %d columns but %d values", len(columns), len(values))
	}

	return &InsertCmd{
		Table:   table,
		Columns: columns,
		Values:  values,
	}, nil
}

// parseLiteral parses a number or a single-quoted string.
func (p *parser) parseLiteral() (Literal, error) {
	t, ok := p.peek()
	if ok {
		switch t.Kind {
		case TokenNumber:
			p.pos++
			return Literal{Kind: LitNumber, Raw: strconv.FormatInt(t.Num, 10)}, nil
		case TokenString:
			p.pos++
			return Literal{Kind: LitString, Raw: t.Text}, nil
		}
	}
	return Literal{}, parseErrorf("expected literal (number or string) in VALUES list, found %s", p.found())
}
