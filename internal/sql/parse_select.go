package sql

// parseSelect parses:
//
//	SELECT item, item, ... FROM name
//	    [JOIN other ON a = b]
//	    [WHERE cond (AND|OR) cond ...]
//	    [JOIN other ON a = b]
//
// An item is a column name, a quoted column name or '*'. At most one JOIN
// clause is accepted, either before or after the WHERE clause.
func (p *parser) parseSelect() (Command, error) {
	if err := p.expectKeyword(KwSelect, "at start of statement"); err != nil {
		return nil, err
	}

	var columns []SelectItem
	for {
		t, ok := p.peek()
		switch {
		case ok && t.isName():
			columns = append(columns, SelectItem{Name: t.Text})
		case ok && t.IsSymbol('*'):
			columns = append(columns, SelectItem{Wildcard: true})
		default:
			return nil, parseErrorf("expected column name or '*' in SELECT list, found %s", p.found())
		}
		p.pos++
		if !p.acceptSymbol(',') {
			break
		}
	}

	if err := p.expectKeyword(KwFrom, "after SELECT list"); err != nil {
		return nil, err
	}
	table, err := p.expectIdentifier("table name after FROM")
	if err != nil {
		return nil, err
	}

	sel := &SelectCmd{
		Table:   table,
		Columns: columns,
	}

	if err := p.parseOptionalJoin(sel); err != nil {
		return nil, err
	}

	if p.acceptKeyword(KwWhere) {
		where, err := p.parseWhere()
		if err != nil {
			return nil, err
		}
		sel.Where = where
	}

	if err := p.parseOptionalJoin(sel); err != nil {
		return nil, err
	}

	return sel, nil
}

// parseWhere parses the condition list following WHERE. AND and OR are
// consumed the same way; each condition records which one preceded it.
func (p *parser) parseWhere() ([]Condition, error) {
	first, err := p.parseCondition(ConnNone)
	if err != nil {
		return nil, err
	}
	conds := []Condition{first}

	for {
		var conn Connective
		switch {
		case p.acceptKeyword(KwAnd):
			conn = ConnAnd
		case p.acceptKeyword(KwOr):
			conn = ConnOr
		default:
			return conds, nil
		}
		c, err := p.parseCondition(conn)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
}

func (p *parser) parseOptionalJoin(sel *SelectCmd) error {
	if !p.acceptKeyword(KwJoin) {
		return nil
	}
	if sel.Join != nil {
		return parseErrorf("only one JOIN clause is supported")
	}

	table, err := p.expectIdentifier("table name after JOIN")
	if err != nil {
		return err
	}
	if err := p.expectKeyword(KwOn, "after JOIN table"); err != nil {
		return err
	}
	on, err := p.parseCondition(ConnNone)
	if err != nil {
		return err
	}

	sel.Join = &JoinClause{Table: table, On: on}
	return nil
}
