package sql

// parseCreateTable parses:
//
//	CREATE TABLE name (col TYPE, col TYPE, ...)
func (p *parser) parseCreateTable() (Command, error) {
	if err := p.expectKeyword(KwCreate, "at start of statement"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(KwTable, "after CREATE"); err != nil {
		return nil, err
	}

	name, err := p.expectIdentifier("table name after CREATE TABLE")
	if err != nil {
		return nil, err
	}

	if err := p.expectSymbol('(', "before column definitions"); err != nil {
		return nil, err
	}

	var columns []Column
	seen := make(map[string]bool)
	for {
		colName, err := p.expectIdentifier("column name")
		if err != nil {
			return nil, err
		}
		if seen[colName] {
			return nil, parseErrorf("duplicate column %q in CREATE TABLE", colName)
		}
		seen[colName] = true

		t, ok := p.peek()
		if !ok || t.Kind != TokenDataType {
			return nil, parseErrorf("expected data type for column %q, found %s", colName, p.found())
		}
		p.pos++

		columns = append(columns, Column{Name: colName, Type: t.Type})

		if p.acceptSymbol(',') {
			continue
		}
		if err := p.expectSymbol(')', "or ',' after column definition"); err != nil {
			return nil, err
		}
		break
	}

	return &CreateTableCmd{
		Name:    name,
		Columns: columns,
	}, nil
}
