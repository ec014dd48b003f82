package sql

import (
	"fmt"
	"strconv"
	"strings"
)

// DataType is the declared type of a column.
type DataType int

const (
	TypeInteger DataType = iota
	TypeText
	TypeReal
	TypeBlob
	TypeNull
	TypeBoolean
	TypeDate
	TypeTimestamp
	TypeVarchar
	TypeChar
	TypeFloat
	TypeDouble
	TypeDecimal
)

var dataTypeNames = [...]string{
	TypeInteger:   "INTEGER",
	TypeText:      "TEXT",
	TypeReal:      "REAL",
	TypeBlob:      "BLOB",
	TypeNull:      "NULL",
	TypeBoolean:   "BOOLEAN",
	TypeDate:      "DATE",
	TypeTimestamp: "TIMESTAMP",
	TypeVarchar:   "VARCHAR",
	TypeChar:      "CHAR",
	TypeFloat:     "FLOAT",
	TypeDouble:    "DOUBLE",
	TypeDecimal:   "DECIMAL",
}

var dataTypesByName = func() map[string]DataType {
	m := make(map[string]DataType, len(dataTypeNames))
	for dt, name := range dataTypeNames {
		m[name] = DataType(dt)
	}
	return m
}()

func (dt DataType) String() string {
	if dt < 0 || int(dt) >= len(dataTypeNames) {
		return fmt.Sprintf("DataType(%d)", int(dt))
	}
	return dataTypeNames[dt]
}

// LookupDataType matches name case-insensitively against the data type table.
func LookupDataType(name string) (DataType, bool) {
	dt, ok := dataTypesByName[strings.ToUpper(name)]
	return dt, ok
}

// MarshalText keeps snapshots readable: columns are written as "INTEGER",
// "TEXT", ... instead of enum ordinals.
func (dt DataType) MarshalText() ([]byte, error) {
	if dt < 0 || int(dt) >= len(dataTypeNames) {
		return nil, fmt.Errorf("unknown data type %d", int(dt))
	}
	return []byte(dataTypeNames[dt]), nil
}

func (dt *DataType) UnmarshalText(b []byte) error {
	v, ok := LookupDataType(string(b))
	if !ok {
		return fmt.Errorf("unknown data type %q", string(b))
	}
	*dt = v
	return nil
}

// ValueKind tags which variant a Value holds.
type ValueKind int

const (
	KindInteger ValueKind = iota
	KindText
)

func (k ValueKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

func (k ValueKind) MarshalText() ([]byte, error) {
	switch k {
	case KindInteger, KindText:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown value kind %d", int(k))
}

func (k *ValueKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "integer":
		*k = KindInteger
	case "text":
		*k = KindText
	default:
		return fmt.Errorf("unknown value kind %q", string(b))
	}
	return nil
}

// Value represents a single cell in a table (one column in one row).
// Only the field matching Kind should be read; the other stays at its zero
// value.
type Value struct {
	Kind ValueKind `json:"kind"`

	I64 int64  `json:"i,omitempty"` // for KindInteger
	S   string `json:"s,omitempty"` // for KindText
}

// Integer returns an integer Value.
func Integer(i int64) Value { return Value{Kind: KindInteger, I64: i} }

// Text returns a text Value.
func Text(s string) Value { return Value{Kind: KindText, S: s} }

func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.I64, 10)
	case KindText:
		return v.S
	default:
		return "?"
	}
}

// Satisfies reports whether v may be stored in a column declared as dt.
// There is no coercion: integers only go into INTEGER columns and text only
// into TEXT, VARCHAR and CHAR columns.
func (v Value) Satisfies(dt DataType) bool {
	switch v.Kind {
	case KindInteger:
		return dt == TypeInteger
	case KindText:
		return dt == TypeText || dt == TypeVarchar || dt == TypeChar
	default:
		return false
	}
}

// Compare orders values totally: every integer sorts before every text
// value, integers compare numerically and text compares byte-wise.
func Compare(a, b Value) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	switch a.Kind {
	case KindInteger:
		switch {
		case a.I64 < b.I64:
			return -1
		case a.I64 > b.I64:
			return 1
		}
		return 0
	default:
		return strings.Compare(a.S, b.S)
	}
}

// Row represents one record in a table: a slice of Values, one per column.
type Row []Value

// Column describes metadata for a single column in a table.
type Column struct {
	Name string   `json:"name"`
	Type DataType `json:"type"`
}
