package schema

import "fmt"

// ColumnType denotes the value type of a column.
type ColumnType int

// Recognized values of [ColumnType].
const (
	// ColumnTypeInvalid indicates an invalid column type.
	ColumnTypeInvalid ColumnType = iota

	ColumnTypeBool
	ColumnTypeInt64
	ColumnTypeFloat64
	ColumnTypeString
	ColumnTypeTimestamp
)

var columnTypeStrings = map[ColumnType]string{
	ColumnTypeInvalid: "invalid",

	ColumnTypeBool:      "bool",
	ColumnTypeInt64:     "int64",
	ColumnTypeFloat64:   "float64",
	ColumnTypeString:    "string",
	ColumnTypeTimestamp: "timestamp",
}

// String returns the string representation of the ColumnType.
func (t ColumnType) String() string {
	if s, ok := columnTypeStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("ColumnType(%d)", t)
}

// ParseColumnType converts the string representation of a column type back
// into a [ColumnType].
func ParseColumnType(s string) (ColumnType, error) {
	switch s {
	case "bool":
		return ColumnTypeBool, nil
	case "int64":
		return ColumnTypeInt64, nil
	case "float64":
		return ColumnTypeFloat64, nil
	case "string":
		return ColumnTypeString, nil
	case "timestamp":
		return ColumnTypeTimestamp, nil
	default:
		return ColumnTypeInvalid, fmt.Errorf("unknown column type %q", s)
	}
}

// ColumnSchema describes a column.
type ColumnSchema struct {
	Name string
	Type ColumnType
}

// Schema describes the row type of a relation.
type Schema struct {
	Columns []ColumnSchema
}

// FieldNames returns the output field names of the schema in column order.
// Duplicate names are disambiguated with a numeric suffix, so the result is
// usable as unique keys for the columns.
func (s Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Columns))
	seen := make(map[string]struct{}, len(s.Columns))
	for _, col := range s.Columns {
		name := col.Name
		for i := 0; ; i++ {
			if _, ok := seen[name]; !ok {
				break
			}
			name = fmt.Sprintf("%s%d", col.Name, i)
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Column returns the schema of the first column with the given name.
func (s Schema) Column(name string) (ColumnSchema, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnSchema{}, false
}
