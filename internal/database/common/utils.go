package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// validIdentifier validates SQL identifiers (table/column names) to prevent SQL injection
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

var (
	ErrNoTransaction         = errors.New("no transaction in progress")
	ErrTransactionInProgress = errors.New("transaction already in progress")
)

// Row maps column names to the values of one inserted row.
type Row map[string]interface{}

func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// ValidateRow checks the table name and every column name of row.
func ValidateRow(table string, row Row) error {
	if !IsValidIdentifier(table) {
		return fmt.Errorf("invalid table name: %s", table)
	}
	if len(row) == 0 {
		return fmt.Errorf("no columns to insert into %s", table)
	}
	for col := range row {
		if !IsValidIdentifier(col) {
			return fmt.Errorf("invalid column name in table %s: %s", table, col)
		}
	}
	return nil
}

func ValidateTables(tables []string) error {
	for _, table := range tables {
		if !IsValidIdentifier(table) {
			return fmt.Errorf("invalid table name: %s", table)
		}
	}
	return nil
}

// EncodeLists rewrites string list values as JSON text for dialects without
// array columns. The input row is left untouched.
func EncodeLists(row Row) (Row, error) {
	out := make(Row, len(row))
	for col, val := range row {
		list, ok := val.([]string)
		if !ok {
			out[col] = val
			continue
		}
		encoded, err := json.Marshal(list)
		if err != nil {
			return nil, fmt.Errorf("failed to encode column %s: %w", col, err)
		}
		out[col] = string(encoded)
	}
	return out, nil
}

// RowCountQuery builds one UNION ALL query returning (table_name, row_count)
// for every table. Table names must already be validated.
func RowCountQuery(tables []string, quote func(string) string) string {
	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		parts = append(parts, fmt.Sprintf("SELECT '%s' AS table_name, COUNT(*) AS row_count FROM %s", table, quote(table)))
	}
	return strings.Join(parts, " UNION ALL ")
}
