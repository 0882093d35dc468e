package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRow(t *testing.T) {
	assert.NoError(t, ValidateRow("post_like", Row{"post_id": 1, "user_id": 2}))
	assert.Error(t, ValidateRow("user; DROP TABLE user", Row{"id": 1}))
	assert.Error(t, ValidateRow("user", Row{"first name": "x"}))
	assert.Error(t, ValidateRow("user", Row{}))
}

func TestEncodeLists(t *testing.T) {
	row := Row{
		"author_id":   int64(3),
		"attachments": []string{"alpha", "beta"},
	}

	encoded, err := EncodeLists(row)
	require.NoError(t, err)

	assert.Equal(t, `["alpha","beta"]`, encoded["attachments"])
	assert.Equal(t, int64(3), encoded["author_id"])
	assert.Equal(t, []string{"alpha", "beta"}, row["attachments"], "input row must not change")
}

func TestRowCountQuery(t *testing.T) {
	quote := func(s string) string { return `"` + s + `"` }
	got := RowCountQuery([]string{"user", "post"}, quote)
	assert.Equal(t,
		`SELECT 'user' AS table_name, COUNT(*) AS row_count FROM "user" UNION ALL `+
			`SELECT 'post' AS table_name, COUNT(*) AS row_count FROM "post"`,
		got)
}
