package sqlutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.Exec(`
		CREATE TABLE items (id INTEGER PRIMARY KEY, label TEXT, blob_col BLOB);
		INSERT INTO items VALUES (1, 'alpha', x'616263');
		INSERT INTO items VALUES (2, NULL, NULL);
	`)
	require.NoError(t, err)
	return conn
}

func TestScanAll(t *testing.T) {
	conn := openTestDB(t)

	query := "SELECT id, label, blob_col FROM items ORDER BY id"
	rows, err := conn.Query(query)
	require.NoError(t, err)
	defer rows.Close()

	result, columns, err := ScanAll(rows, query)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "label", "blob_col"}, columns)
	require.Len(t, result, 2)
	assert.Equal(t, int64(1), result[0][0])
	assert.Equal(t, "alpha", result[0][1])
	// byte blobs come back as strings
	assert.Equal(t, "abc", result[0][2])
	assert.Nil(t, result[1][1])
}

func TestObjectsFromRows(t *testing.T) {
	objects := ObjectsFromRows([][]any{
		{"public", "orders", int64(4096)},
		{[]byte("public"), []byte("users"), "1024"},
		{"short"},
	})

	require.Len(t, objects, 2)
	assert.Equal(t, "orders", objects[0].Name)
	assert.Equal(t, int64(4096), objects[0].SizeBytes)
	assert.Equal(t, "users", objects[1].Name)
	assert.Equal(t, int64(1024), objects[1].SizeBytes)
}

func TestColumnsAndIndexesFromRows(t *testing.T) {
	columns := ColumnsFromRows([][]any{
		{"id", "bigint"},
		{[]byte("name"), []byte("text")},
	})
	require.Len(t, columns, 2)
	assert.Equal(t, "bigint", columns[0].Type)
	assert.Equal(t, "name", columns[1].Name)

	indexes := IndexesFromRows([][]any{
		{"orders_pkey", "PRIMARY KEY (id)"},
	})
	require.Len(t, indexes, 1)
	assert.Equal(t, "orders_pkey", indexes[0].Name)
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		in   any
		want int64
	}{
		{int64(5), 5},
		{int32(5), 5},
		{5, 5},
		{uint64(5), 5},
		{float64(5.9), 5},
		{"42", 42},
		{[]byte("42"), 42},
		{nil, 0},
		{"not a number", 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ToInt64(c.in), "ToInt64(%v)", c.in)
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "x", ToString("x"))
	assert.Equal(t, "x", ToString([]byte("x")))
	assert.Equal(t, "7", ToString(int64(7)))
}
