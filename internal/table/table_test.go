package table

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Table {
	t.Helper()
	tb := New("id", "name")
	require.NoError(t, tb.Append(int64(1), "alice"))
	require.NoError(t, tb.Append(int64(2), nil))
	return tb
}

func TestAppend_WrongWidth(t *testing.T) {
	tb := New("id", "name")
	assert.Error(t, tb.Append(1))
	assert.Equal(t, 0, tb.Len())
}

func TestColumn(t *testing.T) {
	tb := sample(t)
	assert.Equal(t, 2, tb.Len())

	names, err := tb.Column("name")
	require.NoError(t, err)
	assert.Equal(t, []any{"alice", nil}, names)

	_, err = tb.Column("missing")
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	tb := sample(t)

	var buf bytes.Buffer
	require.NoError(t, tb.Write(&buf, "csv"))
	assert.Equal(t, "id,name\n1,alice\n2,\n", buf.String())

	buf.Reset()
	require.NoError(t, tb.Write(&buf, "text"))
	assert.Contains(t, buf.String(), "id  name\n1   alice\n")

	buf.Reset()
	require.NoError(t, tb.Write(&buf, "json"))
	assert.JSONEq(t, `[{"id":1,"name":"alice"},{"id":2,"name":null}]`, buf.String())

	buf.Reset()
	require.NoError(t, tb.Write(&buf, "yaml"))
	assert.Contains(t, buf.String(), "name: alice")

	assert.Error(t, tb.Write(&buf, "xml"))
}

func TestWrite_KeepsColumnOrder(t *testing.T) {
	tb := New("zeta", "alpha", "mid")
	require.NoError(t, tb.Append("z", int64(1), nil))

	var buf bytes.Buffer
	require.NoError(t, tb.WriteJSON(&buf))
	assert.Equal(t, "[\n  {\n    \"zeta\": \"z\",\n    \"alpha\": 1,\n    \"mid\": null\n  }\n]\n", buf.String())

	buf.Reset()
	require.NoError(t, tb.WriteYAML(&buf))
	assert.Equal(t, "- zeta: z\n  alpha: 1\n  mid: null\n", buf.String())
}

func TestWrite_EmptyTable(t *testing.T) {
	tb := New("id")

	var buf bytes.Buffer
	require.NoError(t, tb.WriteJSON(&buf))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, tb.WriteYAML(&buf))
	assert.Equal(t, "[]\n", buf.String())
}
