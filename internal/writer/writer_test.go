package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"rowdb/internal/sql"
)

func sampleRows() []sql.Row {
	return []sql.Row{
		{sql.Integer(1), sql.Text("Tom")},
		{sql.Integer(250), sql.Text("Ann, \"the\" Great")},
	}
}

func TestTableWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableWriter(&buf).Write([]string{"id", "name"}, sampleRows()))

	want := "" +
		"+-----+------------------+\n" +
		"|  id |             name |\n" +
		"+-----+------------------+\n" +
		"|   1 | Tom              |\n" +
		"| 250 | Ann, \"the\" Great |\n" +
		"+-----+------------------+\n"
	require.Equal(t, want, buf.String())
}

func TestTableWriterEmptyAndWide(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableWriter(&buf).Write([]string{"v"}, nil))
	require.Equal(t, "+---+\n| v |\n+---+\n+---+\n", buf.String())

	buf.Reset()
	require.NoError(t, NewTableWriter(&buf).Write([]string{"name"}, []sql.Row{{sql.Text("日本")}}))
	require.Equal(t, "+------+\n| name |\n+------+\n| 日本 |\n+------+\n", buf.String())
}

func TestTableWriterRowMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := NewTableWriter(&buf).Write([]string{"a", "b"}, []sql.Row{{sql.Integer(1)}})
	require.Error(t, err)
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(&buf, ",").Write([]string{"id", "name"}, sampleRows()))

	want := "id,name\n" +
		"1,Tom\n" +
		"250,\"Ann, \"\"the\"\" Great\"\n"
	require.Equal(t, want, buf.String())
}

func TestCSVWriterDelimiter(t *testing.T) {
	var buf bytes.Buffer
	rows := []sql.Row{{sql.Text("a;b"), sql.Text("line\nbreak")}}
	require.NoError(t, NewCSVWriter(&buf, ";").Write([]string{"x", "y"}, rows))
	require.Equal(t, "x;y\n\"a;b\";\"line\nbreak\"\n", buf.String())
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).Write([]string{"id", "name"}, sampleRows()))

	want := "[{\n" +
		"  \"id\": 1,\n" +
		"  \"name\": \"Tom\"\n" +
		"}, {\n" +
		"  \"id\": 250,\n" +
		"  \"name\": \"Ann, \\\"the\\\" Great\"\n" +
		"}]\n"
	require.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, NewJSONWriter(&buf).Write([]string{"id"}, nil))
	require.Equal(t, "[]\n", buf.String())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	for _, f := range []string{"table", "csv", "json"} {
		w, err := New(f, &buf)
		require.NoError(t, err)
		require.NotNil(t, w)
	}
	_, err := New("xml", &buf)
	require.Error(t, err)
}
