package fileops

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/chinmaymudholkar/automation-snippets/internal/cleanup"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTextAndLines(t *testing.T) {
	path := writeFile(t, "notes.txt", "first\nsecond\nthird")

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\nthird", text)

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first\n", "second\n", "third"}, lines)

	empty := writeFile(t, "empty.txt", "")
	lines, err = ReadLines(empty)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = ReadText(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadTextLimit(t *testing.T) {
	path := writeFile(t, "big.txt", "0123456789")

	_, err := ReadTextLimit(path, 5)
	assert.ErrorIs(t, err, ErrTooLarge)

	text, err := ReadTextLimit(path, 10)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", text)
}

func TestWriteAndAppend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	tracker := cleanup.NewTracker()

	require.NoError(t, WriteTextTracked(tracker, path, "hello"))
	require.NoError(t, AppendText(path, ", world"))
	assert.Empty(t, tracker.Paths())

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "hello, world", text)

	require.NoError(t, WriteText(path, "replaced"))
	text, err = ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "replaced", text)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	require.NoError(t, AppendText(filepath.Join(dir, "new.txt"), "x"))
	assert.True(t, Exists(filepath.Join(dir, "new.txt")))
}

func TestExistsDeleteSize(t *testing.T) {
	path := writeFile(t, "data.bin", "12345")
	dir := filepath.Dir(path)

	assert.True(t, Exists(path))
	assert.False(t, Exists(dir), "directories are not files")

	n, err := Size(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	human, err := HumanSize(path)
	require.NoError(t, err)
	assert.Equal(t, "5 B", human)

	deleted, err := Delete(path)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = Delete(path)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.False(t, Exists(path))
}

func TestExtensionAndName(t *testing.T) {
	tests := []struct {
		path, ext, name string
	}{
		{"/tmp/report.csv", "csv", "report"},
		{"archive.tar.gz", "gz", "archive.tar"},
		{"dir/.bashrc", "", ".bashrc"},
		{"Makefile", "", "Makefile"},
		{"", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ext, Extension(tt.path), tt.path)
		assert.Equal(t, tt.name, NameWithoutExtension(tt.path), tt.path)
	}
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "users.csv", "id,name\n1,alice\n2,\"smith, bob\"\n")

	tb, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, tb.Columns)
	assert.Equal(t, [][]any{{"1", "alice"}, {"2", "smith, bob"}}, tb.Rows)

	_, err = LoadCSV(writeFile(t, "empty.csv", ""))
	assert.ErrorIs(t, err, ErrEmptyCSV)

	_, err = LoadCSV(writeFile(t, "ragged.csv", "a,b\n1\n"))
	assert.Error(t, err)
}

func TestDetectCompression(t *testing.T) {
	assert.Equal(t, Gzip, DetectCompression([]byte{0x1f, 0x8b, 0x08}))
	assert.Equal(t, Zstd, DetectCompression([]byte{0x28, 0xb5, 0x2f, 0xfd}))
	assert.Equal(t, Xz, DetectCompression([]byte{0xfd, '7', 'z', 'X', 'Z', 0x00}))
	assert.Equal(t, Bzip2, DetectCompression([]byte("BZh91AY")))
	assert.Equal(t, None, DetectCompression([]byte("id,name")))
	assert.Equal(t, None, DetectCompression(nil))
	assert.Equal(t, "zstd", Zstd.String())
}

func TestCompressedInputs(t *testing.T) {
	const content = "id,name\n1,alice\n"

	encoders := map[string]func(w io.Writer) (io.WriteCloser, error){
		"gz": func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil },
		"zst": func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		},
		"xz": func(w io.Writer) (io.WriteCloser, error) { return xz.NewWriter(w) },
	}

	for ext, newWriter := range encoders {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			w, err := newWriter(&buf)
			require.NoError(t, err)
			_, err = io.WriteString(w, content)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			path := writeFile(t, "users.csv."+ext, buf.String())

			text, err := ReadText(path)
			require.NoError(t, err)
			assert.Equal(t, content, text)

			tb, err := LoadCSV(path)
			require.NoError(t, err)
			assert.Equal(t, 1, tb.Len())
		})
	}
}
