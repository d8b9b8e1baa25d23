package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chinmaymudholkar/automation-snippets/internal/cleanup"
	"github.com/chinmaymudholkar/automation-snippets/internal/datetime"
	"github.com/chinmaymudholkar/automation-snippets/internal/duration"
)

type recordingSleeper struct {
	slept []time.Duration
}

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.slept = append(r.slept, d)
	return ctx.Err()
}

func run(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	if a.tracker == nil {
		a.tracker = cleanup.NewTracker()
	}

	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--quiet", "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDurationParse(t *testing.T) {
	out, err := run(t, &app{}, "", "duration", "parse", "2d5h10m")
	require.NoError(t, err)
	assert.Equal(t, "191400\n", out)

	out, err = run(t, &app{}, "", "duration", "parse", "10m5")
	require.NoError(t, err)
	assert.Equal(t, "600\n", out)

	_, err = run(t, &app{}, "", "duration", "parse", "--strict", "10m5")
	assert.ErrorIs(t, err, duration.ErrDanglingDigits)

	_, err = run(t, &app{}, "", "duration", "parse", "10x")
	assert.EqualError(t, err, "invalid duration unit: x")
}

func TestWait(t *testing.T) {
	rec := &recordingSleeper{}

	_, err := run(t, &app{sleep: rec}, "", "wait", "1h30m")
	require.NoError(t, err)
	_, err = run(t, &app{sleep: rec}, "", "wait", "--extended", "1w300ms")
	require.NoError(t, err)
	_, err = run(t, &app{sleep: rec}, "", "sleep", "2.5")
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{
		90 * time.Minute,
		7*24*time.Hour + 300*time.Millisecond,
		2500 * time.Millisecond,
	}, rec.slept)

	_, err = run(t, &app{sleep: rec}, "", "wait", "5 minutes")
	assert.Error(t, err)
	_, err = run(t, &app{sleep: rec}, "", "sleep", "soon")
	assert.Error(t, err)
	assert.Len(t, rec.slept, 3)
}

func TestDate(t *testing.T) {
	clock := datetime.FixedClock(time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC))

	out, err := run(t, &app{now: clock}, "", "date", "today")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05\n", out)

	out, err = run(t, &app{now: clock}, "", "date", "now", "--format", "%Y%m%d_%H%M%S")
	require.NoError(t, err)
	assert.Equal(t, "20240305_140709\n", out)

	out, err = run(t, &app{now: clock}, "", "date", "since", "2024-03-05 14:04:09")
	require.NoError(t, err)
	assert.Equal(t, "3 minutes ago\n", out)

	out, err = run(t, &app{now: clock}, "", "date", "since", "2024-03-05T14:10:09Z")
	require.NoError(t, err)
	assert.Equal(t, "3 minutes from now\n", out)

	_, err = run(t, &app{now: clock}, "", "date", "since", "yesterday")
	assert.Error(t, err)
}

func TestDB(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, &app{}, "", "db", "exec", "--dsn", dsn, "CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	out, err = run(t, &app{}, "", "db", "exec", "--dsn", dsn, "--arg", "apple", "--arg", "pear",
		"INSERT INTO items (name) VALUES (?), (?)")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	out, err = run(t, &app{}, "", "-o", "csv", "db", "query", "--dsn", dsn, "SELECT id, name FROM items ORDER BY id")
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,apple\n2,pear\n", out)

	out, err = run(t, &app{}, "", "-o", "json", "db", "query", "--dsn", dsn, "SELECT name, id FROM items ORDER BY id")
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"name\": \"apple\",\n    \"id\": 1\n  },\n  {\n    \"name\": \"pear\",\n    \"id\": 2\n  }\n]\n", out)

	out, err = run(t, &app{}, "", "db", "query", "--dsn", dsn, "--column", "name", "SELECT * FROM items ORDER BY id")
	require.NoError(t, err)
	assert.Equal(t, "apple\npear\n", out)

	_, err = run(t, &app{}, "", "db", "query", "--dsn", dsn, "--column", "price", "SELECT * FROM items")
	assert.ErrorContains(t, err, `no column named "price"`)

	out, err = run(t, &app{}, "", "db", "scalar", "--dsn", dsn, "--arg", "2", "SELECT name FROM items WHERE id = ?")
	require.NoError(t, err)
	assert.Equal(t, "pear\n", out)

	out, err = run(t, &app{}, "", "db", "tables", "--dsn", dsn)
	require.NoError(t, err)
	assert.Equal(t, "items\n", out)

	out, err = run(t, &app{}, "", "db", "exists", "--dsn", dsn, "orders")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = run(t, &app{}, "", "db", "count", "--dsn", dsn, "SELECT * FROM items WHERE name LIKE 'a%'")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	_, err = run(t, &app{}, "", "db", "tables")
	assert.ErrorContains(t, err, "no database given")
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")

	_, err := run(t, &app{}, "id,name\n1,alice\n", "file", "write", path)
	require.NoError(t, err)
	_, err = run(t, &app{}, "", "file", "append", path, "2,bob\n")
	require.NoError(t, err)

	out, err := run(t, &app{}, "", "file", "read", path)
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,alice\n2,bob\n", out)

	_, err = run(t, &app{}, "", "file", "read", "--max-bytes", "4B", path)
	assert.Error(t, err)

	out, err = run(t, &app{}, "", "-o", "json", "file", "csv", path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","name":"alice"},{"id":"2","name":"bob"}]`, out)

	out, err = run(t, &app{}, "", "-o", "csv", "file", "lines", path)
	require.NoError(t, err)
	assert.Equal(t, "line,text\n1,\"id,name\"\n2,\"1,alice\"\n3,\"2,bob\"\n", out)

	out, err = run(t, &app{}, "", "file", "size", path)
	require.NoError(t, err)
	assert.Equal(t, "22\n", out)

	out, err = run(t, &app{}, "", "file", "ext", path)
	require.NoError(t, err)
	assert.Equal(t, "csv\n", out)

	out, err = run(t, &app{}, "", "file", "stem", path)
	require.NoError(t, err)
	assert.Equal(t, "report\n", out)

	out, err = run(t, &app{}, "", "file", "delete", path)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, &app{}, "", "file", "exists", path)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestDir(t *testing.T) {
	base := t.TempDir()
	nested := filepath.Join(base, "a", "b")

	_, err := run(t, &app{}, "", "dir", "create", nested)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(nested, "x.txt"), []byte("x"), 0o644))

	out, err := run(t, &app{}, "", "dir", "exists", nested)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, &app{}, "", "dir", "list", base, "--pattern", "**/*.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nested, "x.txt")+"\n", out)

	out, err = run(t, &app{}, "", "dir", "join", "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("a", "b", "c")+"\n", out)

	out, err = run(t, &app{}, "", "dir", "parent", filepath.Join(nested, "x.txt"))
	require.NoError(t, err)
	assert.Equal(t, nested+"\n", out)

	out, err = run(t, &app{}, "", "dir", "root-name")
	require.NoError(t, err)
	assert.Equal(t, "cli\n", out)
}

func TestRand(t *testing.T) {
	out, err := run(t, &app{}, "", "rand", "string")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 10)

	out, err = run(t, &app{}, "", "rand", "digits", "-n", "4")
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9]{4}\n$`, out)

	out, err = run(t, &app{}, "", "rand", "uuid")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 36)
}

func TestConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "snippets.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("random:\n  length: 6\ndatetime:\n  date_format: \"%d/%m/%Y\"\n"), 0o644))

	out, err := run(t, &app{}, "", "--config", cfgPath, "rand", "string")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 6)

	clock := datetime.FixedClock(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))
	out, err = run(t, &app{now: clock}, "", "--config", cfgPath, "date", "today")
	require.NoError(t, err)
	assert.Equal(t, "05/03/2024\n", out)

	_, err = run(t, &app{}, "", "--log-format", "xml", "rand", "uuid")
	assert.Error(t, err)
}

func TestChdirCreateRequiresChdir(t *testing.T) {
	_, err := run(t, &app{}, "", "--chdir-create", "rand", "uuid")
	assert.ErrorContains(t, err, "--chdir-create requires --chdir")
}
