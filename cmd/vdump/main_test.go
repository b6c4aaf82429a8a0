package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-vista/vista"
)

// writeTestFile writes a file holding a 2x3x4 ubyte image named "scan"
// whose pixel values are their own indices.
func writeTestFile(t *testing.T) string {
	t.Helper()
	img, err := vista.NewImage(2, 3, 4, vista.UByteRepn)
	require.NoError(t, err)
	for i := range img.Data() {
		img.Data()[i] = byte(i)
	}
	img.Attrs().Append("patient", vista.StringRepn, "anon")

	list := vista.NewList()
	list.Append("history", vista.StringRepn, "test file")
	list.Append("scan", vista.ImageRepn, img)

	path := filepath.Join(t.TempDir(), "test.v")
	require.NoError(t, vista.WriteFileNamed(path, vista.NewStandardRegistry(), list))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestDump(t *testing.T) {
	path := writeTestFile(t)

	out, err := run(t, "dump", path)
	require.NoError(t, err)
	require.Equal(t, `/@history: "test file"
/@scan: image 2x3x4 ubyte
  /scan@patient: "anon"
`, out)

	out, err = run(t, "dump", "--header", path, "/scan")
	require.NoError(t, err)
	require.Equal(t, `/@nbands: "2"
/@nrows: "3"
/@ncolumns: "4"
/@repn: "ubyte"
/@patient: "anon"
`, out)
}

func TestGet(t *testing.T) {
	path := writeTestFile(t)

	out, err := run(t, "get", path, "/scan@repn", "/@history")
	require.NoError(t, err)
	require.Equal(t, "ubyte\ntest file\n", out)

	_, err = run(t, "get", path, "/scan@missing")
	require.True(t, errors.Is(err, vista.ErrNotFound), "%v", err)
}

func TestInfo(t *testing.T) {
	path := writeTestFile(t)
	st, err := os.Stat(path)
	require.NoError(t, err)

	out, err := run(t, "info", path)
	require.NoError(t, err)
	require.Equal(t, "scan: 2x3x4 ubyte at "+strconv.FormatInt(st.Size()-24, 10)+", 24 bytes\n", out)
}

func TestBlock(t *testing.T) {
	path := writeTestFile(t)
	reg := vista.NewStandardRegistry()

	tests := []struct {
		args  []string
		bands int
		rows  int
		first byte
	}{
		{[]string{"rows", "--start", "1", "--count", "2"}, 2, 2, 4},
		{[]string{"bands", "--start", "1"}, 1, 3, 12},
		{[]string{"rows", "--image", "scan"}, 2, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			out, err := run(t, append(tt.args, path)...)
			require.NoError(t, err)

			list, err := vista.ReadFile(bytes.NewReader([]byte(out)), reg)
			require.NoError(t, err)
			a, err := vista.LookupPath(list, "/@scan")
			require.NoError(t, err)
			img := a.Value.(*vista.Image)
			require.Equal(t, tt.bands, img.NBands())
			require.Equal(t, tt.rows, img.NRows())
			require.Equal(t, 4, img.NColumns())
			require.Equal(t, tt.first, img.Data()[0])
		})
	}

	_, err := run(t, "rows", "--start", "3", path)
	require.True(t, errors.Is(err, vista.ErrOutOfRange), "%v", err)
	_, err = run(t, "rows", "--image", "other", path)
	require.True(t, errors.Is(err, vista.ErrNotFound), "%v", err)
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(body string) string {
		p := filepath.Join(dir, "vdump.toml")
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	cfg, err := loadConfig(write("log_level = \"debug\"\nhost_order = \"big\"\n"))
	require.NoError(t, err)
	level, err := cfg.level()
	require.NoError(t, err)
	require.Equal(t, log.DebugLevel, level)
	order, err := cfg.hostOrder()
	require.NoError(t, err)
	require.Equal(t, binary.BigEndian, order)

	cfg, err = loadConfig("")
	require.NoError(t, err)
	level, err = cfg.level()
	require.NoError(t, err)
	require.Equal(t, log.WarnLevel, level)

	_, err = loadConfig(write("colour = \"red\"\n"))
	require.Error(t, err)
	_, err = config{HostOrder: "middle"}.hostOrder()
	require.Error(t, err)
	_, err = config{LogLevel: "loud"}.level()
	require.Error(t, err)

	path := writeTestFile(t)
	out, err := run(t, "--config", write("host_order = \"little\"\n"), "get", path, "/scan@ncolumns")
	require.NoError(t, err)
	require.Equal(t, "4\n", out)
}
