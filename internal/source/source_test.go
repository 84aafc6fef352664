package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/most-active-cookie/internal/cookie"
)

const sampleCSV = `cookie,timestamp
AtY0laUfhglK3lC7,2018-12-09T14:19:00+00:00
SAZuXPGUrfbcn5UA,2018-12-09T10:13:00+00:00
5UAVanZf6UtGyKVS,2018-12-09T07:25:00+00:00
AtY0laUfhglK3lC7,2018-12-09T06:19:00+00:00
SAZuXPGUrfbcn5UA,2018-12-08T22:03:00+00:00
4sMM2LxV07bPJzwf,2018-12-08T21:30:00+00:00
fbcn5UAVanZf6UtG,2018-12-08T09:30:00+00:00
4sMM2LxV07bPJzwf,2018-12-07T23:30:00+00:00
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDetect(t *testing.T) {
	cases := []struct {
		path string
		kind Kind
		comp Compression
	}{
		{"cookie_log.csv", KindCSV, CompressionNone},
		{"/var/log/COOKIES.CSV", KindCSV, CompressionNone},
		{"cookie_log.csv.gz", KindCSV, CompressionGzip},
		{"cookie_log.csv.zst", KindCSV, CompressionZstd},
		{"cookie_log.jsonl", KindJSONL, CompressionNone},
		{"cookie_log.jsonl.zst", KindJSONL, CompressionZstd},
	}
	for _, tc := range cases {
		kind, comp, err := Detect(tc.path)
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.kind, kind, tc.path)
		assert.Equal(t, tc.comp, comp, tc.path)
	}
}

func TestDetectRejectsOtherExtensions(t *testing.T) {
	for _, p := range []string{"cookie_log.cs", "most_active_cookie.py", "cookie_log", "cookie_log.gz"} {
		_, _, err := Detect(p)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, p)
	}
}

func TestLoadCSVSkipsHeader(t *testing.T) {
	path := writeFile(t, "cookie_log.csv", sampleCSV)

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 8)
	assert.Equal(t, "AtY0laUfhglK3lC7", records[0].Cookie)
	assert.Equal(t, "2018-12-09", records[0].Day)
	assert.Equal(t, "2018-12-07T23:30:00+00:00", records[7].Timestamp)
	assert.True(t, cookie.IsDescending(records))
}

func TestLoadCSVWithoutHeader(t *testing.T) {
	path := writeFile(t, "cookie_log.csv", "X,2018-12-09T14:19\nY,2018-12-08T10:00\n")

	records, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadCSVQuotedSingleColumnRows(t *testing.T) {
	content := "\"cookie,timestamp\"\n" +
		"\"AtY0laUfhglK3lC7,2018-12-09T14:19:00+00:00\"\n" +
		"\"SAZuXPGUrfbcn5UA,2018-12-09T10:13:00+00:00\"\n"
	path := writeFile(t, "cookie_log.csv", content)

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "SAZuXPGUrfbcn5UA", records[1].Cookie)
	assert.Equal(t, "2018-12-09", records[1].Day)
}

func TestLoadCSVRejectsExtraFields(t *testing.T) {
	path := writeFile(t, "cookie_log.csv", "cookie,timestamp\nX,2018-12-09T14:19,extra\n")

	_, err := Load(path)
	var le *LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 2, le.Line)
}

func TestLoadCSVRejectsLineWithoutDelimiter(t *testing.T) {
	path := writeFile(t, "cookie_log.csv", "X 2018-12-09T14:19\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, cookie.ErrMalformedLine)
}

func TestLoadDoesNotValidateDays(t *testing.T) {
	path := writeFile(t, "cookie_log.csv", "X,2018-1-09T14:19\n")

	records, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2018-1-09", records[0].Day)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no_file.csv"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "cookie_log.cs", sampleCSV)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadJSONL(t *testing.T) {
	content := `{"cookie":"AtY0laUfhglK3lC7","timestamp":"2018-12-09T14:19:00+00:00"}

{"cookie":"SAZuXPGUrfbcn5UA","timestamp":"2018-12-08T22:03:00+00:00","extra":1}
`
	path := writeFile(t, "cookie_log.jsonl", content)

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2018-12-08", records[1].Day)
}

func TestLoadJSONLMissingField(t *testing.T) {
	path := writeFile(t, "cookie_log.jsonl", `{"cookie":"X"}`+"\n")

	_, err := Load(path)
	var le *LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 1, le.Line)
}

func TestLoadJSONLInvalidJSON(t *testing.T) {
	path := writeFile(t, "cookie_log.jsonl", "{\"cookie\":\n")

	_, err := Load(path)
	var le *LineError
	assert.True(t, errors.As(err, &le))
}

func TestWriteThenLoadCompressed(t *testing.T) {
	records, err := Read(strings.NewReader(sampleCSV), KindCSV)
	require.NoError(t, err)

	for _, name := range []string{"log.csv", "log.csv.gz", "log.csv.zst"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, Write(path, records), name)

		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, records, got, name)
	}
}

func TestWriteRejectsJSONL(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "log.jsonl"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
