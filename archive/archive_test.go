package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	err := w.WriteFile(`C\Windows\System32\drivers\etc\hosts`, `C\Windows\System32\drivers\etc`, strings.NewReader("127.0.0.1 localhost"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	var fileContents string
	for _, f := range zr.File {
		names = append(names, f.Name)
		if f.Name == `C\Windows\System32\drivers\etc\hosts` {
			rc, err := f.Open()
			require.NoError(t, err)
			data, err := io.ReadAll(rc)
			assert.NoError(t, err)
			fileContents = string(data)
			rc.Close()
		}
	}
	assert.Contains(t, names, `C\Windows\System32\drivers\etc/`)
	assert.Contains(t, names, `C\Windows\System32\drivers\etc\hosts`)
	assert.Equal(t, "127.0.0.1 localhost", fileContents)
}

func TestSanitizeStripsDriveColon(t *testing.T) {
	assert.Equal(t, `C\Windows`, sanitize(`C:\Windows`))
}

func TestAddDirectoryIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	require.NoError(t, w.AddDirectory(`C:\Windows\Tasks`))
	require.NoError(t, w.AddDirectory(`C:\Windows\Tasks`))
	require.NoError(t, w.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Len(t, zr.File, 1)
}
