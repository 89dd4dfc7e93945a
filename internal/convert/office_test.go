package convert

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubConverter writes a shell script that mimics soffice's CLI contract:
// args are --headless --convert-to pdf <input> --outdir <dir>.
func stubConverter(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub converter scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "soffice-stub.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

const successScript = `#!/bin/sh
in="$4"
dir="$6"
base=$(basename "$in")
base="${base%.*}"
printf '%%PDF-1.4 stub output' > "$dir/$base.pdf"
`

const failScript = `#!/bin/sh
exit 1
`

func newTestConverter(t *testing.T, script string) (*OfficeConverter, string) {
	scratchDir := t.TempDir()
	return &OfficeConverter{
		Binary:     stubConverter(t, script),
		ScratchDir: scratchDir,
		Timeout:    10 * time.Second,
		Logf:       t.Logf,
	}, scratchDir
}

func TestOfficeConvert_Success(t *testing.T) {
	oc, scratchDir := newTestConverter(t, successScript)

	out, err := oc.Convert(context.Background(), []byte("PK\x03\x04 fake docx"), "docx")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(out[:5]))

	entries, err := os.ReadDir(scratchDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch paths must be removed after success")
}

func TestOfficeConvert_ProcessFailure(t *testing.T) {
	oc, scratchDir := newTestConverter(t, failScript)

	_, err := oc.Convert(context.Background(), []byte("PK\x03\x04 fake docx"), "docx")
	assert.Error(t, err)

	entries, readErr := os.ReadDir(scratchDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "scratch paths must be removed after failure")
}

func TestOfficeConvert_MissingBinary(t *testing.T) {
	scratchDir := t.TempDir()
	oc := &OfficeConverter{
		Binary:     filepath.Join(scratchDir, "no-such-binary"),
		ScratchDir: scratchDir,
		Timeout:    time.Second,
	}

	_, err := oc.Convert(context.Background(), []byte("data"), "odt")
	assert.Error(t, err)

	entries, readErr := os.ReadDir(scratchDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "scratch input is removed even when the process never spawns")
}

func TestOfficeConvert_NoOutputProduced(t *testing.T) {
	// Script exits 0 but writes nothing.
	oc, scratchDir := newTestConverter(t, "#!/bin/sh\nexit 0\n")

	_, err := oc.Convert(context.Background(), []byte("data"), "odt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no output")

	entries, readErr := os.ReadDir(scratchDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}
