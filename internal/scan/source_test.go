package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupported(t *testing.T) {
	exts := []string{".py", ".js", ".go"}

	assert.True(t, IsSupported("app.py", exts))
	assert.True(t, IsSupported("APP.PY", exts))
	assert.True(t, IsSupported("server.go", exts))
	assert.False(t, IsSupported("readme.txt", exts))
	assert.False(t, IsSupported("Makefile", exts))
	assert.False(t, IsSupported("archive.py.bak", exts))
}

func TestReadSourceUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.py")
	require.NoError(t, os.WriteFile(path, []byte("print('héllo')\n"), 0o644))

	content, err := ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "print('héllo')\n", content)
}

func TestReadSourceLatin1Fallback(t *testing.T) {
	// 0xE9 is é in ISO-8859-1 but invalid as a standalone UTF-8 byte.
	path := filepath.Join(t.TempDir(), "legacy.php")
	require.NoError(t, os.WriteFile(path, []byte{'c', 'a', 'f', 0xE9}, 0o644))

	content, err := ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "café", content)
}

func TestReadSourceMissingFile(t *testing.T) {
	_, err := ReadSource(filepath.Join(t.TempDir(), "nope.py"))
	assert.Error(t, err)
}
