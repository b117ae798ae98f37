package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taoziyu97/sra-tools/pkg/types"
)

func exerciseFS(t *testing.T, fs types.FS, root string) {
	t.Helper()

	testFile := filepath.Join(root, "sub", "reads.fastq")
	testContent := []byte("@r1\nACGT\n+\nIIII\n")

	require.NoError(t, fs.MkdirAll(filepath.Dir(testFile), 0755))
	require.NoError(t, fs.WriteFile(testFile, testContent, 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "reads.fastq", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	f, err := fs.OpenFile(testFile, os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.Seek(info.Size(), io.SeekStart)
	require.NoError(t, err)
	_, err = f.Write([]byte("tail"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	r, err := fs.Open(testFile)
	require.NoError(t, err)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, append(append([]byte{}, testContent...), "tail"...), content)

	moved := filepath.Join(root, "moved.fastq")
	require.NoError(t, fs.Rename(testFile, moved))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))

	data, err := fs.ReadFile(moved)
	require.NoError(t, err)
	assert.Len(t, data, len(testContent)+4)

	_, err = fs.ReadFile(filepath.Join(root, "sub"))
	assert.Error(t, err, "reading a directory must fail")

	require.NoError(t, fs.Remove(moved))
	_, err = fs.Stat(moved)
	assert.True(t, os.IsNotExist(err))
}

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)
	exerciseFS(t, fs, t.TempDir())
}

func TestNewMemory(t *testing.T) {
	fs := NewMemory()
	assert.NotNil(t, fs)
	exerciseFS(t, fs, "/data")
}

func TestOpenFileExclusive(t *testing.T) {
	for name, fs := range map[string]types.FS{"os": NewOS(), "memory": NewMemory()} {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			if name == "memory" {
				root = "/excl"
				require.NoError(t, fs.MkdirAll(root, 0755))
			}
			path := filepath.Join(root, "out")

			f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0664)
			require.NoError(t, err)
			require.NoError(t, f.Close())

			_, err = fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0664)
			assert.True(t, os.IsExist(err), "second exclusive create must report existence, got %v", err)
		})
	}
}
