package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nueva_carpeta", "sub", "mensaje.txt")

	receipt, err := Write(path, "01100110")
	require.NoError(t, err)
	assert.Equal(t, path, receipt.Path)
	assert.Equal(t, 8, receipt.Bytes)
	assert.Len(t, receipt.Digest, 16)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "01100110", string(data))
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mensaje.txt")

	_, err := Write(path, "111111111111")
	require.NoError(t, err)
	second, err := Write(path, "0")
	require.NoError(t, err)

	got, err := Read(path, second.Digest)
	require.NoError(t, err)
	assert.Equal(t, "0", got)
}

func TestRead_DigestMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mensaje.txt")
	receipt, err := Write(path, "1010")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("1011"), 0o644))
	_, err = Read(path, receipt.Digest)
	assert.Error(t, err)

	_, err = Read(filepath.Join(t.TempDir(), "missing.txt"), "")
	assert.Error(t, err)
}

func TestDigest_Stable(t *testing.T) {
	assert.Equal(t, Digest("0101"), Digest("0101"))
	assert.NotEqual(t, Digest("0101"), Digest("0100"))
	// xxhash64 de la cadena vacía
	assert.Equal(t, "ef46db3751d8e999", Digest(""))
}
