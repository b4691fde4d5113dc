package filex

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestLoad_ReadsFileAndType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portada.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "portada.png", f.Name)
	require.Equal(t, "image/png", f.ContentType)
	require.Equal(t, pngHeader, f.Data)
}

func TestLoad_SniffsWhenExtensionUnknown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portada")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	f, err := Load("  " + path + " ")
	require.NoError(t, err)
	require.Equal(t, "image/png", f.ContentType)
}

func TestLoad_TextIsNotAnImage(t *testing.T) {
	orig := readFile
	t.Cleanup(func() { readFile = orig })
	readFile = func(string) ([]byte, error) { return []byte("hola"), nil }

	f, err := Load("/virtual/nota.txt")
	require.NoError(t, err)
	require.Equal(t, "text/plain", f.ContentType)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))

	orig := readFile
	t.Cleanup(func() { readFile = orig })
	readFile = func(string) ([]byte, error) { return nil, nil }

	_, err = Load("/virtual/empty.jpg")
	require.ErrorIs(t, err, ErrEmptyFile)
}
