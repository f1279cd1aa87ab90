package renameat_test

import (
	"github.com/cirruslabs/rawmv/internal/renameat"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

func TestRenameat(t *testing.T) {
	dir := t.TempDir()

	oldpath := filepath.Join(dir, "old")
	newpath := filepath.Join(dir, "new")
	require.NoError(t, os.WriteFile(oldpath, []byte("contents"), 0600))

	require.NoError(t, renameat.Renameat(oldpath, newpath, 0))

	contents, err := os.ReadFile(newpath)
	require.NoError(t, err)
	require.Equal(t, []byte("contents"), contents)

	_, err = os.Stat(oldpath)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenameatNoReplace(t *testing.T) {
	dir := t.TempDir()

	oldpath := filepath.Join(dir, "old")
	newpath := filepath.Join(dir, "new")
	require.NoError(t, os.WriteFile(oldpath, []byte("from"), 0600))
	require.NoError(t, os.WriteFile(newpath, []byte("to"), 0600))

	err := renameat.Renameat(oldpath, newpath, renameat.NoReplace)
	require.ErrorIs(t, err, syscall.EEXIST)

	// The failed rename leaves both entries untouched
	contents, err := os.ReadFile(newpath)
	require.NoError(t, err)
	require.Equal(t, []byte("to"), contents)
}

func TestRenameatExchange(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "first")
	second := filepath.Join(dir, "second")
	require.NoError(t, os.WriteFile(first, []byte("1"), 0600))
	require.NoError(t, os.WriteFile(second, []byte("2"), 0600))

	require.NoError(t, renameat.Renameat(first, second, renameat.Exchange))

	contents, err := os.ReadFile(first)
	require.NoError(t, err)
	require.Equal(t, []byte("2"), contents)

	// Exchanging the same pair again restores the original contents
	require.NoError(t, renameat.Renameat(first, second, renameat.Exchange))

	contents, err = os.ReadFile(first)
	require.NoError(t, err)
	require.Equal(t, []byte("1"), contents)
}

func TestRenameatExchangeRequiresBothEntries(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "first")
	require.NoError(t, os.WriteFile(first, []byte("1"), 0600))

	err := renameat.Renameat(first, filepath.Join(dir, "missing"), renameat.Exchange)
	require.ErrorIs(t, err, syscall.ENOENT)
}
