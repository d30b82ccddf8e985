package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDatabase_NewAndClose(t *testing.T) {
	db, err := New(WithPath(filepath.Join(t.TempDir(), "tallybook.db")))
	require.NoError(t, err)
	require.NotNil(t, db.Get())
	require.NoError(t, db.Close())
}

func TestDatabase_WithMemory(t *testing.T) {
	db, err := New(WithMemory())
	require.NoError(t, err)
	require.NotNil(t, db.Get())
	require.NoError(t, db.Close())
}

func TestDatabase_CloseWithoutOpen(t *testing.T) {
	db, err := New()
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
