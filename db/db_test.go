package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/decoutkhanqindev/motelctl/db"
	"github.com/stretchr/testify/assert"
)

// TestInitDB initializes the database under a temporary directory and checks
// that the database file is created.
func TestInitDB(t *testing.T) {
	tempDir := t.TempDir()
	os.Setenv("HOME", tempDir)
	db.Path = filepath.Join(tempDir, ".motelctl/motel.db")
	err := db.InitDB()
	assert.NoError(t, err, "InitDB should not return an error")

	_, statErr := os.Stat(db.Path)
	assert.NoError(t, statErr, "Database file should exist")

	closeErr := db.CloseDB()
	assert.NoError(t, closeErr, "CloseDB should not return an error")
}
