package store

import (
	"os"
	"path/filepath"
	"strings"
)

const sqliteFileName = "promptboard.sqlite"

// Store is the local key/value persistence layer for one data directory.
//
// It plays the role browser local storage plays for a web app: slot layouts and the
// slot-name map are stored as JSON text under fixed keys.
type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errMissingDir
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), sqliteFileName)
}
