// Package racetable loads the race name lookup used to turn exported race
// names into display names.
package racetable

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	dnderr "github.com/KirkDiggler/dicecloud-sheet/internal/errors"
)

// Table maps exported race names to display names
type Table map[string]string

// Parse decodes a flat string mapping. YAML is a superset of JSON so one
// decoder covers both file formats.
func Parse(data []byte) (Table, error) {
	t := Table{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return t, nil
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "race table is not a flat string mapping")
	}
	return t, nil
}

// LoadFile reads a .json, .yaml or .yml race table. An empty path or a file
// that does not exist yields an empty table.
func LoadFile(path string) (Table, error) {
	if path == "" {
		return Table{}, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
	default:
		return nil, dnderr.InvalidArgumentf("unsupported race table format %q", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, nil
	}
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to read race table %s", path)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to parse race table %s", path)
	}
	return t, nil
}

// FileSource serves a race table that was read once at startup
type FileSource struct {
	path  string
	table Table
}

// NewFileSource loads the table at path
func NewFileSource(path string) (*FileSource, error) {
	t, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: path, table: t}, nil
}

// Races returns the loaded table
func (s *FileSource) Races(_ context.Context) (map[string]string, error) {
	return s.table, nil
}

// Path is the file the table was read from
func (s *FileSource) Path() string {
	return s.path
}
