// Package project locates the project root that generator commands operate
// on: the nearest enclosing directory holding a randgen.ini.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	GoModFile      = "go.mod"
	RandgenIniFile = "randgen.ini"
)

var (
	ErrNotInProject = errors.New("not in a randgen project (no randgen.ini found in this or any parent directory)")
	ErrNoGoMod      = errors.New("go.mod not found in project root")
)

// FindRoot walks up from the current working directory looking for
// randgen.ini. Returns the directory containing it.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from startDir looking for randgen.ini.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, RandgenIniFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInProject
		}
		dir = parent
	}
}

// HasGoMod reports whether dir contains a go.mod file. Generation works
// without one, but emitted import paths come from it when present.
func HasGoMod(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, GoModFile))
	return err == nil
}

// Name returns the folder name of the project root, used as a default
// identifier in messages.
func Name(root string) string {
	return filepath.Base(root)
}
