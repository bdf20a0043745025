// Package gencache skips regeneration for packages whose sources have not
// changed. Each package directory maps to a hash of its non-generated Go
// files; when the stored hash matches, the previous run's output is still
// current and the package can be skipped wholesale.
package gencache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// schemaVersion bumps whenever the stored data changes meaning. A version
// mismatch drops the table rather than migrating it; the cache is only an
// optimization.
const schemaVersion = 1

// Cache is a sqlite-backed map from package directory to source hash.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at path, creating parent
// directories as needed.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) migrate() error {
	if _, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create meta table: %w", err)
	}

	var stored string
	err := c.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&stored)
	switch {
	case err == sql.ErrNoRows:
		// fresh database
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case stored != fmt.Sprint(schemaVersion):
		if _, err := c.db.Exec(`DROP TABLE IF EXISTS packages`); err != nil {
			return fmt.Errorf("failed to reset stale cache: %w", err)
		}
	}

	if _, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS packages (
		dir TEXT PRIMARY KEY,
		hash TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create packages table: %w", err)
	}

	if _, err := c.db.Exec(
		`INSERT INTO meta (key, value) VALUES ('schema_version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		fmt.Sprint(schemaVersion),
	); err != nil {
		return fmt.Errorf("failed to store schema version: %w", err)
	}
	return nil
}

// Lookup reports whether dir's stored hash matches hash.
func (c *Cache) Lookup(dir, hash string) (bool, error) {
	var stored string
	err := c.db.QueryRow(`SELECT hash FROM packages WHERE dir = ?`, dir).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return stored == hash, nil
}

// Store records dir's current hash, replacing any previous entry.
func (c *Cache) Store(dir, hash string) error {
	_, err := c.db.Exec(
		`INSERT INTO packages (dir, hash) VALUES (?, ?)
		 ON CONFLICT(dir) DO UPDATE SET hash = excluded.hash`,
		dir, hash,
	)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Forget drops the entry for dir, forcing regeneration on the next run.
func (c *Cache) Forget(dir string) error {
	if _, err := c.db.Exec(`DELETE FROM packages WHERE dir = ?`, dir); err != nil {
		return fmt.Errorf("failed to drop cache entry: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// HashPackage hashes the non-generated, non-test Go files of one package
// directory: file names and contents, in sorted name order. Generated files
// are excluded so writing output does not invalidate the entry it just
// recorded.
func HashPackage(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read package directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasPrefix(name, "zz_generated") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", name, err)
		}
		fmt.Fprintf(h, "%s\x00", name)
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("failed to hash %s: %w", name, err)
		}
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
