package codegen

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoverPackages finds all package directories under root that contain
// Go files, relative to root. Hidden, vendor and testdata directories are
// skipped, as is anything under them.
//
// For example, with roots = ["."] in a project laid out as
//
//	models/
//	api/types/
//	api/types/testdata/
//
// it returns ".", "api/types" and "models" (when each holds Go files).
func DiscoverPackages(root string, dirs []string) ([]string, error) {
	seen := make(map[string]bool)
	var packages []string

	for _, dir := range dirs {
		base := filepath.Join(root, dir)
		if _, err := os.Stat(base); os.IsNotExist(err) {
			// Missing configured directory: nothing to generate there.
			continue
		}

		err := filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}

			name := d.Name()
			if name != "." && strings.HasPrefix(name, ".") && path != base {
				return filepath.SkipDir
			}
			if name == "vendor" || name == "testdata" {
				return filepath.SkipDir
			}

			hasGo, err := containsGoFiles(path)
			if err != nil {
				return err
			}
			if !hasGo {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if !seen[rel] {
				seen[rel] = true
				packages = append(packages, rel)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return packages, nil
}

// containsGoFiles reports whether dir directly holds at least one
// non-generated, non-test Go file.
func containsGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") || strings.HasPrefix(name, "zz_generated") {
			continue
		}
		return true, nil
	}
	return false, nil
}
