package codegen_test

import (
	"slices"
	"testing"

	"github.com/shipq/randgen/codegen"
)

func TestDiscoverPackages(t *testing.T) {
	root := t.TempDir()
	write(t, root, "models/user.go", "package models\n")
	write(t, root, "api/types/point.go", "package types\n")
	write(t, root, "api/empty/README.md", "no go files\n")
	write(t, root, "vendor/dep/dep.go", "package dep\n")
	write(t, root, "models/testdata/fixture.go", "package fixture\n")
	write(t, root, ".hidden/h.go", "package h\n")

	dirs, err := codegen.DiscoverPackages(root, []string{"."})
	if err != nil {
		t.Fatalf("DiscoverPackages failed: %v", err)
	}
	slices.Sort(dirs)

	want := []string{"api/types", "models"}
	if !slices.Equal(dirs, want) {
		t.Errorf("DiscoverPackages = %v, want %v", dirs, want)
	}
}

func TestDiscoverPackages_ScopedDirs(t *testing.T) {
	root := t.TempDir()
	write(t, root, "models/user.go", "package models\n")
	write(t, root, "api/types/point.go", "package types\n")
	write(t, root, "other/other.go", "package other\n")

	dirs, err := codegen.DiscoverPackages(root, []string{"models", "api"})
	if err != nil {
		t.Fatalf("DiscoverPackages failed: %v", err)
	}
	slices.Sort(dirs)

	want := []string{"api/types", "models"}
	if !slices.Equal(dirs, want) {
		t.Errorf("DiscoverPackages = %v, want %v", dirs, want)
	}
}

func TestDiscoverPackages_MissingDir(t *testing.T) {
	dirs, err := codegen.DiscoverPackages(t.TempDir(), []string{"absent"})
	if err != nil {
		t.Fatalf("DiscoverPackages failed: %v", err)
	}
	if len(dirs) != 0 {
		t.Errorf("DiscoverPackages = %v, want empty", dirs)
	}
}

func TestDiscoverPackages_GeneratedOnlyDirSkipped(t *testing.T) {
	root := t.TempDir()
	write(t, root, "gen/zz_generated_random.go", "package gen\n")

	dirs, err := codegen.DiscoverPackages(root, []string{"."})
	if err != nil {
		t.Fatalf("DiscoverPackages failed: %v", err)
	}
	if len(dirs) != 0 {
		t.Errorf("DiscoverPackages = %v, want empty", dirs)
	}
}
