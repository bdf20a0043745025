// Package config loads generator settings from randgen.ini.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shipq/randgen/inifile"
)

// ConfigFilename is the name of the config file at the project root.
const ConfigFilename = "randgen.ini"

// Config holds the complete configuration from randgen.ini.
type Config struct {
	// ConfigDir is the directory containing randgen.ini (the project root).
	ConfigDir string

	Gen   GenConfig
	Cache CacheConfig
}

// GenConfig holds generator settings from the [gen] section.
type GenConfig struct {
	// Packages lists directories to scan for marked types, relative to
	// the config dir. Subdirectories are included.
	Packages []string

	// Filename is the name of the generated file written into each
	// package. It must keep the zz_generated prefix so later runs skip it.
	Filename string

	// RNGImport is the import path of the draw helpers the generated
	// code calls. Forks that vendor the helpers can point it elsewhere.
	RNGImport string
}

// CacheConfig holds generation cache settings from the [cache] section.
type CacheConfig struct {
	Enabled bool
	Path    string // sqlite file, relative to the config dir
}

func defaultGenConfig() GenConfig {
	return GenConfig{
		Packages:  []string{"."},
		Filename:  "zz_generated_random.go",
		RNGImport: "github.com/shipq/randgen/rng",
	}
}

func defaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: true,
		Path:    filepath.Join(".randgen", "cache.db"),
	}
}

// Exists reports whether randgen.ini is present in dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFilename))
	return err == nil
}

// Load reads randgen.ini from the given directory (or CWD if empty).
// Returns an error if randgen.ini is not found.
func Load(dir string) (*Config, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	iniPath := filepath.Join(dir, ConfigFilename)
	if _, err := os.Stat(iniPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s not found in %s\n"+
			"  Hint: Run 'randgen init' to create one, or ensure you're in the project root directory",
			ConfigFilename, dir)
	}

	f, err := inifile.ParseFile(iniPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFilename, err)
	}

	cfg := &Config{
		ConfigDir: dir,
		Gen:       defaultGenConfig(),
		Cache:     defaultCacheConfig(),
	}

	if err := parseGenSection(f, &cfg.Gen); err != nil {
		return nil, err
	}
	if err := parseCacheSection(f, &cfg.Cache); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseGenSection(f *inifile.File, cfg *GenConfig) error {
	s := f.Section("gen")
	if s == nil {
		return nil
	}

	if v, ok := s.Lookup("packages"); ok {
		cfg.Packages = splitList(v)
		if len(cfg.Packages) == 0 {
			return fmt.Errorf("[gen] packages is empty\n" +
				"  Hint: List package directories separated by commas, e.g. packages = models, api")
		}
	}
	if v, ok := s.Lookup("filename"); ok {
		if !strings.HasPrefix(v, "zz_generated") || !strings.HasSuffix(v, ".go") {
			return fmt.Errorf("[gen] filename %q is invalid\n"+
				"  Hint: The generated file must match zz_generated*.go so repeated runs skip it", v)
		}
		cfg.Filename = v
	}
	if v, ok := s.Lookup("rng_import"); ok {
		if v == "" {
			return fmt.Errorf("[gen] rng_import is empty")
		}
		cfg.RNGImport = v
	}

	return nil
}

func parseCacheSection(f *inifile.File, cfg *CacheConfig) error {
	s := f.Section("cache")
	if s == nil {
		return nil
	}

	if v, ok := s.Lookup("enabled"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("[cache] enabled must be true or false, got %q", v)
		}
		cfg.Enabled = b
	}
	if v, ok := s.Lookup("path"); ok {
		if v == "" {
			return fmt.Errorf("[cache] path is empty")
		}
		cfg.Path = v
	}

	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WriteDefault writes a commented starter randgen.ini into dir. It refuses
// to overwrite an existing file.
func WriteDefault(dir string) error {
	path := filepath.Join(dir, ConfigFilename)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists in %s", ConfigFilename, dir)
	}

	content := `# randgen configuration
[gen]
# Directories to scan for //randgen:derive types, comma separated.
packages = .
# Name of the file generated into each package.
filename = zz_generated_random.go

[cache]
# Skip packages whose sources are unchanged since the last run.
enabled = true
path = .randgen/cache.db
`
	return os.WriteFile(path, []byte(content), 0o644)
}
