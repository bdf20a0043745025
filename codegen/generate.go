package codegen

import (
	"fmt"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/shipq/randgen/derive"
	"github.com/shipq/randgen/descriptor"
	"github.com/shipq/randgen/internal/gencache"
)

// Options configures one generation run.
type Options struct {
	// Root is the project root; package dirs are resolved against it.
	Root string

	// Packages are the directories to scan, relative to Root.
	// Subdirectories are included.
	Packages []string

	// Filename is the generated file name written into each package.
	Filename string

	// RNGImport is the import path emitted for the draw helpers.
	RNGImport string

	// Cache skips unchanged packages when non-nil.
	Cache *gencache.Cache

	// Force regenerates even on a cache hit.
	Force bool

	Logger *slog.Logger
}

// PackageResult is the outcome for one package directory.
type PackageResult struct {
	Dir     string
	Types   int  // marked types found
	Written bool // generated file created or updated
	Removed bool // stale generated file deleted
	Skipped bool // unchanged since last run
}

// Summary aggregates a run across packages.
type Summary struct {
	Packages []PackageResult
}

// Written counts packages whose generated file changed.
func (s *Summary) Written() int {
	n := 0
	for _, p := range s.Packages {
		if p.Written {
			n++
		}
	}
	return n
}

// Types counts marked types across all packages.
func (s *Summary) Types() int {
	n := 0
	for _, p := range s.Packages {
		n += p.Types
	}
	return n
}

// Skipped counts cache hits.
func (s *Summary) Skipped() int {
	n := 0
	for _, p := range s.Packages {
		if p.Skipped {
			n++
		}
	}
	return n
}

// Run generates random-value functions for every package under
// opts.Packages. Packages are processed concurrently; the first error stops
// the run.
func Run(opts Options) (*Summary, error) {
	if opts.Filename == "" {
		opts.Filename = "zz_generated_random.go"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	dirs, err := DiscoverPackages(opts.Root, opts.Packages)
	if err != nil {
		return nil, fmt.Errorf("failed to discover packages: %w", err)
	}
	sort.Strings(dirs)

	var (
		g       errgroup.Group
		mu      sync.Mutex
		results = make([]PackageResult, len(dirs))
	)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, dir := range dirs {
		g.Go(func() error {
			res, err := generatePackage(opts, logger, dir)
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{Packages: results}
	logger.Info("generation complete",
		"packages", len(results),
		"types", summary.Types(),
		"written", summary.Written(),
		"skipped", summary.Skipped(),
	)
	return summary, nil
}

func generatePackage(opts Options, logger *slog.Logger, dir string) (PackageResult, error) {
	res := PackageResult{Dir: dir}
	abs := filepath.Join(opts.Root, dir)
	outPath := filepath.Join(abs, opts.Filename)

	var hash string
	if opts.Cache != nil {
		var err error
		hash, err = gencache.HashPackage(abs)
		if err != nil {
			return res, fmt.Errorf("%s: %w", dir, err)
		}
		hit, err := opts.Cache.Lookup(dir, hash)
		if err != nil {
			return res, fmt.Errorf("%s: %w", dir, err)
		}
		if hit && !opts.Force {
			logger.Debug("package unchanged", "dir", dir)
			res.Skipped = true
			return res, nil
		}
	}

	descs, err := descriptor.ExtractDir(abs)
	if err != nil {
		return res, err
	}
	res.Types = len(descs)

	if len(descs) == 0 {
		// No marked types: a leftover generated file is stale.
		if _, err := os.Stat(outPath); err == nil {
			if err := os.Remove(outPath); err != nil {
				return res, fmt.Errorf("%s: failed to remove stale output: %w", dir, err)
			}
			res.Removed = true
			logger.Debug("removed stale generated file", "dir", dir)
		}
		return res, storeHash(opts, dir, hash)
	}

	procs := make([]*derive.Procedure, len(descs))
	for i, d := range descs {
		p, err := derive.Derive(d)
		if err != nil {
			return res, err
		}
		procs[i] = p
	}

	pkgName, err := packageName(abs)
	if err != nil {
		return res, fmt.Errorf("%s: %w", dir, err)
	}

	src, err := derive.EmitFile(pkgName, opts.RNGImport, procs)
	if err != nil {
		return res, err
	}

	written, err := WriteFileIfChanged(outPath, src)
	if err != nil {
		return res, fmt.Errorf("%s: failed to write output: %w", dir, err)
	}
	res.Written = written

	logger.Debug("generated package",
		"dir", dir, "types", res.Types, "written", written)

	return res, storeHash(opts, dir, hash)
}

func storeHash(opts Options, dir, hash string) error {
	if opts.Cache == nil {
		return nil
	}
	if err := opts.Cache.Store(dir, hash); err != nil {
		return fmt.Errorf("%s: %w", dir, err)
	}
	return nil
}

// packageName reads the package clause of the first source file in dir.
func packageName(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || descriptor.IgnoreFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no Go files found")
	}
	sort.Strings(names)

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filepath.Join(dir, names[0]), nil, parser.PackageClauseOnly)
	if err != nil {
		return "", err
	}
	return f.Name.Name, nil
}
