package inifile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shipq/randgen/inifile"
)

func TestParse_Basic(t *testing.T) {
	f, err := inifile.Parse(strings.NewReader(`
# top comment
[gen]
packages = demo
filename = zz_generated_random.go

; another comment style
[cache]
enabled = true
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(f.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(f.Sections))
	}
	if got := f.Get("gen", "packages"); got != "demo" {
		t.Errorf("Get(gen, packages) = %q, want %q", got, "demo")
	}
	if got := f.Get("cache", "enabled"); got != "true" {
		t.Errorf("Get(cache, enabled) = %q, want %q", got, "true")
	}
}

func TestParse_CaseInsensitive(t *testing.T) {
	f, err := inifile.Parse(strings.NewReader("[Gen]\nFileName = out.go\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := f.Get("GEN", "filename"); got != "out.go" {
		t.Errorf("Get = %q, want %q", got, "out.go")
	}
}

func TestParse_LastValueWins(t *testing.T) {
	f, err := inifile.Parse(strings.NewReader("[gen]\nfilename = a.go\nfilename = b.go\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := f.Get("gen", "filename"); got != "b.go" {
		t.Errorf("Get = %q, want %q", got, "b.go")
	}
}

func TestParse_IgnoresStrays(t *testing.T) {
	f, err := inifile.Parse(strings.NewReader(`orphan = before any section
[gen]
no equals sign here
packages = demo
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	s := f.Section("gen")
	if s == nil {
		t.Fatal("section gen missing")
	}
	if len(s.Values) != 1 {
		t.Errorf("got %d values, want 1", len(s.Values))
	}
}

func TestParse_ValueWithEquals(t *testing.T) {
	f, err := inifile.Parse(strings.NewReader("[gen]\nflags = a=1,b=2\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := f.Get("gen", "flags"); got != "a=1,b=2" {
		t.Errorf("Get = %q, want %q", got, "a=1,b=2")
	}
}

func TestLookup(t *testing.T) {
	f, _ := inifile.Parse(strings.NewReader("[gen]\nfilename = out.go\n"))
	s := f.Section("gen")

	if v, ok := s.Lookup("filename"); !ok || v != "out.go" {
		t.Errorf("Lookup(filename) = %q, %v", v, ok)
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Error("Lookup(missing) reported present")
	}
	if !s.HasKey("filename") || s.HasKey("missing") {
		t.Error("HasKey gave wrong answers")
	}
}

func TestSet(t *testing.T) {
	f := &inifile.File{}
	f.Set("gen", "packages", "demo")
	f.Set("gen", "packages", "demo, models")
	f.Set("cache", "enabled", "true")

	if got := f.Get("gen", "packages"); got != "demo, models" {
		t.Errorf("Get after Set = %q", got)
	}
	if len(f.Section("gen").Values) != 1 {
		t.Error("Set duplicated the key instead of replacing it")
	}
	if f.Section("cache") == nil {
		t.Error("Set did not create the cache section")
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	f := &inifile.File{}
	f.Set("gen", "packages", "demo")
	f.Set("gen", "filename", "zz_generated_random.go")
	f.Set("cache", "enabled", "true")

	var b strings.Builder
	if err := f.Write(&b); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "[gen]\npackages = demo\nfilename = zz_generated_random.go\n\n[cache]\nenabled = true\n"
	if b.String() != want {
		t.Errorf("Write output:\n%s\nwant:\n%s", b.String(), want)
	}

	back, err := inifile.Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if got := back.Get("gen", "filename"); got != "zz_generated_random.go" {
		t.Errorf("round trip lost filename: %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "randgen.ini")

	f := &inifile.File{}
	f.Set("gen", "packages", "demo")
	if err := f.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	back, err := inifile.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if got := back.Get("gen", "packages"); got != "demo" {
		t.Errorf("Get = %q, want %q", got, "demo")
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := inifile.ParseFile(filepath.Join(t.TempDir(), "absent.ini"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("want not-exist error, got %v", err)
	}
}
