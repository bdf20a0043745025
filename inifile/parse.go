// Package inifile reads and writes the small INI dialect used by
// randgen.ini: [section] headers, key = value lines, and comments starting
// with # or ;. Section and key lookups are case-insensitive; declaration
// order is preserved so a file survives a read-modify-write round trip.
package inifile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// File is a parsed INI file.
type File struct {
	Sections []Section
}

// Section is one [name] block with its key-value lines in order.
type Section struct {
	Name   string
	Values []KeyValue
}

// KeyValue is a single key = value line.
type KeyValue struct {
	Key   string
	Value string
}

// Parse reads INI content from r. Lines before the first section header
// and lines without an = are ignored.
func Parse(r io.Reader) (*File, error) {
	f := &File{}
	var cur *Section

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || line[0] == '#' || line[0] == ';':
			continue

		case line[0] == '[' && line[len(line)-1] == ']':
			name := strings.ToLower(strings.Trim(line, "[]"))
			f.Sections = append(f.Sections, Section{Name: name})
			cur = &f.Sections[len(f.Sections)-1]

		case cur != nil:
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			cur.Values = append(cur.Values, KeyValue{
				Key:   strings.ToLower(strings.TrimSpace(key)),
				Value: strings.TrimSpace(value),
			})
		}
	}

	return f, scanner.Err()
}

// ParseFile reads and parses an INI file from disk.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Section returns the named section, or nil.
func (f *File) Section(name string) *Section {
	name = strings.ToLower(name)
	for i := range f.Sections {
		if f.Sections[i].Name == name {
			return &f.Sections[i]
		}
	}
	return nil
}

// Get returns the value for a key in a section, or "" when either is
// missing. When a key repeats, the last value wins.
func (f *File) Get(section, key string) string {
	s := f.Section(section)
	if s == nil {
		return ""
	}
	return s.Get(key)
}

// Get returns the value for a key, or "". When a key repeats, the last
// value wins.
func (s *Section) Get(key string) string {
	v, _ := s.Lookup(key)
	return v
}

// Lookup returns the value for a key and whether the key was present.
func (s *Section) Lookup(key string) (string, bool) {
	key = strings.ToLower(key)
	var value string
	found := false
	for _, kv := range s.Values {
		if kv.Key == key {
			value = kv.Value
			found = true
		}
	}
	return value, found
}

// HasKey reports whether the section contains the key.
func (s *Section) HasKey(key string) bool {
	_, ok := s.Lookup(key)
	return ok
}

// Set updates a key in a section, creating the section or key as needed.
func (f *File) Set(section, key, value string) {
	section = strings.ToLower(section)
	key = strings.ToLower(key)

	s := f.Section(section)
	if s == nil {
		f.Sections = append(f.Sections, Section{Name: section})
		s = &f.Sections[len(f.Sections)-1]
	}

	for i := range s.Values {
		if s.Values[i].Key == key {
			s.Values[i].Value = value
			return
		}
	}
	s.Values = append(s.Values, KeyValue{Key: key, Value: value})
}

// Write serializes the file with a blank line between sections.
func (f *File) Write(w io.Writer) error {
	for i, section := range f.Sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%s]\n", section.Name); err != nil {
			return err
		}
		for _, kv := range section.Values {
			if _, err := fmt.Fprintf(w, "%s = %s\n", kv.Key, kv.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteFile writes the serialized file to path.
func (f *File) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := f.Write(file); err != nil {
		return err
	}
	return file.Sync()
}
