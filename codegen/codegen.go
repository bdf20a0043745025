// Package codegen runs the generation pipeline: discover package
// directories, extract descriptors for marked types, derive generation
// procedures, and write one generated file per package.
package codegen

import (
	"fmt"
	"os"
	"strings"
)

// GetModulePath reads go.mod and extracts the module path.
// The goModRoot parameter should be the directory containing go.mod.
func GetModulePath(goModRoot string) (string, error) {
	data, err := os.ReadFile(goModRoot + "/go.mod")
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "module ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "module ")), nil
		}
	}
	return "", fmt.Errorf("module declaration not found in go.mod")
}

// WriteFileIfChanged writes content to a file only if it differs from existing content.
// Returns true if the file was written, false if unchanged.
func WriteFileIfChanged(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && string(existing) == string(content) {
		return false, nil
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, err
	}
	return true, nil
}
