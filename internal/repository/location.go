package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keepsake project file names, in lookup order.
const (
	ProjectFileName    = "keepsake.yml"
	ProjectFileNameAlt = "keepsake.yaml"
)

const fileScheme = "file://"

// projectFile is the part of keepsake.yml sake reads.
type projectFile struct {
	Repository string `yaml:"repository"`
}

// FindProjectFile returns the keepsake.yml path in dir, or "" when absent.
func FindProjectFile(dir string) string {
	for _, name := range []string{ProjectFileName, ProjectFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// LocateFromProject reads the repository location from the keepsake project
// file in dir. A relative location is resolved against dir.
func LocateFromProject(dir string) (string, error) {
	path := FindProjectFile(dir)
	if path == "" {
		return "", fmt.Errorf("%w: no %s in %s", ErrNoRepository, ProjectFileName, dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	var pf projectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if strings.TrimSpace(pf.Repository) == "" {
		return "", fmt.Errorf("%w: repository not found in %s", ErrNoRepository, filepath.Base(path))
	}

	return ParseLocation(pf.Repository, dir)
}

// ParseLocation converts a "file://" repository URL into a directory path.
// Relative paths are resolved against baseDir.
func ParseLocation(location, baseDir string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", ErrNoRepository
	}
	dir, ok := strings.CutPrefix(location, fileScheme)
	if !ok {
		return "", fmt.Errorf("%w: %s (only %s is supported)", ErrUnsupportedScheme, location, fileScheme)
	}
	if dir == "" {
		return "", errors.New("empty repository path")
	}
	if !filepath.IsAbs(dir) && baseDir != "" {
		dir = filepath.Join(baseDir, dir)
	}
	return filepath.Clean(dir), nil
}
