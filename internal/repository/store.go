// Package repository reads experiment records from a keepsake repository.
//
// A repository is a directory holding one JSON document per run under
// metadata/experiments. Its location comes from the "repository:" entry of
// the project's keepsake.yml (file:// URLs only). Records are only read,
// never written.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/sake/pkg/core"
)

// ExperimentsDir is the record directory relative to the repository root.
const ExperimentsDir = "metadata/experiments"

// Config holds store configuration.
type Config struct {
	// Location is the repository root directory.
	Location string
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Store lists and loads runs from a repository directory.
type Store struct {
	location string
	logger   *slog.Logger
}

// New creates a store rooted at cfg.Location.
func New(cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{location: cfg.Location, logger: logger}
}

// Location returns the repository root.
func (s *Store) Location() string {
	return s.location
}

// recordFiles lists record files sorted by name.
func (s *Store) recordFiles() ([]string, error) {
	dir := filepath.Join(s.location, ExperimentsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments in %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Runs loads every run in the repository, ordered by file name.
func (s *Store) Runs(ctx context.Context) ([]*core.Run, error) {
	files, err := s.recordFiles()
	if err != nil {
		return nil, err
	}

	runs := make([]*core.Run, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		run, err := ReadRun(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load experiment: %w", err)
		}
		runs = append(runs, run)
	}

	s.logger.Debug("loaded experiments", slog.String("location", s.location), slog.Int("count", len(runs)))
	return runs, nil
}

// Lookup loads the single run whose id starts with partialID. It fails with
// ErrRunNotFound when nothing matches and with *AmbiguousIDError when more
// than one run matches.
func (s *Store) Lookup(ctx context.Context, partialID string) (*core.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := s.recordFiles()
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, path := range files {
		if strings.HasPrefix(filepath.Base(path), partialID) {
			matches = append(matches, path)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: '%s'", ErrRunNotFound, partialID)
	case 1:
		s.logger.Debug("resolved experiment", slog.String("prefix", partialID), slog.String("file", matches[0]))
		return ReadRun(matches[0])
	default:
		return nil, &AmbiguousIDError{Prefix: partialID, Count: len(matches)}
	}
}
