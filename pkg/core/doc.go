// Package core defines the shared language of sake.
//
// This package contains:
//   - Domain entities (Run, Checkpoint, PrimaryMetric)
//   - The tagged Value used for typed comparison of parameters and metrics
//   - Field resolution (Run.Field) and best-checkpoint selection (SelectBest)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
