// Package types provides shared type definitions used across the delta packages.
//
// It holds the Diffable capability that composite values implement so that the
// recursive reconcilers and the field dispatch layer can nest changesets, and
// the small closed set of strategy selectors chosen per field. Keeping them
// here lets pkg/keyed and pkg/differ depend on the same contract without an
// import cycle.
//
// The package has zero dependencies.
//
//nolint:revive // Package name 'types' is appropriate for common type definitions
package types
