// Package constants provides shared constants used throughout the delta codebase.
// This includes chunk sizing for the rope, count tiers for multiset changes,
// codec limits, and file permissions that should be consistent across the
// library and the CLI.
package constants

// Rope chunk sizing. The values are tuned heuristics kept for behavioral
// compatibility with existing encoded data and benchmarks.
const (
	// UnderfullChunkSize is the size at or below which a chunk is merged with its neighbours
	UnderfullChunkSize = 3

	// DefaultChunkSize is the target size used when chunks are split or rebuilt
	DefaultChunkSize = 8

	// MaxChunkSize is the largest size a chunk may hold before it is split
	MaxChunkSize = 16
)

// Multiset count tiers
const (
	// SingleCount is the count carried by a Single tier change
	SingleCount = 1

	// MaxFewCount is the largest count carried by a Few tier change
	MaxFewCount = 255
)

// Codec limits
const (
	// MaxEncodedElements bounds every length prefix read by the binary codec
	MaxEncodedElements = 1 << 20

	// MaxEncodedBytes bounds a single byte-slice or string payload
	MaxEncodedBytes = 1 << 24

	// MaxIndex bounds every position read by the binary codec
	MaxIndex = 1<<31 - 1
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// CLI defaults
const (
	// DefaultConfigName is the base name of the config file searched in $HOME and the working directory
	DefaultConfigName = ".delta"

	// DefaultAlgorithm is the ordered diff algorithm used when none is configured
	DefaultAlgorithm = "hirschberg"

	// DefaultStrategy is the collection strategy used when none is configured
	DefaultStrategy = "ordered-array-like"

	// DefaultMapMode is the map comparison mode used when none is configured
	DefaultMapMode = "key-and-value"
)
