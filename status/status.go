// Package status defines the closed set of error values shared by every
// utilkit package.
//
// Success is the nil error; every failure that crosses a public API boundary
// is one of the sentinels below, either returned directly or wrapped with
// fmt.Errorf("...: %w", ...) for context. Callers match with errors.Is.
// The set is closed: packages do not mint additional sentinels, so the
// values double as the library's stable return-code vocabulary.
package status

import "errors"

var (
	// ErrInvalidArgument indicates a caller-supplied argument failed validation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBadAlloc indicates the allocator refused a requested allocation.
	ErrBadAlloc = errors.New("memory allocation failed")

	// ErrUnspecified is the catch-all failure for conditions with no narrower code.
	ErrUnspecified = errors.New("unspecified error")

	// ErrNotFound indicates a lookup key is not present.
	ErrNotFound = errors.New("entry not found")

	// ErrNotInitialized indicates an operation ran before its subsystem was initialized.
	ErrNotInitialized = errors.New("not initialized")

	// ErrStringKeyNotFound indicates a string-map lookup key is not present.
	ErrStringKeyNotFound = errors.New("string key not found")

	// ErrStringMapInvalid indicates a string map that is unusable: the zero
	// value, a nil receiver, or a map that has already been finalized.
	ErrStringMapInvalid = errors.New("string map invalid")

	// ErrStringMapAlreadyInit indicates a second Init on a live string map.
	ErrStringMapAlreadyInit = errors.New("string map already initialized")

	// ErrNotEnoughSpace indicates a fixed-capacity operation found no free slot.
	ErrNotEnoughSpace = errors.New("not enough space")

	// ErrNoMoreEntries indicates an iterator has advanced past the last entry.
	ErrNoMoreEntries = errors.New("no more entries")

	// ErrSeverityMapInvalid indicates the logging severity map is unavailable.
	ErrSeverityMapInvalid = errors.New("severity map invalid")

	// ErrSeverityStringInvalid indicates a severity name that failed to parse.
	ErrSeverityStringInvalid = errors.New("severity string invalid")
)
