// Package alloc provides the swappable memory-allocation capability that
// every utilkit facility threads through its storage operations.
//
// # Overview
//
// Facilities in this library never reach for the runtime allocator directly
// when they acquire storage they own. They take an Allocator at construction
// and route acquisition, growth, and release through it, which keeps three
// things possible without touching the facility's code:
//
//   - metering: Counting wraps any allocator and reports call counts and net
//     outstanding bytes, so a test can assert that a facility releases every
//     byte it takes
//   - fault injection: Failing refuses allocations on cue, driving
//     allocation-failure paths that are otherwise unreachable on a
//     garbage-collected runtime
//   - substitution: callers with pooled or metered storage of their own can
//     supply an implementer
//
// Default returns the process-heap allocator, a thin veneer over the Go
// runtime: Allocate is make, Deallocate severs the reference for the
// collector.
//
// # Failure contract
//
// A refused allocation returns nil and nothing else happens: no panic, no
// error-channel write. Callers translate nil into their own failure
// reporting. Keeping this package silent preserves the one-way dependency
// direction, since the error channel itself validates its allocator through
// this package.
package alloc
