// Package stringmap provides a flat string-to-string map with explicit
// capacity control.
//
// # Overview
//
// Where package hashmap buys O(1) lookups with buckets and growth policy,
// this map is deliberately plain: a fixed array of slots searched by linear
// scan. That makes capacity an exact, caller-visible quantity. Reserve sets
// the slot count, Set grows it by doubling only when every slot is taken,
// and SetNoResize never grows at all, reporting ErrNotEnoughSpace instead.
// The trade-off suits small configuration-style tables where predictable
// storage matters more than lookup speed.
//
// # Lifecycle
//
// A StringMap is either constructed with New or taken through the two-phase
// zero-value route:
//
//	var m stringmap.StringMap
//	if err := m.Init(8, alloc.Default()); err != nil { ... }
//	defer m.Fini()
//
// Init on an initialized map reports ErrStringMapAlreadyInit. Every
// operation on a zero-value or finalized map reports ErrStringMapInvalid.
// Fini releases all storage; a second Fini is an error, but Init may be
// called again afterwards.
//
// # Allocation accounting
//
// The slot array and a copy of every stored key and value are admitted
// through the configured alloc.Allocator, so a counting allocator balances
// to zero after Fini and a failing allocator exercises the refusal paths.
// A refused admission leaves the map exactly as it was.
package stringmap
