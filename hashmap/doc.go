// Package hashmap provides a general-purpose separately chained hash map
// with pluggable hashing and equality, allocator-routed storage accounting,
// and a stateless resumable iterator.
//
// # Overview
//
// A Map is parametrised over its key and value types and carries the hash
// and equality functions it was constructed with. Capacity is always a
// power of two, so bucket selection is a mask of the 64-bit hash; the
// bucket array doubles when occupancy reaches three quarters. Entries are
// separately chained in insertion order within their bucket and never move
// in memory once created, which is what makes the iterator contract below
// possible.
//
// # Iteration
//
// GetNextKeyAndData is stateless on the map side: the caller feeds back the
// key pointer returned by the previous call, and the map resumes right
// after that entry. The pointer is compared by identity, not by key
// equality, so only the exact pointer handed out resumes iteration; a
// pointer to an equal key, or to an entry that has since been removed, is
// rejected rather than risking a skip or a loop.
//
// # Allocation accounting
//
// Entry creation, bucket-array growth, and Fini all route through the
// allocator the map was built with. On a collected runtime the blocks are
// bookkeeping rather than the storage itself, but the debt is real: a
// metering allocator balances to zero after Fini, and a refusing allocator
// drives every allocation-failure path, including growth failure, which
// leaves the map fully usable at its old capacity.
package hashmap
