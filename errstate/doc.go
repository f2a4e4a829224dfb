// Package errstate carries per-goroutine error state: a message plus the
// file and line that produced it, set on failure and readable until reset,
// travelling outside the return path.
//
// # Overview
//
// Failures in this library report twice. A status error travels up the
// return path, and a human-readable description of the first fault is
// parked here, keyed to the calling goroutine, so layers that only see a
// coarse error value can still surface the original context:
//
//	if err := m.Set(key, value); err != nil {
//		log.Printf("set failed: %v (%s)", err, errstate.GetMessage())
//	}
//
// # Lifecycle discipline
//
// A goroutine sets state when it fails, a reader harvests it, and Reset
// clears it before the next fault. Setting new state over unharvested
// state is legal but loud: while the overwrite diagnostic is enabled (the
// default), the replaced and replacing states are printed to standard
// error, since an unharvested error usually means a missing Reset.
//
// # Storage
//
// Slots live in a sharded table keyed by goroutine id with per-shard
// mutexes, the closest Go analogue to thread-local storage. Reset deletes
// the calling goroutine's slot outright, so goroutine churn does not grow
// the table.
package errstate
