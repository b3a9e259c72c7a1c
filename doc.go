// Package redimap exposes a mapping-of-mappings cache provider
// (keyspace -> storage -> key -> value) on top of a flat remote key-value
// store that has no native notion of nested namespaces.
//
// Components:
//   - store.Store: the primitive operation set a backend supplies
//     (get/set/del/exists/enumerate-keys/multi-get). Backends: redis flat
//     keys, redis hashes, embedded bigcache.
//   - keycodec: reversible encoding of (keyspace, storage, key) triples
//     into the backend's flat key space.
//   - Partition: the (keyspace, storage) handle carrying record ops and
//     the scan family (ForEach, Filter, Map, Find, Count, Counts, Sweep).
//
// Keys (flat layout):
//
//	[prefix:]<keyspace>:<storage>:<key>
//
// Performance mode:
//
//	ModeFast   - one batched MGET per scan (default)
//	ModeSaving - one GET per record
//
// The mode trades round-trips against per-call payload; it never changes
// results. Scans enumerate keys first and fetch values second, and the two
// steps are not atomic: a record deleted in between reads as absent and is
// skipped. That weak-consistency contract is deliberate; the provider adds
// no cross-key isolation on top of the store's own guarantees.
package redimap
