package redimap

// Hooks are lightweight callbacks for high-signal scan events.
// Implementations MUST be cheap and non-blocking; the provider calls them
// on hot paths. Wrap with hooks/async to decouple slow sinks.
type Hooks interface {
	// A key enumerated by a scan was gone by the time its value was
	// fetched (concurrent delete); the pair was skipped.
	AbsentSkipped(keyspace, storage, key string)

	// Sweep issued its batched delete. deleted is the store's count.
	SweepApplied(keyspace, storage string, deleted int64)

	// Clear removed a whole partition.
	PartitionCleared(keyspace, storage string, removed int64)

	// A primitive store call failed and the error is propagating to the
	// caller. op ∈ {"connect", "get", "set", "del", "exists", "keys", "mget"}.
	StoreError(op string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) AbsentSkipped(string, string, string)   {}
func (NopHooks) SweepApplied(string, string, int64)     {}
func (NopHooks) PartitionCleared(string, string, int64) {}
func (NopHooks) StoreError(string, error)               {}
