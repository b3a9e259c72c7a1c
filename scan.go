package redimap

import "context"

// Scan operations enumerate the partition's keys first and fetch values
// second. The two steps are not atomic: a record deleted between them
// reads as absent and is skipped. Scans over an empty partition return
// their identity result without a single value round-trip.

type pair struct {
	key   string
	value string
}

func (pt *Partition) enumerate(ctx context.Context) ([]string, error) {
	if err := pt.p.check(); err != nil {
		return nil, err
	}
	keys, err := pt.p.st.Keys(ctx, pt.keyspace, pt.storage)
	if err != nil {
		pt.p.hooks.StoreError("keys", err)
		return nil, err
	}
	return keys, nil
}

// fetchBatch materializes all present pairs with one batched round-trip.
// Absent slots were deleted by a concurrent writer after enumeration.
func (pt *Partition) fetchBatch(ctx context.Context, keys []string) ([]Entry, error) {
	vals, err := pt.p.st.MGet(ctx, pt.keyspace, pt.storage, keys)
	if err != nil {
		pt.p.hooks.StoreError("mget", err)
		return nil, err
	}
	out := make([]Entry, 0, len(keys))
	for i, v := range vals {
		if v == nil {
			pt.p.hooks.AbsentSkipped(pt.keyspace, pt.storage, keys[i])
			continue
		}
		out = append(out, Entry{Key: keys[i], Value: *v})
	}
	return out, nil
}

// each walks the present pairs in enumeration order under the given mode.
// fn returning false stops the walk early; only Find uses that. ModeFast
// spends one batched fetch up front, ModeSaving fetches as it goes and
// therefore stops fetching when fn stops the walk.
func (pt *Partition) each(ctx context.Context, keys []string, mode Mode, fn func(key, value string) (bool, error)) error {
	if mode == ModeFast {
		entries, err := pt.fetchBatch(ctx, keys)
		if err != nil {
			return err
		}
		for _, e := range entries {
			cont, err := fn(e.Key, e.Value)
			if err != nil || !cont {
				return err
			}
		}
		return nil
	}

	for _, k := range keys {
		v, ok, err := pt.p.st.Get(ctx, pt.keyspace, pt.storage, k)
		if err != nil {
			pt.p.hooks.StoreError("get", err)
			return err
		}
		if !ok {
			pt.p.hooks.AbsentSkipped(pt.keyspace, pt.storage, k)
			continue
		}
		cont, err := fn(k, v)
		if err != nil || !cont {
			return err
		}
	}
	return nil
}

// ForEach invokes fn for every present pair in enumeration order.
func (pt *Partition) ForEach(ctx context.Context, fn IterFunc) error {
	keys, err := pt.enumerate(ctx)
	if err != nil || len(keys) == 0 {
		return err
	}
	return pt.each(ctx, keys, pt.p.Mode(), func(k, v string) (bool, error) {
		return true, fn(ctx, v, k, pt)
	})
}

// Filter returns the pairs pred accepts.
func (pt *Partition) Filter(ctx context.Context, pred Predicate) ([]Entry, error) {
	keys, err := pt.enumerate(ctx)
	if err != nil || len(keys) == 0 {
		return nil, err
	}
	var out []Entry
	err = pt.each(ctx, keys, pt.p.Mode(), func(k, v string) (bool, error) {
		ok, err := pred(ctx, v, k, pt)
		if err != nil {
			return false, err
		}
		if ok {
			out = append(out, Entry{Key: k, Value: v})
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Map projects every present pair through fn, one result per pair.
func (pt *Partition) Map(ctx context.Context, fn Projection) ([]string, error) {
	keys, err := pt.enumerate(ctx)
	if err != nil || len(keys) == 0 {
		return nil, err
	}
	var out []string
	err = pt.each(ctx, keys, pt.p.Mode(), func(k, v string) (bool, error) {
		m, err := fn(ctx, v, k, pt)
		if err != nil {
			return false, err
		}
		out = append(out, m)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Find returns the first present pair pred accepts. It is the only scan
// operation that short-circuits: evaluation stops at the match, and in
// ModeSaving no further values are fetched either.
func (pt *Partition) Find(ctx context.Context, pred Predicate) (Entry, bool, error) {
	keys, err := pt.enumerate(ctx)
	if err != nil || len(keys) == 0 {
		return Entry{}, false, err
	}
	var (
		hit   Entry
		found bool
	)
	err = pt.each(ctx, keys, pt.p.Mode(), func(k, v string) (bool, error) {
		ok, err := pred(ctx, v, k, pt)
		if err != nil {
			return false, err
		}
		if ok {
			hit = Entry{Key: k, Value: v}
			found = true
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return Entry{}, false, err
	}
	return hit, found, nil
}

// Count returns how many present pairs pred accepts.
func (pt *Partition) Count(ctx context.Context, pred Predicate) (int, error) {
	keys, err := pt.enumerate(ctx)
	if err != nil || len(keys) == 0 {
		return 0, err
	}
	n := 0
	err = pt.each(ctx, keys, pt.p.Mode(), func(k, v string) (bool, error) {
		ok, err := pred(ctx, v, k, pt)
		if err != nil {
			return false, err
		}
		if ok {
			n++
		}
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Counts counts matches for several predicates in one pass. The pairs are
// enumerated and fetched exactly once and every predicate is evaluated
// against that shared snapshot, so all counters describe the same store
// state. Results are in input order.
func (pt *Partition) Counts(ctx context.Context, preds []Predicate) ([]int, error) {
	out := make([]int, len(preds))
	if len(preds) == 0 {
		return out, nil
	}
	keys, err := pt.enumerate(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return out, nil
	}
	var snapshot []pair
	err = pt.each(ctx, keys, pt.p.Mode(), func(k, v string) (bool, error) {
		snapshot = append(snapshot, pair{key: k, value: v})
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	for i, pred := range preds {
		for _, pr := range snapshot {
			ok, err := pred(ctx, pr.value, pr.key, pt)
			if err != nil {
				return nil, err
			}
			if ok {
				out[i]++
			}
		}
	}
	return out, nil
}

// Sweep deletes every present pair pred accepts, with one batched delete
// for all matches of this scan. A predicate or fetch error aborts before
// anything is deleted; an error from the delete itself propagates after
// the store applied whatever it applied.
func (pt *Partition) Sweep(ctx context.Context, pred Predicate) error {
	keys, err := pt.enumerate(ctx)
	if err != nil || len(keys) == 0 {
		return err
	}
	var matched []string
	err = pt.each(ctx, keys, pt.p.Mode(), func(k, v string) (bool, error) {
		ok, err := pred(ctx, v, k, pt)
		if err != nil {
			return false, err
		}
		if ok {
			matched = append(matched, k)
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	if len(matched) == 0 {
		return nil
	}
	n, err := pt.p.st.Del(ctx, pt.keyspace, pt.storage, matched...)
	if err != nil {
		pt.p.hooks.StoreError("del", err)
		return err
	}
	pt.p.hooks.SweepApplied(pt.keyspace, pt.storage, n)
	pt.p.log.Debug("sweep applied", Fields{
		"keyspace": pt.keyspace,
		"storage":  pt.storage,
		"matched":  len(matched),
		"deleted":  n,
	})
	return nil
}
