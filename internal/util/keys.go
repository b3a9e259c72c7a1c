package util

// Dedup returns keys with duplicates removed, first occurrence wins.
// Batched deletes count unique keys; feeding duplicates to the store would
// inflate nothing but the payload.
func Dedup(keys []string) []string {
	if len(keys) < 2 {
		return keys
	}
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
