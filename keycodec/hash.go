package keycodec

import "strings"

// Hash is the two-level strategy: the partition itself is one remote key,
//
//	[prefix<sep>]<keyspace><sep><storage>
//
// and record keys live as fields inside the hash-shaped structure stored
// there. Member enumeration is a field listing, not a pattern scan.
//
// Record keys could technically carry the separator here, but the codec
// rejects them anyway so both strategies accept exactly the same inputs.
type Hash struct {
	Prefix string
	Sep    string
}

func (c Hash) sep() string {
	if c.Sep == "" {
		return DefaultSep
	}
	return c.Sep
}

// PartitionKey returns the remote key holding a (keyspace, storage)
// partition.
func (c Hash) PartitionKey(keyspace, storage string) (string, error) {
	sep := c.sep()
	if c.Prefix != "" {
		if err := reject(sep, "prefix", c.Prefix); err != nil {
			return "", err
		}
	}
	if keyspace == "" || storage == "" {
		return "", ErrEmptyComponent
	}
	if err := reject(sep, "keyspace", keyspace); err != nil {
		return "", err
	}
	if err := reject(sep, "storage", storage); err != nil {
		return "", err
	}
	if c.Prefix != "" {
		return c.Prefix + sep + keyspace + sep + storage, nil
	}
	return keyspace + sep + storage, nil
}

// ValidateKey rejects record keys containing the separator, keeping the
// two strategies behaviorally identical.
func (c Hash) ValidateKey(key string) error {
	return reject(c.sep(), "key", key)
}

// DecodePartition splits a partition key back into (keyspace, storage).
func (c Hash) DecodePartition(flat string) (keyspace, storage string, err error) {
	sep := c.sep()
	rest := flat
	if c.Prefix != "" {
		cut, ok := strings.CutPrefix(rest, c.Prefix+sep)
		if !ok {
			return "", "", ErrMalformed
		}
		rest = cut
	}
	parts := strings.Split(rest, sep)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrMalformed
	}
	return parts[0], parts[1], nil
}
