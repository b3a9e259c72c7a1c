package keycodec

import "strings"

// Flat is the three-level strategy: one remote key per record,
//
//	[prefix<sep>]<keyspace><sep><storage><sep><key>
//
// Partition membership is recovered with a pattern scan (Pattern) and
// Decode on each hit. The zero value uses DefaultSep and no prefix.
type Flat struct {
	// Prefix is an optional global segment prepended to every key, so one
	// store can host several independent deployments.
	Prefix string
	// Sep is the field separator; empty means DefaultSep.
	Sep string
}

func (c Flat) sep() string {
	if c.Sep == "" {
		return DefaultSep
	}
	return c.Sep
}

func (c Flat) validatePrefix() error {
	if c.Prefix == "" {
		return nil
	}
	return reject(c.sep(), "prefix", c.Prefix)
}

// Encode returns the remote key for a full triple.
func (c Flat) Encode(keyspace, storage, key string) (string, error) {
	sep := c.sep()
	if err := c.validatePrefix(); err != nil {
		return "", err
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
	if err := reject(sep, "key", key); err != nil {
		return "", err
	}
	if c.Prefix != "" {
		return c.Prefix + sep + keyspace + sep + storage + sep + key, nil
	}
	return keyspace + sep + storage + sep + key, nil
}

// Pattern returns the enumeration pattern for one (keyspace, storage)
// partition: the encoding with a wildcard in the key position.
func (c Flat) Pattern(keyspace, storage string) (string, error) {
	return c.Encode(keyspace, storage, "*")
}

// KeyspacePattern wildcards both the storage and key positions, matching
// every record under a keyspace.
func (c Flat) KeyspacePattern(keyspace string) (string, error) {
	sep := c.sep()
	if err := c.validatePrefix(); err != nil {
		return "", err
	}
	if keyspace == "" {
		return "", ErrEmptyComponent
	}
	if err := reject(sep, "keyspace", keyspace); err != nil {
		return "", err
	}
	if c.Prefix != "" {
		return c.Prefix + sep + keyspace + sep + "*", nil
	}
	return keyspace + sep + "*", nil
}

// Decode splits a remote key back into its triple. Keys that do not carry
// the configured prefix or the expected number of fields fail with
// ErrMalformed; callers typically skip those (foreign writes).
func (c Flat) Decode(flat string) (keyspace, storage, key string, err error) {
	sep := c.sep()
	rest := flat
	if c.Prefix != "" {
		cut, ok := strings.CutPrefix(rest, c.Prefix+sep)
		if !ok {
			return "", "", "", ErrMalformed
		}
		rest = cut
	}
	parts := strings.Split(rest, sep)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return "", "", "", ErrMalformed
	}
	return parts[0], parts[1], parts[2], nil
}
