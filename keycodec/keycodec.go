// Package keycodec maps logical (keyspace, storage, key) triples onto the
// flat key space of a remote store, and maps enumeration results back.
//
// Two strategies exist:
//   - Flat: the whole triple concatenates into one remote key; a partition
//     is enumerated with a pattern scan over its prefix.
//   - Hash: (keyspace, storage) becomes the remote key of a hash-shaped
//     structure and the record key addresses a field inside it.
//
// Encoding is reversible only when no component contains the separator.
// Both strategies reject such components up front instead of escaping
// them; escaped keys would be unreadable in redis tooling.
package keycodec

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultSep is the field separator used when none is configured.
const DefaultSep = ":"

// ErrMalformed reports a flat key that does not decode back into a triple,
// e.g. one written by foreign code under a prefix this codec owns.
var ErrMalformed = errors.New("keycodec: malformed flat key")

// ErrEmptyComponent reports an empty keyspace or storage. Decode cannot
// recover empty fields, so Encode rejects them up front; a record written
// under one would be unreachable by enumeration. Record keys may be empty.
var ErrEmptyComponent = errors.New("keycodec: empty keyspace or storage")

// SeparatorError reports a namespace component containing the separator,
// which would make the encoding ambiguous.
type SeparatorError struct {
	Component string // "prefix", "keyspace", "storage" or "key"
	Value     string
	Sep       string
}

func (e *SeparatorError) Error() string {
	return fmt.Sprintf("keycodec: %s %q contains separator %q", e.Component, e.Value, e.Sep)
}

func reject(sep, component, value string) error {
	if strings.Contains(value, sep) {
		return &SeparatorError{Component: component, Value: value, Sep: sep}
	}
	return nil
}
