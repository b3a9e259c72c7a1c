package keycodec

import (
	"errors"
	"testing"
)

func TestFlatRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		codec   Flat
		ks, st  string
		key     string
		encoded string
	}{
		{name: "default_sep", codec: Flat{}, ks: "user", st: "s1", key: "u42", encoded: "user:s1:u42"},
		{name: "with_prefix", codec: Flat{Prefix: "app"}, ks: "user", st: "s1", key: "u42", encoded: "app:user:s1:u42"},
		{name: "custom_sep", codec: Flat{Sep: "|"}, ks: "user", st: "s1", key: "u:42", encoded: "user|s1|u:42"},
		{name: "empty_key", codec: Flat{}, ks: "user", st: "s1", key: "", encoded: "user:s1:"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flat, err := tc.codec.Encode(tc.ks, tc.st, tc.key)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if flat != tc.encoded {
				t.Fatalf("Encode = %q, want %q", flat, tc.encoded)
			}
			ks, st, key, err := tc.codec.Decode(flat)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if ks != tc.ks || st != tc.st || key != tc.key {
				t.Fatalf("Decode = (%q,%q,%q), want (%q,%q,%q)", ks, st, key, tc.ks, tc.st, tc.key)
			}
		})
	}
}

func TestFlatPatterns(t *testing.T) {
	c := Flat{Prefix: "app"}
	p, err := c.Pattern("user", "s1")
	if err != nil {
		t.Fatalf("Pattern: %v", err)
	}
	if p != "app:user:s1:*" {
		t.Fatalf("Pattern = %q", p)
	}
	kp, err := c.KeyspacePattern("user")
	if err != nil {
		t.Fatalf("KeyspacePattern: %v", err)
	}
	if kp != "app:user:*" {
		t.Fatalf("KeyspacePattern = %q", kp)
	}
}

func TestFlatRejectsSeparator(t *testing.T) {
	c := Flat{}
	cases := []struct {
		name      string
		ks, st, k string
		wantComp  string
	}{
		{name: "keyspace", ks: "a:b", st: "s", k: "k", wantComp: "keyspace"},
		{name: "storage", ks: "a", st: "s:1", k: "k", wantComp: "storage"},
		{name: "key", ks: "a", st: "s", k: "k:1", wantComp: "key"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Encode(tc.ks, tc.st, tc.k)
			var se *SeparatorError
			if !errors.As(err, &se) {
				t.Fatalf("expected SeparatorError, got %v", err)
			}
			if se.Component != tc.wantComp {
				t.Fatalf("component = %q, want %q", se.Component, tc.wantComp)
			}
		})
	}

	// Prefix is validated too.
	if _, err := (Flat{Prefix: "a:b"}).Encode("ks", "st", "k"); err == nil {
		t.Fatalf("expected error for separator in prefix")
	}
}

// Decode cannot recover empty keyspace/storage fields, so Encode must
// reject them; a triple that encodes must decode back to itself.
func TestEmptyComponentRejected(t *testing.T) {
	c := Flat{}
	cases := []struct {
		name   string
		ks, st string
	}{
		{name: "empty_keyspace", ks: "", st: "s1"},
		{name: "empty_storage", ks: "user", st: ""},
		{name: "both_empty", ks: "", st: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := c.Encode(tc.ks, tc.st, "k"); !errors.Is(err, ErrEmptyComponent) {
				t.Fatalf("Flat.Encode: got %v, want ErrEmptyComponent", err)
			}
			if _, err := (Hash{}).PartitionKey(tc.ks, tc.st); !errors.Is(err, ErrEmptyComponent) {
				t.Fatalf("Hash.PartitionKey: got %v, want ErrEmptyComponent", err)
			}
		})
	}

	if _, err := c.KeyspacePattern(""); !errors.Is(err, ErrEmptyComponent) {
		t.Fatalf("KeyspacePattern: got %v, want ErrEmptyComponent", err)
	}
	// The empty record key stays legal and round-trips (see TestFlatRoundTrip).
	if _, err := c.Encode("user", "s1", ""); err != nil {
		t.Fatalf("Encode with empty key: %v", err)
	}
}

func TestFlatDecodeMalformed(t *testing.T) {
	c := Flat{Prefix: "app"}
	for _, flat := range []string{
		"app:user:s1",      // field missing
		"other:user:s1:k",  // wrong prefix
		"user:s1:k",        // no prefix
		"app::s1:k",        // empty keyspace
		"app:user:s1:k:x",  // too many fields
	} {
		if _, _, _, err := c.Decode(flat); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Decode(%q): expected ErrMalformed, got %v", flat, err)
		}
	}
}

func TestHashPartitionKey(t *testing.T) {
	c := Hash{Prefix: "app"}
	pk, err := c.PartitionKey("user", "s1")
	if err != nil {
		t.Fatalf("PartitionKey: %v", err)
	}
	if pk != "app:user:s1" {
		t.Fatalf("PartitionKey = %q", pk)
	}
	ks, st, err := c.DecodePartition(pk)
	if err != nil || ks != "user" || st != "s1" {
		t.Fatalf("DecodePartition = (%q,%q,%v)", ks, st, err)
	}

	if _, err := c.PartitionKey("a:b", "s1"); err == nil {
		t.Fatalf("expected error for separator in keyspace")
	}
	if err := c.ValidateKey("k:1"); err == nil {
		t.Fatalf("expected error for separator in key")
	}
	if err := c.ValidateKey("k1"); err != nil {
		t.Fatalf("ValidateKey: %v", err)
	}
}
