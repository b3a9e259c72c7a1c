package redimap

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/redimap/store"
)

// Mode selects how scan operations materialize values.
type Mode uint32

const (
	// ModeFast fetches every enumerated value with one batched round-trip.
	ModeFast Mode = iota
	// ModeSaving fetches values one round-trip per record, trading latency
	// for a smaller per-call payload on the store.
	ModeSaving
)

func (m Mode) String() string {
	switch m {
	case ModeFast:
		return "fast"
	case ModeSaving:
		return "saving"
	default:
		return fmt.Sprintf("mode(%d)", uint32(m))
	}
}

// Compat declares which value encoding a provider round-trips faithfully.
type Compat uint8

const (
	// CompatText round-trips plain text values. The default.
	CompatText Compat = iota
	// CompatJSON round-trips JSON documents.
	CompatJSON
	// CompatBinary round-trips arbitrary byte payloads.
	CompatBinary
	// CompatNative marks in-process object graphs. No remote-backed store
	// can honor it; the constant exists so hosts can express the full tag
	// set when choosing among providers.
	CompatNative
)

func (c Compat) String() string {
	switch c {
	case CompatText:
		return "text"
	case CompatJSON:
		return "json"
	case CompatBinary:
		return "binary"
	case CompatNative:
		return "native"
	default:
		return fmt.Sprintf("compat(%d)", uint8(c))
	}
}

// Capabilities is the static descriptor a host inspects before adopting a
// provider: what encoding survives the round-trip and whether state is
// visible across process instances.
type Capabilities struct {
	Compat      Compat
	SharedCache bool
}

// Entry is one (key, value) pair of a partition.
type Entry struct {
	Key   string
	Value string
}

// View is the read-only partition handle passed into scan callbacks,
// scoped to the call. Callbacks never see the full provider.
type View interface {
	Keyspace() string
	Storage() string
	Get(ctx context.Context, key string) (string, bool, error)
	Has(ctx context.Context, key string) (bool, error)
	Size(ctx context.Context) (int, error)
}

// IterFunc is the side-effecting callback of ForEach.
type IterFunc func(ctx context.Context, value, key string, view View) error

// Predicate decides whether a (key, value) pair participates in Filter,
// Find, Count, Counts and Sweep. Predicates may block; scans stay
// sequential in key order, so a slow predicate throttles the whole scan.
type Predicate func(ctx context.Context, value, key string, view View) (bool, error)

// Projection maps a (key, value) pair to its Map result.
type Projection func(ctx context.Context, value, key string, view View) (string, error)

// Options configure a Provider. Only Store is required.
type Options struct {
	// Required.
	Store store.Store

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks
	Mode   Mode   // initial performance mode; default ModeFast
	Compat Compat // value-encoding capability tag; default CompatText
}

// New builds a Provider. The store connection is not touched until Init.
func New(opts Options) (*Provider, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("redimap: store is required")
	}
	p := &Provider{
		st:     opts.Store,
		log:    coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:  coalesce[Hooks](opts.Hooks, NopHooks{}),
		compat: opts.Compat,
	}
	p.mode.Store(uint32(opts.Mode))
	return p, nil
}
