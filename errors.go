package redimap

import "errors"

// ErrNotInitialized is returned by every record and scan operation issued
// before Init succeeded. The provider never connects lazily; a host that
// skipped Init hears about it immediately instead of degrading silently.
var ErrNotInitialized = errors.New("redimap: provider not initialized (call Init)")
