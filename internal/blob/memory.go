package blob

import memorystore "staffdir/internal/infra/blob/memory"

// NewMemory returns an in-memory Store.
func NewMemory() Store { return memorystore.New() }
