package background

import "sync"

// MemorySwapper holds the currently applied background for the running
// dashboard session. The HTTP layer reads it back after a swap.
type MemorySwapper struct {
	mu      sync.RWMutex
	current string
}

func NewMemorySwapper(initial string) *MemorySwapper {
	return &MemorySwapper{current: initial}
}

func (m *MemorySwapper) Swap(imageRef string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = imageRef
	return nil
}

// Current returns the last applied background reference.
func (m *MemorySwapper) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}
