package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

var _ ports.BreakdownCache = (*MemoryBreakdownCache)(nil)

type memoryEntry struct {
	items     []entity.SKUBreakdownItem
	expiresAt time.Time // cero = no expira
}

// MemoryBreakdownCache caché de desglose en memoria del proceso.
// Set reemplaza la entrada completa; Get devuelve una copia para que nadie mute el valor guardado.
type MemoryBreakdownCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryBreakdownCache ttl <= 0 = sin expiración.
func NewMemoryBreakdownCache(ttl time.Duration) *MemoryBreakdownCache {
	return &MemoryBreakdownCache{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (c *MemoryBreakdownCache) Get(_ context.Context, masterSKUID string) ([]entity.SKUBreakdownItem, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[masterSKUID]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, masterSKUID)
		c.mu.Unlock()
		return nil, false, nil
	}
	return cloneItems(e.items), true, nil
}

func (c *MemoryBreakdownCache) Set(_ context.Context, masterSKUID string, items []entity.SKUBreakdownItem) error {
	e := memoryEntry{items: cloneItems(items)}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[masterSKUID] = e
	c.mu.Unlock()
	return nil
}

func cloneItems(items []entity.SKUBreakdownItem) []entity.SKUBreakdownItem {
	out := make([]entity.SKUBreakdownItem, len(items))
	for i, it := range items {
		if it.Price != nil {
			p := *it.Price
			it.Price = &p
		}
		out[i] = it
	}
	return out
}
