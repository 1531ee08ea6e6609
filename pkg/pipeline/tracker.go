package pipeline

import (
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/scorepager/pkg/layout"
)

// Tracker remembers the ID of the most recently published layout.
//
// Background work (page previews, exports) captures the ID of the layout it
// started from and asks IsCurrent before delivering its result; anything
// computed for a superseded layout is dropped. The zero value is ready to use.
type Tracker struct {
	mu      sync.RWMutex
	current uuid.UUID
}

// Publish marks l as the current layout.
func (t *Tracker) Publish(l layout.PageLayout) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = l.ID
}

// Current returns the ID of the current layout, or uuid.Nil if none was
// published.
func (t *Tracker) Current() uuid.UUID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// IsCurrent reports whether id belongs to the current layout.
func (t *Tracker) IsCurrent(id uuid.UUID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return id != uuid.Nil && id == t.current
}
