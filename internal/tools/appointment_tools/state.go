package appointment_tools

import (
	"strings"
	"sync"

	"github.com/teemow/slotbooker/internal/booking"
)

// SlotCache remembers the most recent slot list so later tool calls can
// reference a slot by its list position or label. One cache is shared by all
// tools registered on a server.
type SlotCache struct {
	mu       sync.Mutex
	slots    []booking.SlotPayload
	lastDate string
}

// NewSlotCache creates an empty cache.
func NewSlotCache() *SlotCache {
	return &SlotCache{}
}

// Record replaces the cached list with the slots fetched for date.
func (c *SlotCache) Record(date string, slots []booking.SlotPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastDate = date
	c.slots = append([]booking.SlotPayload(nil), slots...)
}

// LastDate returns the date of the most recent slot list, or "".
func (c *SlotCache) LastDate() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastDate
}

// Len returns the number of cached slots.
func (c *SlotCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots)
}

// Resolve fills the empty fields of ref from the cached slot selected by
// index (when hasIndex is set and in range) or, failing that, by label.
// Explicitly provided fields always win over cached values.
func (c *SlotCache) Resolve(ref booking.SlotRef, index int, hasIndex bool, label string) booking.SlotRef {
	c.mu.Lock()
	defer c.mu.Unlock()

	var slot *booking.SlotPayload
	if hasIndex && index >= 0 && index < len(c.slots) {
		slot = &c.slots[index]
	}
	if slot == nil && label != "" {
		for i := range c.slots {
			if strings.EqualFold(c.slots[i].Label, label) {
				slot = &c.slots[i]
				break
			}
		}
	}
	if slot == nil {
		return ref
	}

	if ref.SlotID == "" {
		ref.SlotID = slot.ID
	}
	if ref.StartTime == "" {
		ref.StartTime = slot.StartTime
	}
	if ref.Date == "" {
		ref.Date = slot.StartTime
	}
	if ref.EndTime == "" {
		ref.EndTime = slot.EndTime
	}
	return ref
}
