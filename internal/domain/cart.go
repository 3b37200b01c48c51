package domain

import "time"

type CartItem struct {
	ID        int32
	CartID    int32
	ToolID    int32
	Tool      *Tool // snapshot used for pricing
	StartDate time.Time
	EndDate   time.Time // inclusive
	Quantity  int

	// Filled in by pricing
	DurationDays int
	PricePerDay  float64
	TotalPrice   float64
}

// SameDates reports whether the item covers exactly [start, end]
func (i *CartItem) SameDates(start, end time.Time) bool {
	return i.StartDate.Equal(start) && i.EndDate.Equal(end)
}

// Overlaps reports whether the item's inclusive date range intersects [start, end]
func (i *CartItem) Overlaps(start, end time.Time) bool {
	return !(i.EndDate.Before(start) || i.StartDate.After(end))
}

type Cart struct {
	ID        int32
	UserID    string
	IsCurrent bool
	CreatedAt time.Time
	Items     []CartItem
}

// Total sums the priced item totals
func (c *Cart) Total() float64 {
	if c == nil {
		return 0
	}
	var total float64
	for _, it := range c.Items {
		total += it.TotalPrice
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}


// ConflictingItem returns an existing item for the same tool whose dates
// overlap [start, end], or nil
func (c *Cart) ConflictingItem(toolID int32, start, end time.Time) *CartItem {
	if c == nil {
		return nil
	}
	for i := range c.Items {
		it := &c.Items[i]
		if it.ToolID == toolID && it.Overlaps(start, end) {
			return it
		}
	}
	return nil
}
