package domain

import "time"

type Category struct {
	ID   int32  `json:"category_id"`
	Name string `json:"name"`
}

// PricingTier is a duration bracket with its daily rate. A nil
// MaxDurationDays means the bracket has no upper bound.
type PricingTier struct {
	ID              int32   `json:"pricing_tier_id"`
	ToolID          int32   `json:"tool_id"`
	MinDurationDays int     `json:"min_duration_days"`
	MaxDurationDays *int    `json:"max_duration_days"`
	PricePerDay     float64 `json:"price_per_day"`
}

// Covers reports whether a rental of the given number of days falls in the tier
func (t PricingTier) Covers(days int) bool {
	if days < t.MinDurationDays {
		return false
	}
	return t.MaxDurationDays == nil || days <= *t.MaxDurationDays
}

type Tool struct {
	ID           int32
	CategoryID   int32
	CategoryName string
	Name         string
	Description  string
	ImageURL     string
	Stock        int
	PricingTiers []PricingTier // ordered by MinDurationDays ascending
}

// TierFor returns the first tier covering the duration, falling back to the
// first tier. It returns nil when the tool has no tiers.
func (t *Tool) TierFor(days int) *PricingTier {
	if len(t.PricingTiers) == 0 {
		return nil
	}
	for i := range t.PricingTiers {
		if t.PricingTiers[i].Covers(days) {
			return &t.PricingTiers[i]
		}
	}
	return &t.PricingTiers[0]
}

// BasePrice is the daily rate of the first tier, shown in the catalog
func (t *Tool) BasePrice() (float64, bool) {
	if len(t.PricingTiers) == 0 {
		return 0, false
	}
	return t.PricingTiers[0].PricePerDay, true
}

// ToolFilter narrows a catalog listing. A zero CategoryID means any category;
// the availability window applies only when both dates are set.
type ToolFilter struct {
	CategoryID int32
	StartDate  *time.Time
	EndDate    *time.Time
}

// HasPeriod reports whether the filter restricts to tools available in a window
func (f ToolFilter) HasPeriod() bool {
	return f.StartDate != nil && f.EndDate != nil
}
