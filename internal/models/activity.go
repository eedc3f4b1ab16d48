package models

import "time"

const (
	ActivitySleep   = "sleep"
	ActivityFeeding = "feeding"
	ActivityDiaper  = "diaper"
)

const (
	FeedingBreast = "breast"
	FeedingBottle = "bottle"
	FeedingSolids = "solids"
)

const (
	DiaperWet   = "wet"
	DiaperDirty = "dirty"
	DiaperMixed = "mixed"
	DiaperDry   = "dry"
)

// ActivityRecord is one tracked care event (a sleep session, a feed or a
// diaper change) for a profile. Kind-specific fields live in Details.
type ActivityRecord struct {
	ID         uint      `gorm:"primaryKey"`
	ProfileID  uint      `gorm:"not null;index:idx_activity_profile_started"`
	RecordedBy uint      `gorm:"not null"`
	Kind       string    `gorm:"not null"`
	StartedAt  time.Time `gorm:"not null;index:idx_activity_profile_started"`
	EndedAt    *time.Time
	Details    ActivityDetails `gorm:"serializer:json"`
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ActivityDetails struct {
	FeedingMethod   string  `json:"feeding_method,omitempty"`
	AmountMl        float64 `json:"amount_ml,omitempty"`
	BreastSide      string  `json:"breast_side,omitempty"`
	DiaperCondition string  `json:"diaper_condition,omitempty"`
}

// Duration reports the elapsed time of a closed record, zero while open.
func (record *ActivityRecord) Duration() time.Duration {
	if record.EndedAt == nil {
		return 0
	}
	return record.EndedAt.Sub(record.StartedAt)
}
