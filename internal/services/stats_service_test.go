package services

import (
	"testing"
	"time"

	"github.com/nidolabs/nido/internal/models"
)

func timePtr(value time.Time) *time.Time { return &value }

func TestSummarizeDayFoldsRecordsByKind(t *testing.T) {
	dayStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	records := []models.ActivityRecord{
		{Kind: models.ActivitySleep, StartedAt: dayStart.Add(1 * time.Hour), EndedAt: timePtr(dayStart.Add(3 * time.Hour))},
		{Kind: models.ActivitySleep, StartedAt: dayStart.Add(13 * time.Hour), EndedAt: timePtr(dayStart.Add(14 * time.Hour))},
		{Kind: models.ActivitySleep, StartedAt: dayStart.Add(20 * time.Hour)}, // still open
		{Kind: models.ActivityFeeding, StartedAt: dayStart.Add(6 * time.Hour), Details: models.ActivityDetails{FeedingMethod: models.FeedingBottle, AmountMl: 120}},
		{Kind: models.ActivityFeeding, StartedAt: dayStart.Add(10 * time.Hour), Details: models.ActivityDetails{FeedingMethod: models.FeedingBreast}},
		{Kind: models.ActivityDiaper, StartedAt: dayStart.Add(7 * time.Hour), Details: models.ActivityDetails{DiaperCondition: models.DiaperWet}},
	}

	summary := SummarizeDay(dayStart, records)

	if summary.Day != "2026-09-01" {
		t.Fatalf("day key = %q", summary.Day)
	}
	if summary.SleepSessions != 3 {
		t.Fatalf("sleep sessions = %d, want 3", summary.SleepSessions)
	}
	if summary.SleepMinutes != 180 {
		t.Fatalf("sleep minutes = %d, want 180 (open session counts no minutes)", summary.SleepMinutes)
	}
	if summary.Feedings != 2 || summary.FeedingAmounts != 120 {
		t.Fatalf("feedings = %d amount = %v", summary.Feedings, summary.FeedingAmounts)
	}
	if summary.DiaperChanges != 1 {
		t.Fatalf("diaper changes = %d, want 1", summary.DiaperChanges)
	}
}

func TestSessionStatsCacheInvalidatesOnProfileChange(t *testing.T) {
	bus := NewProfileEventBus()
	cache := NewSessionStatsCache(bus)

	cache.Prime(1)
	cache.Put(1, DailySummary{Day: "2026-09-01", Feedings: 4})

	if _, hit := cache.Get(1, "2026-09-01"); !hit {
		t.Fatal("expected cache hit before the switch")
	}

	bus.Publish(2)

	if _, hit := cache.Get(1, "2026-09-01"); hit {
		t.Fatal("old profile's summaries must be dropped after a switch")
	}
	if _, hit := cache.Get(2, "2026-09-01"); hit {
		t.Fatal("new profile starts with an empty cache")
	}
}

func TestSessionStatsCacheRejectsStalePut(t *testing.T) {
	bus := NewProfileEventBus()
	cache := NewSessionStatsCache(bus)

	cache.Prime(1)
	// A switch lands between compute and store.
	bus.Publish(2)
	cache.Put(1, DailySummary{Day: "2026-09-01", Feedings: 4})

	if _, hit := cache.Get(2, "2026-09-01"); hit {
		t.Fatal("a stale put must never surface under the new profile")
	}
}
