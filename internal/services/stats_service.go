package services

import (
	"sync"
	"time"

	"github.com/nidolabs/nido/internal/models"
)

// DailySummary aggregates one day of care activity for a profile.
type DailySummary struct {
	Day            string  `json:"day"`
	SleepSessions  int     `json:"sleep_sessions"`
	SleepMinutes   int     `json:"sleep_minutes"`
	Feedings       int     `json:"feedings"`
	FeedingAmounts float64 `json:"feeding_amount_ml"`
	DiaperChanges  int     `json:"diaper_changes"`
}

type StatsService struct {
	activities ActivityRepository
}

func NewStatsService(activities ActivityRepository) *StatsService {
	return &StatsService{activities: activities}
}

// DailySummary computes the summary for the day containing the given time,
// using local day boundaries.
func (service *StatsService) DailySummary(profileID uint, day time.Time, location *time.Location) (DailySummary, error) {
	if location == nil {
		location = time.Local
	}
	local := day.In(location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	records, err := service.activities.ListByProfileRange(profileID, dayStart, dayEnd)
	if err != nil {
		return DailySummary{}, err
	}
	return SummarizeDay(dayStart, records), nil
}

// SummarizeDay folds activity records into one DailySummary. Open sleep
// sessions contribute a session but no minutes.
func SummarizeDay(dayStart time.Time, records []models.ActivityRecord) DailySummary {
	summary := DailySummary{Day: dayStart.Format("2006-01-02")}
	for _, record := range records {
		switch record.Kind {
		case models.ActivitySleep:
			summary.SleepSessions++
			summary.SleepMinutes += int(record.Duration() / time.Minute)
		case models.ActivityFeeding:
			summary.Feedings++
			summary.FeedingAmounts += record.Details.AmountMl
		case models.ActivityDiaper:
			summary.DiaperChanges++
		}
	}
	return summary
}

// SessionStatsCache keeps the last computed summaries for one profile
// session. It subscribes to the session's profile-change bus so a switch
// immediately drops the stale profile's numbers instead of showing them
// against the new profile.
type SessionStatsCache struct {
	mu        sync.Mutex
	profileID uint
	summaries map[string]DailySummary
}

func NewSessionStatsCache(bus *ProfileEventBus) *SessionStatsCache {
	cache := &SessionStatsCache{summaries: make(map[string]DailySummary)}
	bus.Subscribe(cache.onProfileChange)
	return cache
}

func (cache *SessionStatsCache) onProfileChange(profileID uint) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.profileID = profileID
	cache.summaries = make(map[string]DailySummary)
}

func (cache *SessionStatsCache) Get(profileID uint, day string) (DailySummary, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.profileID != profileID {
		return DailySummary{}, false
	}
	summary, ok := cache.summaries[day]
	return summary, ok
}

func (cache *SessionStatsCache) Put(profileID uint, summary DailySummary) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.profileID != profileID {
		// A switch landed between compute and store; drop the stale value.
		return
	}
	cache.summaries[summary.Day] = summary
}

// Prime points the cache at a profile without clearing on mismatch.
func (cache *SessionStatsCache) Prime(profileID uint) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.profileID != profileID {
		cache.profileID = profileID
		cache.summaries = make(map[string]DailySummary)
	}
}
