package services

import (
	"errors"
	"strings"
	"time"

	"github.com/nidolabs/nido/internal/models"
)

var (
	ErrInvalidActivityKind  = errors.New("invalid activity kind")
	ErrInvalidActivityRange = errors.New("activity end precedes start")
	ErrActivityNotFound     = errors.New("activity record not found")
)

type ActivityRepository interface {
	FindByID(recordID uint) (models.ActivityRecord, error)
	ListByProfile(profileID uint, limit int) ([]models.ActivityRecord, error)
	ListByProfileRange(profileID uint, from time.Time, to time.Time) ([]models.ActivityRecord, error)
	Create(record *models.ActivityRecord) error
	Save(record *models.ActivityRecord) error
	DeleteByID(recordID uint) error
}

type ActivityInput struct {
	Kind      string
	StartedAt time.Time
	EndedAt   *time.Time
	Details   models.ActivityDetails
	Notes     string
}

type ActivityService struct {
	activities ActivityRepository
}

func NewActivityService(activities ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

func normalizeActivityInput(input ActivityInput) (ActivityInput, error) {
	input.Kind = strings.ToLower(strings.TrimSpace(input.Kind))
	switch input.Kind {
	case models.ActivitySleep, models.ActivityFeeding, models.ActivityDiaper:
	default:
		return ActivityInput{}, ErrInvalidActivityKind
	}
	if input.EndedAt != nil && input.EndedAt.Before(input.StartedAt) {
		return ActivityInput{}, ErrInvalidActivityRange
	}
	input.Notes = strings.TrimSpace(input.Notes)
	return input, nil
}

func (service *ActivityService) Record(profileID uint, recordedBy uint, input ActivityInput) (models.ActivityRecord, error) {
	input, err := normalizeActivityInput(input)
	if err != nil {
		return models.ActivityRecord{}, err
	}

	record := models.ActivityRecord{
		ProfileID:  profileID,
		RecordedBy: recordedBy,
		Kind:       input.Kind,
		StartedAt:  input.StartedAt,
		EndedAt:    input.EndedAt,
		Details:    input.Details,
		Notes:      input.Notes,
	}
	if err := service.activities.Create(&record); err != nil {
		return models.ActivityRecord{}, err
	}
	return record, nil
}

// Update rewrites a record in place. The record must belong to the given
// profile; cross-profile ids are treated as not found.
func (service *ActivityService) Update(profileID uint, recordID uint, input ActivityInput) (models.ActivityRecord, error) {
	record, err := service.activities.FindByID(recordID)
	if err != nil || record.ProfileID != profileID {
		return models.ActivityRecord{}, ErrActivityNotFound
	}

	input, err = normalizeActivityInput(input)
	if err != nil {
		return models.ActivityRecord{}, err
	}

	record.Kind = input.Kind
	record.StartedAt = input.StartedAt
	record.EndedAt = input.EndedAt
	record.Details = input.Details
	record.Notes = input.Notes
	if err := service.activities.Save(&record); err != nil {
		return models.ActivityRecord{}, err
	}
	return record, nil
}

func (service *ActivityService) Delete(profileID uint, recordID uint) error {
	record, err := service.activities.FindByID(recordID)
	if err != nil || record.ProfileID != profileID {
		return ErrActivityNotFound
	}
	return service.activities.DeleteByID(recordID)
}

func (service *ActivityService) List(profileID uint, limit int) ([]models.ActivityRecord, error) {
	return service.activities.ListByProfile(profileID, limit)
}

func (service *ActivityService) ListRange(profileID uint, from time.Time, to time.Time) ([]models.ActivityRecord, error) {
	return service.activities.ListByProfileRange(profileID, from, to)
}
