package services

import (
	"errors"
	"regexp"
	"strings"

	"github.com/nidolabs/nido/internal/models"
)

var (
	ErrInvalidScheduleTime = errors.New("invalid schedule time")
	ErrScheduleNotFound    = errors.New("schedule not found")
)

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type ScheduleRepository interface {
	FindByID(scheduleID uint) (models.CareSchedule, error)
	ListByProfile(profileID uint) ([]models.CareSchedule, error)
	Create(schedule *models.CareSchedule) error
	Save(schedule *models.CareSchedule) error
	DeleteByID(scheduleID uint) error
}

type ScheduleService struct {
	schedules ScheduleRepository
}

func NewScheduleService(schedules ScheduleRepository) *ScheduleService {
	return &ScheduleService{schedules: schedules}
}

func (service *ScheduleService) List(profileID uint) ([]models.CareSchedule, error) {
	return service.schedules.ListByProfile(profileID)
}

func (service *ScheduleService) Create(profileID uint, kind string, label string, timeOfDay string, weekdays []int) (models.CareSchedule, error) {
	timeOfDay = strings.TrimSpace(timeOfDay)
	if !timeOfDayPattern.MatchString(timeOfDay) {
		return models.CareSchedule{}, ErrInvalidScheduleTime
	}
	if weekdays == nil {
		weekdays = []int{}
	}

	schedule := models.CareSchedule{
		ProfileID: profileID,
		Kind:      strings.TrimSpace(kind),
		Label:     strings.TrimSpace(label),
		TimeOfDay: timeOfDay,
		Weekdays:  weekdays,
		Enabled:   true,
	}
	if err := service.schedules.Create(&schedule); err != nil {
		return models.CareSchedule{}, err
	}
	return schedule, nil
}

func (service *ScheduleService) SetEnabled(profileID uint, scheduleID uint, enabled bool) error {
	schedule, err := service.schedules.FindByID(scheduleID)
	if err != nil || schedule.ProfileID != profileID {
		return ErrScheduleNotFound
	}
	schedule.Enabled = enabled
	return service.schedules.Save(&schedule)
}

func (service *ScheduleService) Delete(profileID uint, scheduleID uint) error {
	schedule, err := service.schedules.FindByID(scheduleID)
	if err != nil || schedule.ProfileID != profileID {
		return ErrScheduleNotFound
	}
	return service.schedules.DeleteByID(scheduleID)
}
