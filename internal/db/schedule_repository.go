package db

import (
	"github.com/nidolabs/nido/internal/models"
	"gorm.io/gorm"
)

type ScheduleRepository struct {
	database *gorm.DB
}

func NewScheduleRepository(database *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{database: database}
}

func (repo *ScheduleRepository) FindByID(scheduleID uint) (models.CareSchedule, error) {
	var schedule models.CareSchedule
	if err := repo.database.First(&schedule, scheduleID).Error; err != nil {
		return models.CareSchedule{}, err
	}
	return schedule, nil
}

func (repo *ScheduleRepository) ListByProfile(profileID uint) ([]models.CareSchedule, error) {
	schedules := make([]models.CareSchedule, 0)
	if err := repo.database.
		Where("profile_id = ?", profileID).
		Order("time_of_day ASC, id ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (repo *ScheduleRepository) Create(schedule *models.CareSchedule) error {
	return repo.database.Create(schedule).Error
}

func (repo *ScheduleRepository) Save(schedule *models.CareSchedule) error {
	return repo.database.Save(schedule).Error
}

func (repo *ScheduleRepository) DeleteByID(scheduleID uint) error {
	return repo.database.Delete(&models.CareSchedule{}, scheduleID).Error
}

func (repo *ScheduleRepository) DeleteByProfile(profileID uint) error {
	return repo.database.Where("profile_id = ?", profileID).Delete(&models.CareSchedule{}).Error
}
