package db

import (
	"time"

	"github.com/nidolabs/nido/internal/models"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	database *gorm.DB
}

func NewActivityRepository(database *gorm.DB) *ActivityRepository {
	return &ActivityRepository{database: database}
}

func (repo *ActivityRepository) FindByID(recordID uint) (models.ActivityRecord, error) {
	var record models.ActivityRecord
	if err := repo.database.First(&record, recordID).Error; err != nil {
		return models.ActivityRecord{}, err
	}
	return record, nil
}

func (repo *ActivityRepository) ListByProfile(profileID uint, limit int) ([]models.ActivityRecord, error) {
	query := repo.database.
		Where("profile_id = ?", profileID).
		Order("started_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	records := make([]models.ActivityRecord, 0)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *ActivityRepository) ListByProfileRange(profileID uint, from time.Time, to time.Time) ([]models.ActivityRecord, error) {
	records := make([]models.ActivityRecord, 0)
	if err := repo.database.
		Where("profile_id = ? AND started_at >= ? AND started_at < ?", profileID, from, to).
		Order("started_at ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *ActivityRepository) CountByProfile(profileID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.ActivityRecord{}).
		Where("profile_id = ?", profileID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *ActivityRepository) Create(record *models.ActivityRecord) error {
	return repo.database.Create(record).Error
}

func (repo *ActivityRepository) Save(record *models.ActivityRecord) error {
	return repo.database.Save(record).Error
}

func (repo *ActivityRepository) DeleteByID(recordID uint) error {
	return repo.database.Delete(&models.ActivityRecord{}, recordID).Error
}

func (repo *ActivityRepository) DeleteByProfile(profileID uint) error {
	return repo.database.Where("profile_id = ?", profileID).Delete(&models.ActivityRecord{}).Error
}
