package db

import (
	"github.com/nidolabs/nido/internal/models"
	"gorm.io/gorm"
)

type MemoryRepository struct {
	database *gorm.DB
}

func NewMemoryRepository(database *gorm.DB) *MemoryRepository {
	return &MemoryRepository{database: database}
}

func (repo *MemoryRepository) FindByID(entryID uint) (models.MemoryEntry, error) {
	var entry models.MemoryEntry
	if err := repo.database.First(&entry, entryID).Error; err != nil {
		return models.MemoryEntry{}, err
	}
	return entry, nil
}

func (repo *MemoryRepository) ListByProfile(profileID uint) ([]models.MemoryEntry, error) {
	entries := make([]models.MemoryEntry, 0)
	if err := repo.database.
		Where("profile_id = ?", profileID).
		Order("taken_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *MemoryRepository) Create(entry *models.MemoryEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *MemoryRepository) DeleteByID(entryID uint) error {
	return repo.database.Delete(&models.MemoryEntry{}, entryID).Error
}

func (repo *MemoryRepository) DeleteByProfile(profileID uint) error {
	return repo.database.Where("profile_id = ?", profileID).Delete(&models.MemoryEntry{}).Error
}
