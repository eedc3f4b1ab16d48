package db

import (
	"github.com/nidolabs/nido/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	database *gorm.DB
}

func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{database: database}
}

func (repo *MessageRepository) ListByProfile(profileID uint, limit int) ([]models.FamilyMessage, error) {
	query := repo.database.
		Where("profile_id = ?", profileID).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	messages := make([]models.FamilyMessage, 0)
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (repo *MessageRepository) Create(message *models.FamilyMessage) error {
	return repo.database.Create(message).Error
}

func (repo *MessageRepository) DeleteByProfile(profileID uint) error {
	return repo.database.Where("profile_id = ?", profileID).Delete(&models.FamilyMessage{}).Error
}
