package db

import (
	"github.com/nidolabs/nido/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindByID(profileID uint) (models.Profile, error) {
	var profile models.Profile
	if err := repo.database.First(&profile, profileID).Error; err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

func (repo *ProfileRepository) ListOwned(userID uint) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0)
	if err := repo.database.
		Where("owner_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (repo *ProfileRepository) CountOwned(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Profile{}).
		Where("owner_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *ProfileRepository) Create(profile *models.Profile) error {
	return repo.database.Create(profile).Error
}

func (repo *ProfileRepository) UpdateByID(profileID uint, updates map[string]any) error {
	return repo.database.Model(&models.Profile{}).Where("id = ?", profileID).Updates(updates).Error
}

// SetActiveProfile clears the previous active flag among the user's owned
// profiles and sets the new one in a single transaction, keeping at most
// one owned profile active per user.
func (repo *ProfileRepository) SetActiveProfile(profileID uint, userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Profile{}).
			Where("owner_id = ? AND is_active = ?", userID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		result := tx.Model(&models.Profile{}).
			Where("id = ? AND owner_id = ?", profileID, userID).
			Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteOwnedBy removes the profile row only when the given user owns it,
// a second authorization check under the service-level owner gate.
func (repo *ProfileRepository) DeleteOwnedBy(profileID uint, ownerID uint) error {
	result := repo.database.
		Where("id = ? AND owner_id = ?", profileID, ownerID).
		Delete(&models.Profile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
