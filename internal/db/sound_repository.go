package db

import (
	"github.com/nidolabs/nido/internal/models"
	"gorm.io/gorm"
)

type SoundRepository struct {
	database *gorm.DB
}

func NewSoundRepository(database *gorm.DB) *SoundRepository {
	return &SoundRepository{database: database}
}

func (repo *SoundRepository) ListPresets() ([]models.SoundPreset, error) {
	presets := make([]models.SoundPreset, 0)
	if err := repo.database.Order("id ASC").Find(&presets).Error; err != nil {
		return nil, err
	}
	return presets, nil
}

func (repo *SoundRepository) FindPresetByID(presetID uint) (models.SoundPreset, error) {
	var preset models.SoundPreset
	if err := repo.database.First(&preset, presetID).Error; err != nil {
		return models.SoundPreset{}, err
	}
	return preset, nil
}

func (repo *SoundRepository) ListFavoritePresetIDs(userID uint) ([]uint, error) {
	favorites := make([]models.SoundFavorite, 0)
	if err := repo.database.Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(favorites))
	for _, favorite := range favorites {
		ids = append(ids, favorite.PresetID)
	}
	return ids, nil
}

func (repo *SoundRepository) AddFavorite(userID uint, presetID uint) error {
	favorite := models.SoundFavorite{UserID: userID, PresetID: presetID}
	return repo.database.Where("user_id = ? AND preset_id = ?", userID, presetID).
		FirstOrCreate(&favorite).Error
}

func (repo *SoundRepository) RemoveFavorite(userID uint, presetID uint) error {
	return repo.database.
		Where("user_id = ? AND preset_id = ?", userID, presetID).
		Delete(&models.SoundFavorite{}).Error
}
