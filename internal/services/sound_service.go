package services

import (
	"errors"

	"github.com/nidolabs/nido/internal/models"
)

var ErrSoundPresetNotFound = errors.New("sound preset not found")

type SoundRepository interface {
	ListPresets() ([]models.SoundPreset, error)
	FindPresetByID(presetID uint) (models.SoundPreset, error)
	ListFavoritePresetIDs(userID uint) ([]uint, error)
	AddFavorite(userID uint, presetID uint) error
	RemoveFavorite(userID uint, presetID uint) error
}

// PresetWithFavorite decorates a catalog entry with the viewer's favorite
// flag.
type PresetWithFavorite struct {
	models.SoundPreset
	Favorite bool `json:"favorite"`
}

type SoundService struct {
	sounds SoundRepository
}

func NewSoundService(sounds SoundRepository) *SoundService {
	return &SoundService{sounds: sounds}
}

func (service *SoundService) Catalog(userID uint) ([]PresetWithFavorite, error) {
	presets, err := service.sounds.ListPresets()
	if err != nil {
		return nil, err
	}
	favoriteIDs, err := service.sounds.ListFavoritePresetIDs(userID)
	if err != nil {
		return nil, err
	}

	favorites := make(map[uint]struct{}, len(favoriteIDs))
	for _, id := range favoriteIDs {
		favorites[id] = struct{}{}
	}

	catalog := make([]PresetWithFavorite, 0, len(presets))
	for _, preset := range presets {
		_, favorite := favorites[preset.ID]
		catalog = append(catalog, PresetWithFavorite{SoundPreset: preset, Favorite: favorite})
	}
	return catalog, nil
}

func (service *SoundService) SetFavorite(userID uint, presetID uint, favorite bool) error {
	if _, err := service.sounds.FindPresetByID(presetID); err != nil {
		return ErrSoundPresetNotFound
	}
	if favorite {
		return service.sounds.AddFavorite(userID, presetID)
	}
	return service.sounds.RemoveFavorite(userID, presetID)
}
