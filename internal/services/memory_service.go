package services

import (
	"errors"
	"strings"
	"time"

	"github.com/nidolabs/nido/internal/models"
	"github.com/nidolabs/nido/internal/security"
)

var (
	ErrMemoryTitleMissing = errors.New("memory title is required")
	ErrMemoryNotFound     = errors.New("memory entry not found")
)

type MemoryRepository interface {
	FindByID(entryID uint) (models.MemoryEntry, error)
	ListByProfile(profileID uint) ([]models.MemoryEntry, error)
	Create(entry *models.MemoryEntry) error
	DeleteByID(entryID uint) error
}

type MemoryService struct {
	memories MemoryRepository
}

func NewMemoryService(memories MemoryRepository) *MemoryService {
	return &MemoryService{memories: memories}
}

func (service *MemoryService) List(profileID uint) ([]models.MemoryEntry, error) {
	return service.memories.ListByProfile(profileID)
}

func (service *MemoryService) Create(profileID uint, createdBy uint, title string, photoKey string, takenAt time.Time, notes string) (models.MemoryEntry, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.MemoryEntry{}, ErrMemoryTitleMissing
	}
	if photoKey == "" {
		generated, err := security.NewPhotoKey()
		if err != nil {
			return models.MemoryEntry{}, err
		}
		photoKey = generated
	}

	entry := models.MemoryEntry{
		ProfileID: profileID,
		CreatedBy: createdBy,
		Title:     title,
		PhotoKey:  photoKey,
		TakenAt:   takenAt,
		Notes:     strings.TrimSpace(notes),
	}
	if err := service.memories.Create(&entry); err != nil {
		return models.MemoryEntry{}, err
	}
	return entry, nil
}

func (service *MemoryService) Delete(profileID uint, entryID uint) error {
	entry, err := service.memories.FindByID(entryID)
	if err != nil || entry.ProfileID != profileID {
		return ErrMemoryNotFound
	}
	return service.memories.DeleteByID(entryID)
}
