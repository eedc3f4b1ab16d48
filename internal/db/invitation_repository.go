package db

import (
	"github.com/nidolabs/nido/internal/models"
	"gorm.io/gorm"
)

type InvitationRepository struct {
	database *gorm.DB
}

func NewInvitationRepository(database *gorm.DB) *InvitationRepository {
	return &InvitationRepository{database: database}
}

func (repo *InvitationRepository) FindByToken(token string) (models.FamilyInvitation, bool, error) {
	var invitation models.FamilyInvitation
	result := repo.database.Where("token = ?", token).Limit(1).Find(&invitation)
	if result.Error != nil {
		return models.FamilyInvitation{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.FamilyInvitation{}, false, nil
	}
	return invitation, true, nil
}

func (repo *InvitationRepository) FindByID(invitationID uint) (models.FamilyInvitation, error) {
	var invitation models.FamilyInvitation
	if err := repo.database.First(&invitation, invitationID).Error; err != nil {
		return models.FamilyInvitation{}, err
	}
	return invitation, nil
}

func (repo *InvitationRepository) ListPendingByProfile(profileID uint) ([]models.FamilyInvitation, error) {
	invitations := make([]models.FamilyInvitation, 0)
	if err := repo.database.
		Where("profile_id = ? AND status = ?", profileID, models.InvitationPending).
		Order("created_at ASC, id ASC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

func (repo *InvitationRepository) Create(invitation *models.FamilyInvitation) error {
	return repo.database.Create(invitation).Error
}

func (repo *InvitationRepository) UpdateStatus(invitationID uint, status string) error {
	return repo.database.Model(&models.FamilyInvitation{}).
		Where("id = ?", invitationID).
		Update("status", status).Error
}

func (repo *InvitationRepository) DeleteByProfile(profileID uint) error {
	return repo.database.Where("profile_id = ?", profileID).Delete(&models.FamilyInvitation{}).Error
}
