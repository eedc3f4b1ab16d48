package db

import (
	"errors"
	"time"

	"github.com/nidolabs/nido/internal/models"
	"gorm.io/gorm"
)

type MembershipRepository struct {
	database *gorm.DB
}

func NewMembershipRepository(database *gorm.DB) *MembershipRepository {
	return &MembershipRepository{database: database}
}

// SharedProfileGrant pairs an active membership with the profile it grants.
type SharedProfileGrant struct {
	Profile    models.Profile
	Membership models.FamilyMembership
}

func (repo *MembershipRepository) ListSharedGrants(userID uint) ([]SharedProfileGrant, error) {
	memberships := make([]models.FamilyMembership, 0)
	if err := repo.database.
		Where("user_id = ? AND status = ? AND role IN ?", userID, models.MembershipActive,
			[]string{models.RoleOwner, models.RoleCaregiver, models.RoleViewer}).
		Order("joined_at ASC, id ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	grants := make([]SharedProfileGrant, 0, len(memberships))
	for _, membership := range memberships {
		var profile models.Profile
		if err := repo.database.First(&profile, membership.ProfileID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		grants = append(grants, SharedProfileGrant{Profile: profile, Membership: membership})
	}
	return grants, nil
}

func (repo *MembershipRepository) FindActive(profileID uint, userID uint) (models.FamilyMembership, bool, error) {
	var membership models.FamilyMembership
	result := repo.database.
		Where("profile_id = ? AND user_id = ? AND status = ?", profileID, userID, models.MembershipActive).
		Limit(1).
		Find(&membership)
	if result.Error != nil {
		return models.FamilyMembership{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.FamilyMembership{}, false, nil
	}
	return membership, true, nil
}

// FindByProfileAndUser returns the pair's membership row regardless of
// status; removal keeps the row, so re-invitations must find it.
func (repo *MembershipRepository) FindByProfileAndUser(profileID uint, userID uint) (models.FamilyMembership, bool, error) {
	var membership models.FamilyMembership
	result := repo.database.
		Where("profile_id = ? AND user_id = ?", profileID, userID).
		Limit(1).
		Find(&membership)
	if result.Error != nil {
		return models.FamilyMembership{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.FamilyMembership{}, false, nil
	}
	return membership, true, nil
}

func (repo *MembershipRepository) ListByProfile(profileID uint) ([]models.FamilyMembership, error) {
	memberships := make([]models.FamilyMembership, 0)
	if err := repo.database.
		Where("profile_id = ? AND status <> ?", profileID, models.MembershipRemoved).
		Order("invited_at ASC, id ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (repo *MembershipRepository) Create(membership *models.FamilyMembership) error {
	return repo.database.Create(membership).Error
}

func (repo *MembershipRepository) UpdateByID(membershipID uint, updates map[string]any) error {
	return repo.database.Model(&models.FamilyMembership{}).Where("id = ?", membershipID).Updates(updates).Error
}

func (repo *MembershipRepository) FindByID(membershipID uint) (models.FamilyMembership, error) {
	var membership models.FamilyMembership
	if err := repo.database.First(&membership, membershipID).Error; err != nil {
		return models.FamilyMembership{}, err
	}
	return membership, nil
}

func (repo *MembershipRepository) MarkRemoved(membershipID uint) error {
	return repo.database.Model(&models.FamilyMembership{}).
		Where("id = ?", membershipID).
		Update("status", models.MembershipRemoved).Error
}

func (repo *MembershipRepository) Activate(membershipID uint, joinedAt time.Time) error {
	return repo.database.Model(&models.FamilyMembership{}).
		Where("id = ?", membershipID).
		Updates(map[string]any{
			"status":    models.MembershipActive,
			"joined_at": joinedAt,
		}).Error
}

func (repo *MembershipRepository) DeleteByProfile(profileID uint) error {
	return repo.database.Where("profile_id = ?", profileID).Delete(&models.FamilyMembership{}).Error
}
