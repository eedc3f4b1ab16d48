package services

import (
	"errors"
	"time"

	"github.com/nidolabs/nido/internal/models"
)

var ErrInvalidPlanTier = errors.New("invalid plan tier")

type SubscriptionUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdatePlanTier(userID uint, planTier string, expiresAt *time.Time) error
}

// SubscriptionService records the plan tier a checkout flow settled on.
// Payment itself happens outside this service; it only stores the outcome
// and answers tier questions for the quota gate.
type SubscriptionService struct {
	users SubscriptionUserRepository
}

func NewSubscriptionService(users SubscriptionUserRepository) *SubscriptionService {
	return &SubscriptionService{users: users}
}

type PlanStatus struct {
	Tier      string     `json:"tier"`
	Effective string     `json:"effective_tier"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (service *SubscriptionService) Status(userID uint) (PlanStatus, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return PlanStatus{}, err
	}
	return PlanStatus{
		Tier:      user.PlanTier,
		Effective: user.EffectivePlanTier(time.Now()),
		ExpiresAt: user.PlanExpiresAt,
	}, nil
}

func (service *SubscriptionService) SetPlan(userID uint, tier string, expiresAt *time.Time) error {
	if tier != models.PlanTierBasic && tier != models.PlanTierPremium {
		return ErrInvalidPlanTier
	}
	if tier == models.PlanTierBasic {
		expiresAt = nil
	}
	return service.users.UpdatePlanTier(userID, tier, expiresAt)
}
