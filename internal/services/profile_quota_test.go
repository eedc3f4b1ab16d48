package services

import (
	"errors"
	"testing"
	"time"

	"github.com/nidolabs/nido/internal/models"
)

func TestCheckProfileQuota(t *testing.T) {
	tests := []struct {
		name       string
		tier       string
		ownedCount int64
		wantErr    bool
	}{
		{name: "basic with no profiles", tier: models.PlanTierBasic, ownedCount: 0, wantErr: false},
		{name: "basic at the limit", tier: models.PlanTierBasic, ownedCount: 1, wantErr: true},
		{name: "basic over the limit", tier: models.PlanTierBasic, ownedCount: 3, wantErr: true},
		{name: "premium with no profiles", tier: models.PlanTierPremium, ownedCount: 0, wantErr: false},
		{name: "premium with many profiles", tier: models.PlanTierPremium, ownedCount: 12, wantErr: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := CheckProfileQuota(test.tier, test.ownedCount)
			if test.wantErr && !errors.Is(err, ErrProfileQuotaExceeded) {
				t.Fatalf("expected ErrProfileQuotaExceeded, got %v", err)
			}
			if !test.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestExpiredPremiumCountsAsBasic(t *testing.T) {
	now := time.Now()
	expired := now.Add(-time.Hour)
	user := models.User{PlanTier: models.PlanTierPremium, PlanExpiresAt: &expired}

	if tier := user.EffectivePlanTier(now); tier != models.PlanTierBasic {
		t.Fatalf("expected expired premium to resolve to basic, got %s", tier)
	}
	if err := CheckProfileQuota(user.EffectivePlanTier(now), 1); !errors.Is(err, ErrProfileQuotaExceeded) {
		t.Fatalf("expected quota error for expired premium, got %v", err)
	}
}

func TestUnexpiredPremiumStaysPremium(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	user := models.User{PlanTier: models.PlanTierPremium, PlanExpiresAt: &future}

	if tier := user.EffectivePlanTier(now); tier != models.PlanTierPremium {
		t.Fatalf("expected premium, got %s", tier)
	}
	if err := CheckProfileQuota(user.EffectivePlanTier(now), 5); err != nil {
		t.Fatalf("unexpected quota error: %v", err)
	}
}
