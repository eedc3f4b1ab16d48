package services

import (
	"errors"

	"github.com/nidolabs/nido/internal/models"
)

// ErrProfileQuotaExceeded is returned when a basic-tier user already owns
// a profile and tries to create another.
var ErrProfileQuotaExceeded = errors.New("profile quota exceeded")

// The basic tier allows exactly one owned profile; premium is unlimited.
const basicTierOwnedProfileLimit = 1

// CheckProfileQuota gates profile creation on the caller's effective plan
// tier. The very first owned profile is always permitted: a zero owned
// count never blocks, whatever the tier.
func CheckProfileQuota(effectiveTier string, ownedCount int64) error {
	if ownedCount == 0 {
		return nil
	}
	if effectiveTier == models.PlanTierPremium {
		return nil
	}
	if ownedCount >= basicTierOwnedProfileLimit {
		return ErrProfileQuotaExceeded
	}
	return nil
}
