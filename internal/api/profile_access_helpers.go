package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nidolabs/nido/internal/models"
	"github.com/nidolabs/nido/internal/services"
	"gorm.io/gorm"
)

// profileAccess bundles a profile with the viewer's resolved role and
// capabilities. Resolution happens on every request; nothing is cached, so
// a permission change takes effect on the next call.
type profileAccess struct {
	profile      models.Profile
	membership   *models.FamilyMembership
	role         string
	capabilities services.Capabilities
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || value == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(value), nil
}

func (handler *Handler) resolveProfileAccess(profileID uint, viewer *models.User) (profileAccess, error) {
	profile, err := handler.repositories.Profiles.FindByID(profileID)
	if err != nil {
		return profileAccess{}, err
	}

	var membership *models.FamilyMembership
	if profile.OwnerID != viewer.ID {
		found, ok, err := handler.repositories.Memberships.FindActive(profileID, viewer.ID)
		if err != nil {
			return profileAccess{}, err
		}
		if ok {
			membership = &found
		}
	}

	role, capabilities := services.ResolveCapabilities(profile, viewer.ID, membership)
	return profileAccess{
		profile:      profile,
		membership:   membership,
		role:         role,
		capabilities: capabilities,
	}, nil
}

// requireProfileCapability resolves access for the :profileID route param
// and rejects the request unless the named capability is granted. The
// denial message is specific to the capability that was missing.
func (handler *Handler) requireProfileCapability(c *fiber.Ctx, capability string) (profileAccess, error) {
	viewer, ok := currentUser(c)
	if !ok {
		return profileAccess{}, apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	profileID, err := parseUintParam(c, "profileID")
	if err != nil {
		return profileAccess{}, apiError(c, fiber.StatusBadRequest, "invalid profile id")
	}

	access, err := handler.resolveProfileAccess(profileID, viewer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return profileAccess{}, apiError(c, fiber.StatusNotFound, "profile not found")
		}
		return profileAccess{}, apiError(c, fiber.StatusInternalServerError, "failed to resolve access")
	}

	if !hasCapability(access.capabilities, capability) {
		return profileAccess{}, apiError(c, fiber.StatusForbidden, services.CapabilityDenialMessage(capability))
	}
	return access, nil
}

func hasCapability(capabilities services.Capabilities, capability string) bool {
	switch capability {
	case "view":
		return capabilities.CanView
	case "edit":
		return capabilities.CanEdit
	case "delete":
		return capabilities.CanDelete
	case "invite":
		return capabilities.CanInvite
	}
	return false
}
