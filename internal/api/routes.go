package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/forgot-password", handler.ForgotPassword)
	auth.Post("/reset-password", handler.ResetPassword)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)
	auth.Post("/display-name", handler.AuthRequired, handler.UpdateDisplayName)

	profiles := api.Group("/profiles", handler.AuthRequired)
	profiles.Get("", handler.GetProfiles)
	profiles.Post("", handler.CreateProfile)
	profiles.Post("/:profileID/switch", handler.SwitchProfile)
	profiles.Patch("/:profileID", handler.UpdateProfile)
	profiles.Delete("/:profileID", handler.DeleteProfile)

	profiles.Get("/:profileID/members", handler.GetFamilyMembers)
	profiles.Patch("/:profileID/members/:memberID", handler.UpdateFamilyMember)
	profiles.Delete("/:profileID/members/:memberID", handler.RemoveFamilyMember)
	profiles.Post("/:profileID/leave", handler.LeaveFamily)

	profiles.Post("/:profileID/invitations", handler.CreateInvitation)
	profiles.Get("/:profileID/invitations", handler.GetPendingInvitations)
	profiles.Delete("/:profileID/invitations/:invitationID", handler.CancelInvitation)

	profiles.Get("/:profileID/activities", handler.GetActivities)
	profiles.Post("/:profileID/activities", handler.CreateActivity)
	profiles.Put("/:profileID/activities/:activityID", handler.UpdateActivity)
	profiles.Delete("/:profileID/activities/:activityID", handler.DeleteActivity)

	profiles.Get("/:profileID/stats/daily", handler.GetDailySummary)

	profiles.Get("/:profileID/memories", handler.GetMemories)
	profiles.Post("/:profileID/memories", handler.CreateMemory)
	profiles.Delete("/:profileID/memories/:memoryID", handler.DeleteMemory)

	profiles.Get("/:profileID/schedules", handler.GetSchedules)
	profiles.Post("/:profileID/schedules", handler.CreateSchedule)
	profiles.Patch("/:profileID/schedules/:scheduleID", handler.UpdateSchedule)
	profiles.Delete("/:profileID/schedules/:scheduleID", handler.DeleteSchedule)

	profiles.Get("/:profileID/messages", handler.GetMessages)
	profiles.Post("/:profileID/messages", handler.PostMessage)

	invitations := api.Group("/invitations", handler.AuthRequired)
	invitations.Get("/:token", handler.LookupInvitation)
	invitations.Post("/:token/accept", handler.AcceptInvitation)
	invitations.Post("/:token/decline", handler.DeclineInvitation)

	sounds := api.Group("/sounds", handler.AuthRequired)
	sounds.Get("", handler.GetSoundCatalog)
	sounds.Put("/:presetID/favorite", handler.SetSoundFavorite)

	subscription := api.Group("/subscription", handler.AuthRequired)
	subscription.Get("", handler.GetSubscription)
	subscription.Post("", handler.UpdateSubscription)
}
