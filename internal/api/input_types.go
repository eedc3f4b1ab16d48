package api

import "github.com/nidolabs/nido/internal/models"

type credentialsInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	DisplayName     string `json:"display_name" form:"display_name"`
	RememberMe      bool   `json:"remember_me" form:"remember_me"`
}

type forgotPasswordInput struct {
	Email string `json:"email" form:"email"`
}

type resetPasswordInput struct {
	Token           string `json:"token" form:"token"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type displayNameInput struct {
	DisplayName string `json:"display_name" form:"display_name"`
}

type profilePayload struct {
	Name      string `json:"name" form:"name"`
	BirthDate string `json:"birth_date" form:"birth_date"`
	PhotoKey  string `json:"photo_key" form:"photo_key"`
}

type invitationPayload struct {
	Email string `json:"email" form:"email"`
	Role  string `json:"role" form:"role"`
}

type memberUpdatePayload struct {
	Role      string `json:"role" form:"role"`
	CanEdit   *bool  `json:"can_edit"`
	CanDelete *bool  `json:"can_delete"`
	CanInvite *bool  `json:"can_invite"`
}

type activityPayload struct {
	Kind      string                 `json:"kind"`
	StartedAt string                 `json:"started_at"`
	EndedAt   string                 `json:"ended_at"`
	Details   models.ActivityDetails `json:"details"`
	Notes     string                 `json:"notes"`
}

type memoryPayload struct {
	Title    string `json:"title" form:"title"`
	PhotoKey string `json:"photo_key" form:"photo_key"`
	TakenAt  string `json:"taken_at" form:"taken_at"`
	Notes    string `json:"notes" form:"notes"`
}

type schedulePayload struct {
	Kind      string `json:"kind" form:"kind"`
	Label     string `json:"label" form:"label"`
	TimeOfDay string `json:"time_of_day" form:"time_of_day"`
	Weekdays  []int  `json:"weekdays"`
	Enabled   *bool  `json:"enabled"`
}

type messagePayload struct {
	Body string `json:"body" form:"body"`
}

type favoritePayload struct {
	Favorite bool `json:"favorite"`
}

type planPayload struct {
	Tier      string `json:"tier" form:"tier"`
	ExpiresAt string `json:"expires_at" form:"expires_at"`
}
