package dto

import (
	"time"

	"gatekeeper/internal/entity"
)

type ProfileResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ProfileResponseFromEntity(profile *entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        profile.ID.String(),
		UserID:    profile.UserID.String(),
		Email:     profile.Email,
		Status:    string(profile.Status),
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

func ProfileResponsesFromEntities(profiles []entity.Profile) []ProfileResponse {
	responses := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, ProfileResponseFromEntity(&profiles[i]))
	}
	return responses
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// UpdateSettingsRequest is a partial patch: nil fields are left untouched.
type UpdateSettingsRequest struct {
	TelegramLink   *string `json:"telegram_link"`
	WhatsappNumber *string `json:"whatsapp_number"`
	ToolkitURL     *string `json:"toolkit_url"`
}

type SettingsResponse struct {
	TelegramLink    *string    `json:"telegram_link"`
	WhatsappNumber  *string    `json:"whatsapp_number"`
	ToolkitURL      *string    `json:"toolkit_url"`
	AppUpdateMode   bool       `json:"app_update_mode"`
	LastMessageSent *string    `json:"last_message_sent,omitempty"`
	MessageSentAt   *time.Time `json:"message_sent_at,omitempty"`
}

func SettingsResponseFromEntity(settings *entity.AdminSettings) SettingsResponse {
	if settings == nil {
		return SettingsResponse{}
	}
	return SettingsResponse{
		TelegramLink:    settings.TelegramLink,
		WhatsappNumber:  settings.WhatsappNumber,
		ToolkitURL:      settings.ToolkitURL,
		AppUpdateMode:   settings.AppUpdateMode,
		LastMessageSent: settings.LastMessageSent,
		MessageSentAt:   settings.MessageSentAt,
	}
}

type BroadcastRequest struct {
	Text string `json:"text" validate:"required"`
}

type MaintenanceResponse struct {
	AppUpdateMode bool `json:"app_update_mode"`
}
