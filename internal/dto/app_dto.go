package dto

import (
	"time"

	"gatekeeper/internal/entity"
	"gatekeeper/internal/service"
)

type StateResponse struct {
	State          string  `json:"state"`
	TelegramLink   *string `json:"telegram_link,omitempty"`
	WhatsappNumber *string `json:"whatsapp_number,omitempty"`
	ToolkitURL     *string `json:"toolkit_url,omitempty"`
}

type MessageResponse struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Type   string    `json:"type"`
	SentAt time.Time `json:"sent_at"`
}

func MessageResponseFromEntity(message *entity.BroadcastMessage) MessageResponse {
	return MessageResponse{
		ID:     message.ID.String(),
		Text:   message.Text,
		Type:   string(message.Type),
		SentAt: message.SentAt,
	}
}

func MessageResponsesFromEntities(messages []entity.BroadcastMessage) []MessageResponse {
	responses := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, MessageResponseFromEntity(&messages[i]))
	}
	return responses
}

func StateResponseFrom(snapshot service.StateSnapshot) StateResponse {
	response := StateResponse{State: snapshot.State.String()}
	if snapshot.Settings != nil {
		response.TelegramLink = snapshot.Settings.TelegramLink
		response.WhatsappNumber = snapshot.Settings.WhatsappNumber
	}
	if snapshot.ToolkitURL != nil {
		response.ToolkitURL = snapshot.ToolkitURL
	}
	return response
}
