package service

import (
	"context"
	"strings"
	"time"

	"gatekeeper/internal/entity"
	"gatekeeper/internal/repository"

	"github.com/google/uuid"
)

// MessagePublisher pushes a broadcast to connected sessions. Satisfied by
// feed.Hub.
type MessagePublisher interface {
	Publish(message entity.BroadcastMessage)
}

// AdminService is the moderation surface: approval decisions, the settings
// singleton, the maintenance flag and broadcasts. Route middleware enforces
// that only admins reach it.
type AdminService struct {
	profiles  repository.ProfileRepository
	settings  repository.SettingsRepository
	messages  repository.MessageRepository
	audit     repository.AuditLogRepository
	publisher MessagePublisher
	clock     Clock
}

func NewAdminService(
	profiles repository.ProfileRepository,
	settings repository.SettingsRepository,
	messages repository.MessageRepository,
	audit repository.AuditLogRepository,
	publisher MessagePublisher,
	clock Clock,
) *AdminService {
	return &AdminService{
		profiles:  profiles,
		settings:  settings,
		messages:  messages,
		audit:     audit,
		publisher: publisher,
		clock:     clock,
	}
}

func (s *AdminService) ListProfiles(ctx context.Context, limit, offset int) ([]entity.Profile, error) {
	return s.profiles.List(ctx, limit, offset)
}

// SetProfileStatus is idempotent and reversible: an admin may move a rejected
// account back to approved.
func (s *AdminService) SetProfileStatus(ctx context.Context, actorID uuid.UUID, userID uuid.UUID, status entity.ProfileStatus) error {
	if status != entity.ProfileApproved && status != entity.ProfileRejected {
		return ErrInvalidStatus
	}
	if err := s.profiles.UpdateStatus(ctx, userID, status); err != nil {
		return err
	}
	_ = appendAudit(ctx, s.audit, &actorID, nil, entity.StatusChanged, map[string]any{
		"target_user_id": userID.String(),
		"status":         string(status),
	})
	return nil
}

func (s *AdminService) GetSettings(ctx context.Context) (*entity.AdminSettings, error) {
	return s.settings.Get(ctx)
}

type SettingsPatch struct {
	TelegramLink   *string
	WhatsappNumber *string
	ToolkitURL     *string
}

// UpsertSettings creates the singleton on first write, otherwise patches only
// the fields present; absent fields keep their stored values.
func (s *AdminService) UpsertSettings(ctx context.Context, actorID uuid.UUID, patch SettingsPatch) (*entity.AdminSettings, error) {
	current, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	if current == nil {
		row := &entity.AdminSettings{
			TelegramLink:   patch.TelegramLink,
			WhatsappNumber: patch.WhatsappNumber,
			ToolkitURL:     patch.ToolkitURL,
		}
		if err := s.settings.Create(ctx, row); err != nil {
			return nil, err
		}
		s.auditSettings(ctx, actorID)
		return row, nil
	}

	fields := map[string]any{}
	if patch.TelegramLink != nil {
		fields["telegram_link"] = *patch.TelegramLink
	}
	if patch.WhatsappNumber != nil {
		fields["whatsapp_number"] = *patch.WhatsappNumber
	}
	if patch.ToolkitURL != nil {
		fields["toolkit_url"] = *patch.ToolkitURL
	}
	if len(fields) > 0 {
		if err := s.settings.Patch(ctx, fields); err != nil {
			return nil, err
		}
	}
	s.auditSettings(ctx, actorID)
	return s.settings.Get(ctx)
}

// ToggleMaintenance negates the flag, creating the singleton with the new
// value when no row exists yet. Returns the value now in effect.
func (s *AdminService) ToggleMaintenance(ctx context.Context, actorID uuid.UUID) (bool, error) {
	current, err := s.settings.Get(ctx)
	if err != nil {
		return false, err
	}

	newMode := true
	if current != nil {
		newMode = !current.AppUpdateMode
	}

	if current == nil {
		if err := s.settings.Create(ctx, &entity.AdminSettings{AppUpdateMode: newMode}); err != nil {
			return false, err
		}
	} else if err := s.settings.Patch(ctx, map[string]any{"app_update_mode": newMode}); err != nil {
		return false, err
	}

	_ = appendAudit(ctx, s.audit, &actorID, nil, entity.MaintenanceToggle, map[string]any{"app_update_mode": newMode})
	return newMode, nil
}

// Broadcast persists the message, records it on the settings singleton for
// display, and pushes it to connected sessions.
func (s *AdminService) Broadcast(ctx context.Context, actorID uuid.UUID, text string) (*entity.BroadcastMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	now := s.now()
	message := &entity.BroadcastMessage{
		Text:   text,
		Type:   entity.MessageBroadcast,
		SentBy: &actorID,
		SentAt: now,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	current, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		err = s.settings.Create(ctx, &entity.AdminSettings{
			LastMessageSent: &message.Text,
			MessageSentAt:   &now,
		})
	} else {
		err = s.settings.Patch(ctx, map[string]any{
			"last_message_sent": message.Text,
			"message_sent_at":   now,
		})
	}
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(*message)
	}

	_ = appendAudit(ctx, s.audit, &actorID, nil, entity.BroadcastSent, map[string]any{"message_id": message.ID.String()})
	return message, nil
}

func (s *AdminService) auditSettings(ctx context.Context, actorID uuid.UUID) {
	_ = appendAudit(ctx, s.audit, &actorID, nil, entity.SettingsUpdated, nil)
}

func (s *AdminService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}
