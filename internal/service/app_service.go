package service

import (
	"context"

	"gatekeeper/internal/entity"
	"gatekeeper/internal/repository"

	"github.com/google/uuid"
)

// StateSnapshot is one evaluation of the lifecycle machine plus the settings
// the client renders alongside it. ToolkitURL is only populated when the
// state grants access.
type StateSnapshot struct {
	State      AppState
	Settings   *entity.AdminSettings
	ToolkitURL *string
}

// AppService assembles lifecycle evaluations for authenticated clients. Role,
// profile and settings are re-read on every call so admin actions show up on
// the next evaluation without re-login.
type AppService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	roles    repository.RoleRepository
	settings repository.SettingsRepository
	messages repository.MessageRepository

	// Fallback when no settings row carries a toolkit URL yet.
	DefaultToolkitURL string
}

func NewAppService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	roles repository.RoleRepository,
	settings repository.SettingsRepository,
	messages repository.MessageRepository,
) *AppService {
	return &AppService{
		users:    users,
		profiles: profiles,
		roles:    roles,
		settings: settings,
		messages: messages,
	}
}

func (s *AppService) EvaluateForUser(ctx context.Context, userID uuid.UUID) (StateSnapshot, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return StateSnapshot{}, err
	}
	if user == nil {
		return StateSnapshot{State: StateUnauthenticated}, nil
	}

	isAdmin, err := s.roles.HasRole(ctx, userID, entity.RoleAdmin)
	if err != nil {
		return StateSnapshot{}, err
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return StateSnapshot{}, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return StateSnapshot{}, err
	}

	input := StateInput{
		Authenticated: true,
		EmailVerified: user.EmailVerifiedAt != nil,
		IsAdmin:       isAdmin,
	}
	if profile != nil {
		input.ProfileStatus = profile.Status
	}
	if settings != nil {
		input.Maintenance = settings.AppUpdateMode
	}

	snapshot := StateSnapshot{
		State:    EvaluateState(input),
		Settings: settings,
	}
	if snapshot.State == StateActive || snapshot.State == StateAdministrator {
		snapshot.ToolkitURL = s.toolkitURL(settings)
	}
	return snapshot, nil
}

func (s *AppService) ListMessages(ctx context.Context, limit int) ([]entity.BroadcastMessage, error) {
	return s.messages.ListRecent(ctx, limit)
}

func (s *AppService) toolkitURL(settings *entity.AdminSettings) *string {
	if settings != nil && settings.ToolkitURL != nil && *settings.ToolkitURL != "" {
		return settings.ToolkitURL
	}
	if s.DefaultToolkitURL != "" {
		url := s.DefaultToolkitURL
		return &url
	}
	return nil
}
