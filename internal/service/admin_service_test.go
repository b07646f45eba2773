package service

import (
	"context"
	"testing"
	"time"

	"gatekeeper/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture(t *testing.T) (*AdminService, *fakeProfileRepo, *fakeSettingsRepo, *fakeMessageRepo, *fakePublisher, *fakeClock) {
	t.Helper()
	profiles := newFakeProfileRepo()
	settings := &fakeSettingsRepo{}
	messages := &fakeMessageRepo{}
	publisher := &fakePublisher{}
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewAdminService(profiles, settings, messages, &fakeAuditRepo{}, publisher, clock)
	return svc, profiles, settings, messages, publisher, clock
}

func TestSetProfileStatus(t *testing.T) {
	svc, profiles, _, _, _, _ := newAdminFixture(t)
	admin := uuid.New()
	userID := uuid.New()
	require.NoError(t, profiles.Create(context.Background(), &entity.Profile{
		UserID: userID,
		Email:  "user@example.com",
		Status: entity.ProfilePending,
	}))

	require.NoError(t, svc.SetProfileStatus(context.Background(), admin, userID, entity.ProfileApproved))

	// Read-after-write: the next load reflects the decision.
	profile, err := profiles.FindByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProfileApproved, profile.Status)

	// Reversible: rejected can go back to approved.
	require.NoError(t, svc.SetProfileStatus(context.Background(), admin, userID, entity.ProfileRejected))
	require.NoError(t, svc.SetProfileStatus(context.Background(), admin, userID, entity.ProfileApproved))
	profile, _ = profiles.FindByUserID(context.Background(), userID)
	assert.Equal(t, entity.ProfileApproved, profile.Status)
}

func TestSetProfileStatusRejectsInvalid(t *testing.T) {
	svc, _, _, _, _, _ := newAdminFixture(t)
	err := svc.SetProfileStatus(context.Background(), uuid.New(), uuid.New(), entity.ProfilePending)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	err = svc.SetProfileStatus(context.Background(), uuid.New(), uuid.New(), entity.ProfileStatus("banned"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpsertSettingsCreatesThenPatches(t *testing.T) {
	svc, _, settings, _, _, _ := newAdminFixture(t)
	admin := uuid.New()

	telegram := "https://t.me/example"
	created, err := svc.UpsertSettings(context.Background(), admin, SettingsPatch{TelegramLink: &telegram})
	require.NoError(t, err)
	require.NotNil(t, created.TelegramLink)
	assert.Equal(t, telegram, *created.TelegramLink)
	assert.Nil(t, created.WhatsappNumber)

	// A later partial patch must not clobber fields it does not mention.
	whatsapp := "+10000000000"
	updated, err := svc.UpsertSettings(context.Background(), admin, SettingsPatch{WhatsappNumber: &whatsapp})
	require.NoError(t, err)
	require.NotNil(t, updated.TelegramLink)
	assert.Equal(t, telegram, *updated.TelegramLink)
	require.NotNil(t, updated.WhatsappNumber)
	assert.Equal(t, whatsapp, *updated.WhatsappNumber)

	assert.Same(t, settings.row, updated)
}

func TestToggleMaintenance(t *testing.T) {
	svc, _, settings, _, _, _ := newAdminFixture(t)
	admin := uuid.New()

	// No settings row yet: the toggle creates one with the flag on.
	mode, err := svc.ToggleMaintenance(context.Background(), admin)
	require.NoError(t, err)
	assert.True(t, mode)
	require.NotNil(t, settings.row)
	assert.True(t, settings.row.AppUpdateMode)

	mode, err = svc.ToggleMaintenance(context.Background(), admin)
	require.NoError(t, err)
	assert.False(t, mode)
	assert.False(t, settings.row.AppUpdateMode)
}

func TestMaintenanceVisibleOnNextEvaluation(t *testing.T) {
	svc, profiles, settings, messages, _, _ := newAdminFixture(t)
	admin := uuid.New()

	users := newFakeUserRepo()
	roles := newFakeRoleRepo()
	app := NewAppService(users, profiles, roles, settings, messages)

	verified := time.Now()
	user := &entity.User{Email: "user@example.com", IsActive: true, EmailVerifiedAt: &verified}
	require.NoError(t, users.Create(context.Background(), user))
	require.NoError(t, profiles.Create(context.Background(), &entity.Profile{
		UserID: user.ID,
		Email:  user.Email,
		Status: entity.ProfileApproved,
	}))

	snapshot, err := app.EvaluateForUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, StateActive, snapshot.State)

	// The admin flips maintenance; the user's next evaluation is locked out
	// without any logout/login.
	_, err = svc.ToggleMaintenance(context.Background(), admin)
	require.NoError(t, err)

	snapshot, err = app.EvaluateForUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, StateMaintenance, snapshot.State)

	// An admin account stays in on the same flag.
	require.NoError(t, roles.Grant(context.Background(), user.ID, entity.RoleAdmin))
	snapshot, err = app.EvaluateForUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, StateAdministrator, snapshot.State)
}

func TestBroadcastRejectsEmptyText(t *testing.T) {
	svc, _, _, messages, publisher, _ := newAdminFixture(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.Broadcast(context.Background(), uuid.New(), text)
		assert.ErrorIs(t, err, ErrEmptyMessage, "text %q", text)
	}
	assert.Empty(t, messages.rows)
	assert.Empty(t, publisher.published)
}

func TestBroadcastPersistsPublishesAndStampsSettings(t *testing.T) {
	svc, _, settings, messages, publisher, clock := newAdminFixture(t)
	admin := uuid.New()

	message, err := svc.Broadcast(context.Background(), admin, "maintenance window at 22:00")
	require.NoError(t, err)

	require.Len(t, messages.rows, 1)
	assert.Equal(t, "maintenance window at 22:00", messages.rows[0].Text)
	assert.Equal(t, entity.MessageBroadcast, messages.rows[0].Type)
	assert.Equal(t, clock.now, messages.rows[0].SentAt)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, message.ID, publisher.published[0].ID)

	require.NotNil(t, settings.row)
	require.NotNil(t, settings.row.LastMessageSent)
	assert.Equal(t, message.Text, *settings.row.LastMessageSent)
	require.NotNil(t, settings.row.MessageSentAt)
	assert.Equal(t, clock.now, *settings.row.MessageSentAt)
}
