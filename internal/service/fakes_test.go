package service

import (
	"context"
	"errors"
	"time"

	"gatekeeper/internal/entity"

	"github.com/google/uuid"
)

// --- shared fakes ---

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeUserRepo struct {
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]*entity.User

	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) VerifyEmail(ctx context.Context, userID uuid.UUID) error {
	user, ok := f.byID[userID]
	if !ok {
		return errors.New("no such user")
	}
	now := time.Now()
	user.EmailVerifiedAt = &now
	return nil
}

type fakeProfileRepo struct {
	byUserID map[uuid.UUID]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUserID: make(map[uuid.UUID]*entity.Profile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	f.byUserID[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	return f.byUserID[userID], nil
}

func (f *fakeProfileRepo) UpdateStatus(ctx context.Context, userID uuid.UUID, status entity.ProfileStatus) error {
	if profile, ok := f.byUserID[userID]; ok {
		profile.Status = status
		profile.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeProfileRepo) List(ctx context.Context, limit, offset int) ([]entity.Profile, error) {
	profiles := make([]entity.Profile, 0, len(f.byUserID))
	for _, p := range f.byUserID {
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

type fakeCodeRepo struct {
	rows []*entity.VerificationCode

	createErr error
}

func (f *fakeCodeRepo) Create(ctx context.Context, code *entity.VerificationCode) error {
	if f.createErr != nil {
		return f.createErr
	}
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	f.rows = append(f.rows, code)
	return nil
}

func (f *fakeCodeRepo) FindLive(ctx context.Context, userID uuid.UUID, code string, now time.Time) (*entity.VerificationCode, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		row := f.rows[i]
		if row.UserID == userID && row.Code == code && !row.Verified && row.ExpiresAt.After(now) {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeCodeRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	for _, row := range f.rows {
		if row.ID == id {
			row.Verified = true
			return nil
		}
	}
	return errors.New("no such code")
}

func (f *fakeCodeRepo) ExpireOutstanding(ctx context.Context, userID uuid.UUID, now time.Time) error {
	for _, row := range f.rows {
		if row.UserID == userID && !row.Verified && row.ExpiresAt.After(now) {
			row.ExpiresAt = now
		}
	}
	return nil
}

type fakeSessionRepo struct {
	byHash  map[string]*entity.Session
	created []*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byHash: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *entity.Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.byHash[s.TokenHash] = s
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSessionRepo) FindByTokenHash(ctx context.Context, hash string) (*entity.Session, error) {
	session, ok := f.byHash[hash]
	if !ok || !session.Live(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessionRepo) RotateToken(ctx context.Context, sessionID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	for hash, session := range f.byHash {
		if session.ID == sessionID {
			delete(f.byHash, hash)
			now := time.Now()
			session.TokenHash = tokenHash
			session.ExpiresAt = expiresAt
			session.RefreshedAt = &now
			f.byHash[tokenHash] = session
			return nil
		}
	}
	return errors.New("no such session")
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, sessionID uuid.UUID) error {
	now := time.Now()
	for _, session := range f.byHash {
		if session.ID == sessionID {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	for _, session := range f.byHash {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) CleanupExpired(ctx context.Context) error { return nil }

type fakeRoleRepo struct {
	admins map[uuid.UUID]bool
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{admins: make(map[uuid.UUID]bool)}
}

func (f *fakeRoleRepo) HasRole(ctx context.Context, userID uuid.UUID, role entity.Role) (bool, error) {
	if role != entity.RoleAdmin {
		return false, nil
	}
	return f.admins[userID], nil
}

func (f *fakeRoleRepo) Grant(ctx context.Context, userID uuid.UUID, role entity.Role) error {
	if role == entity.RoleAdmin {
		f.admins[userID] = true
	}
	return nil
}

func (f *fakeRoleRepo) Revoke(ctx context.Context, userID uuid.UUID, role entity.Role) error {
	if role == entity.RoleAdmin {
		delete(f.admins, userID)
	}
	return nil
}

type fakeSettingsRepo struct {
	row *entity.AdminSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*entity.AdminSettings, error) {
	return f.row, nil
}

func (f *fakeSettingsRepo) Create(ctx context.Context, settings *entity.AdminSettings) error {
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}
	f.row = settings
	return nil
}

func (f *fakeSettingsRepo) Patch(ctx context.Context, fields map[string]any) error {
	if f.row == nil {
		return errors.New("no settings row")
	}
	for key, value := range fields {
		switch key {
		case "telegram_link":
			v := value.(string)
			f.row.TelegramLink = &v
		case "whatsapp_number":
			v := value.(string)
			f.row.WhatsappNumber = &v
		case "toolkit_url":
			v := value.(string)
			f.row.ToolkitURL = &v
		case "app_update_mode":
			f.row.AppUpdateMode = value.(bool)
		case "last_message_sent":
			v := value.(string)
			f.row.LastMessageSent = &v
		case "message_sent_at":
			v := value.(time.Time)
			f.row.MessageSentAt = &v
		}
	}
	return nil
}

type fakeMessageRepo struct {
	rows []*entity.BroadcastMessage
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *entity.BroadcastMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	f.rows = append(f.rows, message)
	return nil
}

func (f *fakeMessageRepo) ListRecent(ctx context.Context, limit int) ([]entity.BroadcastMessage, error) {
	messages := make([]entity.BroadcastMessage, 0, len(f.rows))
	for i := len(f.rows) - 1; i >= 0 && len(messages) < limit; i-- {
		messages = append(messages, *f.rows[i])
	}
	return messages, nil
}

type fakeAuditRepo struct {
	entries []*entity.AuditLog
}

func (f *fakeAuditRepo) Log(ctx context.Context, log *entity.AuditLog) error {
	f.entries = append(f.entries, log)
	return nil
}

type fakeEmailSender struct {
	sent []struct {
		Email string
		Code  string
	}
	err error
}

func (f *fakeEmailSender) SendVerificationCode(email string, code string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, struct {
		Email string
		Code  string
	}{email, code})
	return "delivery-" + code, nil
}

type fakePublisher struct {
	published []entity.BroadcastMessage
}

func (f *fakePublisher) Publish(message entity.BroadcastMessage) {
	f.published = append(f.published, message)
}
