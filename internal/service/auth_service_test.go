package service

import (
	"context"
	"testing"
	"time"

	"gatekeeper/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeTokenIssuer struct {
	lastRole entity.Role
}

func (f *fakeTokenIssuer) IssueAccessToken(user entity.User, role entity.Role, sessionID uuid.UUID) (string, time.Duration, error) {
	f.lastRole = role
	return "access-" + sessionID.String(), 15 * time.Minute, nil
}

type authFixture struct {
	svc          *AuthService
	verification *VerificationService

	users    *fakeUserRepo
	profiles *fakeProfileRepo
	sessions *fakeSessionRepo
	roles    *fakeRoleRepo
	codes    *fakeCodeRepo
	email    *fakeEmailSender
	issuer   *fakeTokenIssuer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:    newFakeUserRepo(),
		profiles: newFakeProfileRepo(),
		sessions: newFakeSessionRepo(),
		roles:    newFakeRoleRepo(),
		codes:    &fakeCodeRepo{},
		email:    &fakeEmailSender{},
		issuer:   &fakeTokenIssuer{},
	}
	clock := &fakeClock{now: time.Now()}
	audit := &fakeAuditRepo{}
	f.verification = NewVerificationService(f.codes, f.users, audit, f.email, clock, AuthConfig{})
	f.svc = NewAuthService(
		f.users,
		f.profiles,
		f.sessions,
		f.roles,
		audit,
		f.verification,
		BcryptPasswordHasher{Cost: bcrypt.MinCost},
		f.issuer,
		clock,
		AuthConfig{},
	)
	return f
}

func TestRegisterPasswordMismatch(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Email:           "user@example.com",
		Password:        "Abc12345",
		ConfirmPassword: "Abc12346",
	})
	require.ErrorIs(t, err, ErrPasswordMismatch)

	// Rejected before anything touches the store.
	assert.Empty(t, f.users.byEmail)
	assert.Empty(t, f.codes.rows)
}

func TestRegisterCreatesPendingProfileAndDispatchesCode(t *testing.T) {
	f := newAuthFixture(t)

	user, err := f.svc.Register(context.Background(), RegisterInput{
		Email:           " User@Example.com",
		Password:        "Abc12345",
		ConfirmPassword: "Abc12345",
	})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)

	profile, err := f.profiles.FindByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, entity.ProfilePending, profile.Status)

	require.Len(t, f.codes.rows, 1)
	require.Len(t, f.email.sent, 1)
	assert.Equal(t, "user@example.com", f.email.sent[0].Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	input := RegisterInput{Email: "user@example.com", Password: "Abc12345", ConfirmPassword: "Abc12345"}

	user, err := f.svc.Register(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, f.codes.rows, 1)
	first := f.codes.rows[0].Code

	// Unverified: registering again re-sends, superseding the first code.
	again, err := f.svc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	require.Len(t, f.codes.rows, 2)
	if second := f.codes.rows[1].Code; first != second {
		err = f.verification.VerifyCode(context.Background(), user.ID, first)
		assert.ErrorIs(t, err, ErrCodeInvalidOrExpired)
	}
	require.NoError(t, f.verification.VerifyCode(context.Background(), user.ID, f.codes.rows[1].Code))

	// Verified: the email is taken.
	_, err = f.svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture(t)
	registerVerified(t, f, "user@example.com", "Abc12345")

	_, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever1",
		DeviceID: "device-1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), LoginInput{
		Email:    "user@example.com",
		Password: "wrong-password",
		DeviceID: "device-1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRequiresVerifiedEmail(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.Register(context.Background(), RegisterInput{
		Email:           "user@example.com",
		Password:        "Abc12345",
		ConfirmPassword: "Abc12345",
	})
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), LoginInput{
		Email:    "user@example.com",
		Password: "Abc12345",
		DeviceID: "device-1",
	})
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestLoginIssuesSessionAndTokens(t *testing.T) {
	f := newAuthFixture(t)
	user := registerVerified(t, f, "user@example.com", "Abc12345")

	result, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "user@example.com",
		Password: "Abc12345",
		DeviceID: "device-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, entity.RoleUser, f.issuer.lastRole)

	require.Len(t, f.sessions.created, 1)
	assert.Equal(t, user.ID, f.sessions.created[0].UserID)

	// Admin role row changes the issued role claim.
	require.NoError(t, f.roles.Grant(context.Background(), user.ID, entity.RoleAdmin))
	_, err = f.svc.Login(context.Background(), LoginInput{
		Email:    "user@example.com",
		Password: "Abc12345",
		DeviceID: "device-2",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, f.issuer.lastRole)
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newAuthFixture(t)
	registerVerified(t, f, "user@example.com", "Abc12345")

	login, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "user@example.com",
		Password: "Abc12345",
		DeviceID: "device-1",
	})
	require.NoError(t, err)

	refreshed, err := f.svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	require.Len(t, f.sessions.created, 1)
	assert.NotNil(t, f.sessions.created[0].RefreshedAt)

	// The old refresh token no longer resolves.
	_, err = f.svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func registerVerified(t *testing.T, f *authFixture, email, password string) *entity.User {
	t.Helper()
	user, err := f.svc.Register(context.Background(), RegisterInput{
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)
	require.NoError(t, f.users.VerifyEmail(context.Background(), user.ID))
	return user
}
