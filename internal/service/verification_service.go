package service

import (
	"context"
	"fmt"
	"time"

	"gatekeeper/internal/entity"
	"gatekeeper/internal/repository"
	"gatekeeper/internal/utils"

	"github.com/google/uuid"
)

// VerificationService owns the 6-digit email code flow: issue, deliver,
// validate. Codes are persisted before delivery is attempted, so a failed
// send is recoverable by resending rather than a correctness problem.
type VerificationService struct {
	codes  repository.VerificationCodeRepository
	users  repository.UserRepository
	audit  repository.AuditLogRepository
	email  EmailSender
	clock  Clock
	config AuthConfig
}

func NewVerificationService(
	codes repository.VerificationCodeRepository,
	users repository.UserRepository,
	audit repository.AuditLogRepository,
	email EmailSender,
	clock Clock,
	config AuthConfig,
) *VerificationService {
	return &VerificationService{
		codes:  codes,
		users:  users,
		audit:  audit,
		email:  email,
		clock:  clock,
		config: config,
	}
}

func (s *VerificationService) RequestCode(ctx context.Context, userID uuid.UUID, email string) error {
	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return err
	}

	now := s.now()
	row := &entity.VerificationCode{
		UserID:    userID,
		Email:     utils.NormalizeEmail(email),
		Code:      code,
		ExpiresAt: now.Add(s.codeTTL()),
	}
	if err := s.codes.Create(ctx, row); err != nil {
		return err
	}

	s.logAudit(ctx, &userID, entity.CodeRequested, map[string]any{"email": row.Email})

	if s.email == nil {
		return nil
	}
	if _, err := s.email.SendVerificationCode(row.Email, code); err != nil {
		// Row stays behind; the user recovers via resend.
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}

// ResendCode supersedes any outstanding codes before issuing a new one, so at
// most one code can verify at a time. The new code always goes to the
// account's stored address; callers never choose the destination.
func (s *VerificationService) ResendCode(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.codes.ExpireOutstanding(ctx, userID, s.now()); err != nil {
		return err
	}
	return s.RequestCode(ctx, userID, user.Email)
}

// VerifyCode consumes the submitted code exactly once and marks the user's
// email verified. The approval status is untouched: the profile stays pending
// until an admin decides.
func (s *VerificationService) VerifyCode(ctx context.Context, userID uuid.UUID, submitted string) error {
	if !isSixDigits(submitted) {
		return ErrCodeInvalidOrExpired
	}

	row, err := s.codes.FindLive(ctx, userID, submitted, s.now())
	if err != nil {
		return err
	}
	if row == nil {
		return ErrCodeInvalidOrExpired
	}

	if err := s.codes.MarkVerified(ctx, row.ID); err != nil {
		return err
	}
	if err := s.users.VerifyEmail(ctx, userID); err != nil {
		return err
	}

	s.logAudit(ctx, &userID, entity.CodeVerified, map[string]any{"code_id": row.ID.String()})
	return nil
}

func isSixDigits(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (s *VerificationService) logAudit(ctx context.Context, userID *uuid.UUID, action entity.AuditAction, metadata map[string]any) {
	if s.audit == nil {
		return
	}
	_ = appendAudit(ctx, s.audit, userID, nil, action, metadata)
}

func (s *VerificationService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *VerificationService) codeTTL() time.Duration {
	if s.config.VerificationCodeTTL > 0 {
		return s.config.VerificationCodeTTL
	}
	return 5 * time.Minute
}
