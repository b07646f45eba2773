package service

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailNotVerified       = errors.New("email not verified")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrCodeInvalidOrExpired   = errors.New("invalid or expired verification code")
	ErrDeliveryFailed         = errors.New("verification email delivery failed")
	ErrEmptyMessage           = errors.New("message text is empty")
	ErrInvalidStatus          = errors.New("invalid profile status")
	ErrUserNotFound           = errors.New("user not found")
)
