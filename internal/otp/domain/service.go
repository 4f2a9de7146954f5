package domain

import (
	"context"
	"errors"
)

var (
	// ErrCodeInvalid covers both a wrong code and an expired one; the
	// store does not distinguish them to the caller.
	ErrCodeInvalid = errors.New("otp_code_invalid")
)

// Service issues and verifies one-time login codes. Codes live in an
// expiring store keyed by phone number; expiry is enforced by the store
// TTL and checked on read, with no background timers to leak.
type Service interface {
	// Request generates and delivers a fresh code for the phone number,
	// replacing any outstanding one.
	Request(ctx context.Context, phone string) error

	// Verify consumes the code and returns a signed access token. The
	// account is created on first successful verification.
	Verify(ctx context.Context, phone, code string) (string, error)
}
