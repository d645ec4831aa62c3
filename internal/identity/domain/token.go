package domain

import (
	"errors"
	"time"
)

type TokenKind string

const (
	TokenKindAccess  TokenKind = "ACCESS"
	TokenKindRefresh TokenKind = "REFRESH"
)

// Token is one issued credential row. Exactly one of AccountID/ServiceID owns
// it; the invariant is checked at insert time and backed by a DB constraint.
type Token struct {
	ID        string
	AccountID *int64
	ServiceID *string
	Token     string
	Kind      TokenKind
	ExpiresAt time.Time
	Ban       bool
	CreatedAt time.Time
}

var errTokenOwner = errors.New("token must be owned by exactly one of account or service")

// ValidateOwner enforces the single-owner invariant.
func (t *Token) ValidateOwner() error {
	if (t.AccountID == nil) == (t.ServiceID == nil) {
		return errTokenOwner
	}
	return nil
}

// Expired treats now >= expires_at as invalid; expired rows are rejected
// lazily at validation time, no sweep needed for correctness.
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

type VerificationKind string

const (
	VerificationEmail       VerificationKind = "EMAIL_VERIFY"
	VerificationEmailChange VerificationKind = "CHANGE_EMAIL"
	VerificationReset       VerificationKind = "RESET_PASSWORD"
)

// VerificationToken is a single-use opaque secret authorizing one state
// change. NewEmail is set only for the CHANGE_EMAIL kind.
type VerificationToken struct {
	ID        string
	Kind      VerificationKind
	Email     string
	NewEmail  *string
	Token     string
	Ban       bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Usable reports whether the token may still be redeemed. Used and expired
// are deliberately indistinct.
func (v *VerificationToken) Usable(now time.Time) bool {
	return !v.Ban && now.Before(v.ExpiresAt)
}
