package domain

//go:generate mockgen -destination=../../mocks/mock_account_repository.go -package=mocks github.com/OasisOfCleanCode/identity-service/internal/identity/domain AccountRepository
//go:generate mockgen -destination=../../mocks/mock_token_repository.go -package=mocks github.com/OasisOfCleanCode/identity-service/internal/identity/domain TokenRepository
//go:generate mockgen -destination=../../mocks/mock_verification_repository.go -package=mocks github.com/OasisOfCleanCode/identity-service/internal/identity/domain VerificationTokenRepository
//go:generate mockgen -destination=../../mocks/mock_notifier.go -package=mocks github.com/OasisOfCleanCode/identity-service/internal/identity/domain Notifier

import (
	"context"
	"time"
)

// AccountRepository is the typed lookup surface for accounts. Find methods
// return (nil, nil) when no row matches.
type AccountRepository interface {
	FindByID(ctx context.Context, id int64) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByPhone(ctx context.Context, phone string) (*Account, error)
	Create(ctx context.Context, account *Account, role Role) error
	// UpdateLoginState persists the lockout fields and last_login_attempt.
	UpdateLoginState(ctx context.Context, account *Account) error
	// UpdateBan sets or clears a manual admin ban.
	UpdateBan(ctx context.Context, id int64, banned bool, until *time.Time) error
	GrantRole(ctx context.Context, id int64, role Role) error
	RevokeRole(ctx context.Context, id int64, role Role) error
	RecordLoginAttempt(ctx context.Context, identifier string, success bool) error
	// SweepExpiredBans bulk-lifts elapsed lockouts; storage hygiene only.
	SweepExpiredBans(ctx context.Context, now time.Time) (int64, error)
}

// TokenRepository owns the issued-token rows. Rotation methods run their
// invalidate-then-insert sequence inside a single transaction.
type TokenRepository interface {
	// IssuePair bans every non-banned token of the account (both kinds) and
	// inserts the new access+refresh rows atomically.
	IssuePair(ctx context.Context, accountID int64, access, refresh *Token) error
	// IssueAccessOnly bans prior non-banned ACCESS rows and inserts the new
	// access row atomically; the presented refresh token stays active.
	IssueAccessOnly(ctx context.Context, accountID int64, access *Token) error
	FindActive(ctx context.Context, tokenString string, kind TokenKind, accountID int64) (*Token, error)
	BanAll(ctx context.Context, accountID int64) error
}

// VerificationTokenRepository owns single-use verification tokens. Redeem
// methods apply their side effect and ban the token in one transaction.
type VerificationTokenRepository interface {
	CreateVerificationToken(ctx context.Context, vt *VerificationToken) error
	FindVerificationToken(ctx context.Context, tokenString string, kind VerificationKind) (*VerificationToken, error)
	RedeemEmailVerify(ctx context.Context, vt *VerificationToken, accountID int64) error
	RedeemEmailChange(ctx context.Context, vt *VerificationToken, accountID int64) error
	RedeemPasswordReset(ctx context.Context, vt *VerificationToken, accountID int64, newHash string) error
}

// Notifier delivers verification links. Mail transport is an external
// collaborator; implementations must not block the request path on retries.
type Notifier interface {
	SendEmailVerification(ctx context.Context, email, token string) error
	SendEmailChangeVerification(ctx context.Context, newEmail, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}
