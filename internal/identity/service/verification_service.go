package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/OasisOfCleanCode/identity-service/internal/identity/domain"
	apperr "github.com/OasisOfCleanCode/identity-service/internal/errors"
)

// VerificationService issues and redeems single-use opaque tokens for email
// confirmation, email change and password reset. Redemption applies the side
// effect and bans the token in one transaction; a replay always lands on the
// ban branch and is denied, never crashes.
type VerificationService struct {
	accounts domain.AccountRepository
	store    domain.VerificationTokenRepository
	notifier domain.Notifier
	ttl      time.Duration
	now      func() time.Time
}

func NewVerificationService(
	accounts domain.AccountRepository,
	store domain.VerificationTokenRepository,
	notifier domain.Notifier,
	expiryDays int,
) *VerificationService {
	return &VerificationService{
		accounts: accounts,
		store:    store,
		notifier: notifier,
		ttl:      time.Duration(expiryDays) * 24 * time.Hour,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RequestEmailVerification issues a confirm-address token and hands it to the
// notifier.
func (s *VerificationService) RequestEmailVerification(ctx context.Context, email string) error {
	vt, err := s.issue(ctx, domain.VerificationEmail, email, nil)
	if err != nil {
		return err
	}
	return s.notifier.SendEmailVerification(ctx, email, vt.Token)
}

// RequestEmailChange issues a change-address token; the link goes to the new
// address, proving its owner consents.
func (s *VerificationService) RequestEmailChange(ctx context.Context, account *domain.Account, newEmail string) error {
	if account.Email == nil {
		return apperr.ErrAccountMissing
	}
	existing, err := s.accounts.FindByEmail(ctx, newEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.ErrEmailAlreadyInUse
	}

	vt, err := s.issue(ctx, domain.VerificationEmailChange, *account.Email, &newEmail)
	if err != nil {
		return err
	}
	return s.notifier.SendEmailChangeVerification(ctx, newEmail, vt.Token)
}

// RequestPasswordReset issues a reset token when the address is known. An
// unknown address reports success to the caller to avoid account enumeration;
// only the log records the miss.
func (s *VerificationService) RequestPasswordReset(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account == nil {
		slog.Info("password reset requested for unknown email")
		return nil
	}

	vt, err := s.issue(ctx, domain.VerificationReset, email, nil)
	if err != nil {
		return err
	}
	return s.notifier.SendPasswordReset(ctx, email, vt.Token)
}

// ConfirmEmail redeems an email-verification token: sets is_email_confirmed
// and bans the token atomically.
func (s *VerificationService) ConfirmEmail(ctx context.Context, tokenString string) error {
	vt, account, err := s.lookup(ctx, tokenString, domain.VerificationEmail)
	if err != nil {
		return err
	}
	if err := s.store.RedeemEmailVerify(ctx, vt, account.ID); err != nil {
		return err
	}
	slog.Info("email confirmed", "account_id", account.ID)
	return nil
}

// ApplyEmailChange redeems a change-email token: swaps the address, marks it
// confirmed and bans the token atomically.
func (s *VerificationService) ApplyEmailChange(ctx context.Context, tokenString string) (*domain.Account, error) {
	vt, account, err := s.lookup(ctx, tokenString, domain.VerificationEmailChange)
	if err != nil {
		return nil, err
	}
	if err := s.store.RedeemEmailChange(ctx, vt, account.ID); err != nil {
		return nil, err
	}
	account.Email = vt.NewEmail
	account.IsEmailConfirmed = true
	slog.Info("email changed", "account_id", account.ID)
	return account, nil
}

// ResetPassword redeems a reset token: stores the new hash and bans the token
// atomically. Live sessions are left alone and die at the next rotation.
func (s *VerificationService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	vt, account, err := s.lookup(ctx, tokenString, domain.VerificationReset)
	if err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.store.RedeemPasswordReset(ctx, vt, account.ID, hash); err != nil {
		return err
	}
	slog.Info("password reset applied", "account_id", account.ID)
	return nil
}

func (s *VerificationService) issue(ctx context.Context, kind domain.VerificationKind, email string, newEmail *string) (*domain.VerificationToken, error) {
	now := s.now()
	vt := &domain.VerificationToken{
		ID:        uuid.NewString(),
		Kind:      kind,
		Email:     email,
		NewEmail:  newEmail,
		Token:     opaqueToken(),
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.store.CreateVerificationToken(ctx, vt); err != nil {
		return nil, err
	}
	return vt, nil
}

func (s *VerificationService) lookup(ctx context.Context, tokenString string, kind domain.VerificationKind) (*domain.VerificationToken, *domain.Account, error) {
	vt, err := s.store.FindVerificationToken(ctx, tokenString, kind)
	if err != nil {
		return nil, nil, err
	}
	if vt == nil {
		return nil, nil, apperr.ErrVerificationNotFound
	}
	if !vt.Usable(s.now()) {
		return nil, nil, apperr.ErrVerificationExpiredOrUsed
	}

	account, err := s.accounts.FindByEmail(ctx, vt.Email)
	if err != nil {
		return nil, nil, err
	}
	if account == nil {
		return nil, nil, apperr.ErrAccountMissing
	}
	return vt, account, nil
}

// opaqueToken returns a 32-byte URL-safe random secret; these tokens are
// deliberately not JWTs.
func opaqueToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
