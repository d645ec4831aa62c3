package service

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/OasisOfCleanCode/identity-service/config"
	"github.com/OasisOfCleanCode/identity-service/internal/identity/domain"
	"github.com/OasisOfCleanCode/identity-service/internal/identity/dto"
	apperr "github.com/OasisOfCleanCode/identity-service/internal/errors"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+\d{5,15}$`)
)

// UserService drives registration, login, refresh and logout: credential
// verification, lockout bookkeeping and transactional token rotation.
type UserService struct {
	accounts      domain.AccountRepository
	tokens        domain.TokenRepository
	verifications *VerificationService
	tokenService  TokenGenerator
	lockout       *LockoutTracker
	now           func() time.Time
}

func NewUserService(
	accounts domain.AccountRepository,
	tokens domain.TokenRepository,
	verifications *VerificationService,
	tokenService TokenGenerator,
	cfg *config.Config,
) *UserService {
	return &UserService{
		accounts:      accounts,
		tokens:        tokens,
		verifications: verifications,
		tokenService:  tokenService,
		lockout:       NewLockoutTracker(accounts, cfg.LoginMaxAttempts, cfg.LockoutMinutes),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an account with the USER role, issues its first token pair
// and queues an email-verification token when an email was supplied.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.Account, *dto.TokenResponse, error) {
	if input.Email == "" && input.Phone == "" {
		return nil, nil, apperr.ErrIdentifierInvalid
	}

	if input.Email != "" {
		existing, err := s.accounts.FindByEmail(ctx, input.Email)
		if err != nil {
			return nil, nil, err
		}
		if existing != nil {
			return nil, nil, apperr.ErrEmailAlreadyInUse
		}
	}
	if input.Phone != "" {
		existing, err := s.accounts.FindByPhone(ctx, input.Phone)
		if err != nil {
			return nil, nil, err
		}
		if existing != nil {
			return nil, nil, apperr.ErrPhoneAlreadyInUse
		}
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	account := &domain.Account{
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.Email != "" {
		account.Email = &input.Email
	}
	if input.Phone != "" {
		account.Phone = &input.Phone
	}

	if err := s.accounts.Create(ctx, account, domain.RoleUser); err != nil {
		return nil, nil, err
	}

	tokenPair, err := s.issuePair(ctx, account, nil)
	if err != nil {
		return nil, nil, err
	}

	if input.Email != "" {
		if err := s.verifications.RequestEmailVerification(ctx, input.Email); err != nil {
			// Registration already committed; the user can re-request the link.
			slog.Error("email verification token not issued", "account_id", account.ID, "err", err)
		}
	}

	slog.Info("account registered", "account_id", account.ID)

	return account, tokenPair, nil
}

// Login authenticates by email or phone identifier and rotates the account's
// token family. Lockout is evaluated before any credential is trusted.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	account, err := s.findByIdentifier(ctx, input.Identifier)
	if err != nil {
		return nil, err
	}
	if account == nil {
		_ = s.accounts.RecordLoginAttempt(ctx, input.Identifier, false)
		// Same external answer as a wrong password.
		return nil, apperr.ErrInvalidCredentials
	}

	// Lifts an elapsed ban; an active ban rejects even a correct password.
	if err := s.lockout.CheckBan(ctx, account); err != nil {
		_ = s.accounts.RecordLoginAttempt(ctx, input.Identifier, false)
		return nil, err
	}

	if !VerifyPassword(input.Password, account.PasswordHash) {
		_ = s.accounts.RecordLoginAttempt(ctx, input.Identifier, false)
		if err := s.lockout.RecordFailure(ctx, account); err != nil {
			return nil, err
		}
		return nil, apperr.ErrInvalidCredentials
	}

	// Requested scopes outside the account's roles are refused outright.
	for _, scope := range input.Scopes {
		if !account.HasRole(domain.Role(scope)) {
			return nil, apperr.ErrForbiddenScope
		}
	}

	tokenPair, err := s.issuePair(ctx, account, input.Scopes)
	if err != nil {
		return nil, err
	}

	if err := s.lockout.RecordSuccess(ctx, account); err != nil {
		return nil, err
	}
	if err := s.accounts.RecordLoginAttempt(ctx, input.Identifier, true); err != nil {
		return nil, err
	}

	slog.Info("login succeeded", "account_id", account.ID)

	return tokenPair, nil
}

// Refresh validates the presented refresh token against both its signature
// and its non-banned store row, then rotates the access token only.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	claims, err := s.tokenService.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, err
	}

	accountID, err := claims.SubjectID()
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperr.ErrAccountMissing
	}

	// A cryptographically valid token that was rotated out must be refused:
	// the store row is the revocation authority.
	row, err := s.tokens.FindActive(ctx, input.RefreshToken, domain.TokenKindRefresh, account.ID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperr.ErrTokenRevoked
	}

	if err := s.lockout.CheckBan(ctx, account); err != nil {
		return nil, err
	}

	// Re-intersect the token's scopes with the roles held right now.
	scopes := account.ScopeIntersection(claims.Scopes)

	now := s.now()
	accessString, accessExpiry, err := s.tokenService.Mint(account.ID, domain.TokenKindAccess, scopes, now)
	if err != nil {
		return nil, apperr.ErrTokenGeneration
	}

	access := newAccountToken(account.ID, accessString, domain.TokenKindAccess, accessExpiry, now)
	if err := s.tokens.IssueAccessOnly(ctx, account.ID, access); err != nil {
		return nil, apperr.ErrTokenGeneration
	}

	slog.Info("access token refreshed", "account_id", account.ID)

	return &dto.TokenResponse{AccessToken: accessString, TokenType: "bearer"}, nil
}

// Logout bans every token of the account; the cookies are cleared by the
// handler.
func (s *UserService) Logout(ctx context.Context, account *domain.Account) error {
	if err := s.tokens.BanAll(ctx, account.ID); err != nil {
		return err
	}
	slog.Info("logout", "account_id", account.ID)
	return nil
}

// ForceLogout is the admin path: revoke all tokens of an arbitrary account.
func (s *UserService) ForceLogout(ctx context.Context, accountID int64) error {
	return s.tokens.BanAll(ctx, accountID)
}

// BanAccount applies a manual admin ban for the given duration.
func (s *UserService) BanAccount(ctx context.Context, accountID int64, duration time.Duration) error {
	until := s.now().Add(duration)
	if err := s.accounts.UpdateBan(ctx, accountID, true, &until); err != nil {
		return err
	}
	if err := s.tokens.BanAll(ctx, accountID); err != nil {
		return err
	}
	slog.Warn("account banned by admin", "account_id", accountID, "until", until)
	return nil
}

// UnbanAccount lifts any ban and clears the failure counter.
func (s *UserService) UnbanAccount(ctx context.Context, accountID int64) error {
	return s.accounts.UpdateBan(ctx, accountID, false, nil)
}

// GetAccount loads an account by id for the admin read endpoints.
func (s *UserService) GetAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperr.ErrAccountMissing
	}
	return account, nil
}

// GrantRole adds a role to the account; duplicate grants are idempotent.
func (s *UserService) GrantRole(ctx context.Context, accountID int64, role domain.Role) error {
	if !role.Valid() {
		return apperr.ErrForbiddenScope
	}
	return s.accounts.GrantRole(ctx, accountID, role)
}

func (s *UserService) RevokeRole(ctx context.Context, accountID int64, role domain.Role) error {
	return s.accounts.RevokeRole(ctx, accountID, role)
}

// issuePair mints both kinds with the scope intersection and hands them to
// the repository, which bans all predecessors in the same transaction.
func (s *UserService) issuePair(ctx context.Context, account *domain.Account, requestedScopes []string) (*dto.TokenResponse, error) {
	scopes := account.ScopeIntersection(requestedScopes)
	now := s.now()

	accessString, accessExpiry, err := s.tokenService.Mint(account.ID, domain.TokenKindAccess, scopes, now)
	if err != nil {
		return nil, apperr.ErrTokenGeneration
	}
	refreshString, refreshExpiry, err := s.tokenService.Mint(account.ID, domain.TokenKindRefresh, scopes, now)
	if err != nil {
		return nil, apperr.ErrTokenGeneration
	}

	access := newAccountToken(account.ID, accessString, domain.TokenKindAccess, accessExpiry, now)
	refresh := newAccountToken(account.ID, refreshString, domain.TokenKindRefresh, refreshExpiry, now)

	if err := s.tokens.IssuePair(ctx, account.ID, access, refresh); err != nil {
		return nil, apperr.ErrTokenGeneration
	}

	return &dto.TokenResponse{
		AccessToken:  accessString,
		TokenType:    "bearer",
		RefreshToken: refreshString,
	}, nil
}

func (s *UserService) findByIdentifier(ctx context.Context, identifier string) (*domain.Account, error) {
	switch {
	case emailPattern.MatchString(identifier):
		return s.accounts.FindByEmail(ctx, identifier)
	case phonePattern.MatchString(identifier):
		return s.accounts.FindByPhone(ctx, identifier)
	default:
		return nil, apperr.ErrIdentifierInvalid
	}
}

func newAccountToken(accountID int64, tokenString string, kind domain.TokenKind, expiresAt, createdAt time.Time) *domain.Token {
	id := accountID
	return &domain.Token{
		ID:        uuid.NewString(),
		AccountID: &id,
		Token:     tokenString,
		Kind:      kind,
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}
}
