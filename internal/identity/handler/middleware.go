package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/OasisOfCleanCode/identity-service/internal/cache"
	"github.com/OasisOfCleanCode/identity-service/internal/identity/domain"
	"github.com/OasisOfCleanCode/identity-service/internal/identity/service"
	apperr "github.com/OasisOfCleanCode/identity-service/internal/errors"
)

const accountLocalKey = "account"

// Gate is the authorization middleware: it decides ALLOW/DENY for every
// protected request. Cheap cryptographic checks run before any store access.
type Gate struct {
	tokenService service.TokenGenerator
	accounts     domain.AccountRepository
	tokens       domain.TokenRepository
	banList      *cache.BanList
	now          func() time.Time
}

func NewGate(tokenService service.TokenGenerator, accounts domain.AccountRepository, tokens domain.TokenRepository, banList *cache.BanList) *Gate {
	return &Gate{
		tokenService: tokenService,
		accounts:     accounts,
		tokens:       tokens,
		banList:      banList,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// RequireScopes admits requests whose access token carries at least one of
// the given scopes. An empty list makes the route public to any valid token.
func (g *Gate) RequireScopes(scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return status(c, fiber.StatusUnauthorized, "missing access token")
		}

		// Signature first; expired tokens still yield claims so the scope
		// check can run in order before the expiry verdict.
		claims, verifyErr := g.tokenService.VerifyAccessToken(tokenString)
		if verifyErr != nil && claims == nil {
			return respondError(c, verifyErr)
		}

		accountID, err := claims.SubjectID()
		if err != nil {
			return respondError(c, err)
		}

		if len(scopes) > 0 && !scopeAllowed(scopes, claims.Scopes) {
			return status(c, fiber.StatusForbidden, "insufficient scope")
		}

		if verifyErr != nil {
			return respondError(c, verifyErr)
		}

		// Cached revocation spares the store lookup for freshly banned tokens.
		if g.banList.IsBanned(c.Context(), string(domain.TokenKindAccess), accountID, cache.Digest(tokenString)) {
			return respondError(c, apperr.ErrTokenRevoked)
		}

		account, err := g.accounts.FindByID(c.Context(), accountID)
		if err != nil {
			return respondError(c, err)
		}
		if account == nil {
			return respondError(c, apperr.ErrAccountMissing)
		}

		// The store row is what makes logout and rotation bite even for a
		// still-cryptographically-valid token.
		row, err := g.tokens.FindActive(c.Context(), tokenString, domain.TokenKindAccess, accountID)
		if err != nil {
			return respondError(c, err)
		}
		if row == nil {
			return respondError(c, apperr.ErrTokenRevoked)
		}

		if account.IsBanned && !account.BanExpired(g.now()) {
			return respondError(c, apperr.ErrAccountBanned)
		}

		now := g.now()
		account.LastLoginAttempt = &now
		if err := g.accounts.UpdateLoginState(c.Context(), account); err != nil {
			return respondError(c, err)
		}

		c.Locals(accountLocalKey, account)
		return c.Next()
	}
}

// AccountFromCtx returns the account the gate attached, or nil on public
// routes.
func AccountFromCtx(c *fiber.Ctx) *domain.Account {
	account, _ := c.Locals(accountLocalKey).(*domain.Account)
	return account
}

func extractToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Cookies("access_token")
}

func scopeAllowed(required, held []string) bool {
	for _, r := range required {
		for _, h := range held {
			if r == h {
				return true
			}
		}
	}
	return false
}
