package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/OasisOfCleanCode/identity-service/internal/identity/dto"
	apperr "github.com/OasisOfCleanCode/identity-service/internal/errors"
)

// Application success codes surfaced in the X-Success-Code header for caller
// telemetry.
const (
	HeaderSuccessCode        = "X-Success-Code"
	CodeEmailConfirmed       = "2032"
	CodePasswordReset        = "2033"
	CodeAdminActionCompleted = "2003"
)

// respondTokens writes the token body and the cookie contract: access and
// refresh tokens HttpOnly, csrf_token readable by the frontend.
func respondTokens(c *fiber.Ctx, status int, tokens *dto.TokenResponse, refreshTTL time.Duration) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    tokens.AccessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
	if tokens.RefreshToken != "" {
		c.Cookie(&fiber.Cookie{
			Name:     "refresh_token",
			Value:    tokens.RefreshToken,
			HTTPOnly: true,
			Secure:   true,
			SameSite: fiber.CookieSameSiteNoneMode,
			Expires:  time.Now().Add(refreshTTL),
		})
	}
	c.Cookie(&fiber.Cookie{
		Name:     "csrf_token",
		Value:    csrfToken(),
		HTTPOnly: false, // the frontend echoes it back in a header
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})

	return c.Status(status).JSON(tokens)
}

func clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{"access_token", "refresh_token", "csrf_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: name != "csrf_token",
			Secure:   true,
			SameSite: fiber.CookieSameSiteNoneMode,
		})
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set("Pragma", "no-cache")
}

func csrfToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// respondError maps core failure kinds to transport codes. Account-not-found
// and wrong-password collapse into one external answer.
func respondError(c *fiber.Ctx, err error) error {
	if le, ok := apperr.IsLockout(err); ok {
		return c.Status(fiber.StatusLocked).JSON(fiber.Map{
			"error":       "account temporarily locked due to too many failed login attempts",
			"retry_after": le.RemainingMinutes(),
		})
	}

	switch {
	case errors.Is(err, apperr.ErrInvalidCredentials), errors.Is(err, apperr.ErrAccountNotFound):
		return status(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, apperr.ErrIdentifierInvalid):
		return status(c, fiber.StatusBadRequest, "identifier must be a valid email or phone number")
	case errors.Is(err, apperr.ErrEmailAlreadyInUse), errors.Is(err, apperr.ErrPhoneAlreadyInUse):
		return status(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrForbiddenScope):
		return status(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrTokenInvalid), errors.Is(err, apperr.ErrSubjectMissing),
		errors.Is(err, apperr.ErrTokenExpired), errors.Is(err, apperr.ErrTokenRevoked):
		return status(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrAccountBanned):
		return status(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrAccountMissing):
		return status(c, fiber.StatusNotFound, "account not found")
	case errors.Is(err, apperr.ErrVerificationNotFound):
		return status(c, fiber.StatusNotFound, "verification token not found")
	case errors.Is(err, apperr.ErrVerificationExpiredOrUsed):
		return status(c, fiber.StatusGone, "verification token expired or already used")
	case errors.Is(err, apperr.ErrTokenGeneration):
		slog.Error("token issuance failed", "path", c.Path(), "err", err)
		return status(c, fiber.StatusInternalServerError, "failed to issue tokens")
	default:
		// Storage and other unexpected failures: log with context, hide detail.
		slog.Error("request failed", "path", c.Path(), "err", err)
		return status(c, fiber.StatusInternalServerError, "internal error")
	}
}

func status(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
