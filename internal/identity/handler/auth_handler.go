package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/OasisOfCleanCode/identity-service/internal/cache"
	"github.com/OasisOfCleanCode/identity-service/internal/identity/domain"
	"github.com/OasisOfCleanCode/identity-service/internal/identity/dto"
	"github.com/OasisOfCleanCode/identity-service/internal/identity/service"
)

var validate = validator.New()

type AuthHandler struct {
	userService   *service.UserService
	verifications *service.VerificationService
	tokenService  service.TokenGenerator
	gate          *Gate
}

func NewAuthHandler(
	userService *service.UserService,
	verifications *service.VerificationService,
	tokenService service.TokenGenerator,
	gate *Gate,
) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		verifications: verifications,
		tokenService:  tokenService,
		gate:          gate,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return status(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return status(c, fiber.StatusBadRequest, err.Error())
	}

	_, tokens, err := h.userService.Register(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return respondTokens(c, fiber.StatusOK, tokens, h.tokenService.RefreshExpiry())
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return status(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return status(c, fiber.StatusBadRequest, err.Error())
	}

	tokens, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return respondTokens(c, fiber.StatusOK, tokens, h.tokenService.RefreshExpiry())
}

// Refresh reads the refresh token from its HttpOnly cookie only; the body is
// ignored. The refresh cookie is not rotated because the refresh token stays
// active.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return status(c, fiber.StatusUnauthorized, "missing refresh token")
	}

	tokens, err := h.userService.Refresh(c.Context(), dto.RefreshInput{RefreshToken: refreshToken})
	if err != nil {
		return respondError(c, err)
	}

	return respondTokens(c, fiber.StatusOK, tokens, h.tokenService.RefreshExpiry())
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	account := AccountFromCtx(c)

	if err := h.userService.Logout(c.Context(), account); err != nil {
		return respondError(c, err)
	}

	// Seed the ban cache so the revocation bites before the row lookup.
	if tokenString := extractToken(c); tokenString != "" {
		h.gate.banList.Ban(c.Context(), string(domain.TokenKindAccess), account.ID,
			cache.Digest(tokenString), h.tokenService.AccessExpiry())
	}

	clearAuthCookies(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "logged out"})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	account := AccountFromCtx(c)

	roles := make([]string, 0, len(account.Roles))
	for _, r := range account.Roles {
		roles = append(roles, string(r))
	}

	return c.Status(fiber.StatusOK).JSON(dto.AccountOutput{
		ID:               account.ID,
		Email:            account.Email,
		Phone:            account.Phone,
		Roles:            roles,
		IsEmailConfirmed: account.IsEmailConfirmed,
		IsPhoneConfirmed: account.IsPhoneConfirmed,
		CreatedAt:        account.CreatedAt,
		UpdatedAt:        account.UpdatedAt,
	})
}
