package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/OasisOfCleanCode/identity-service/internal/identity/dto"
)

// VerifyEmail redeems an email-confirmation token from the link path.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return status(c, fiber.StatusBadRequest, "missing token")
	}

	if err := h.verifications.ConfirmEmail(c.Context(), token); err != nil {
		return respondError(c, err)
	}

	c.Set(HeaderSuccessCode, CodeEmailConfirmed)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Email successfully confirmed"})
}

// VerifyEmailChange redeems a change-email token and returns the updated
// account.
func (h *AuthHandler) VerifyEmailChange(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return status(c, fiber.StatusBadRequest, "missing token")
	}

	account, err := h.verifications.ApplyEmailChange(c.Context(), token)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(HeaderSuccessCode, CodeEmailConfirmed)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Email successfully changed",
		"id":      account.ID,
		"email":   account.Email,
	})
}

// RequestEmailChange issues a change-email verification token for the
// authenticated account; the link goes to the new address.
func (h *AuthHandler) RequestEmailChange(c *fiber.Ctx) error {
	var input dto.ChangeEmailInput
	if err := c.BodyParser(&input); err != nil {
		return status(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return status(c, fiber.StatusBadRequest, err.Error())
	}

	account := AccountFromCtx(c)
	if err := h.verifications.RequestEmailChange(c.Context(), account, input.NewEmail); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Verification email sent for change email"})
}

// RequestPasswordReset issues a reset token. The response never discloses
// whether the address exists.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var input dto.RequestPasswordResetInput
	if err := c.BodyParser(&input); err != nil {
		return status(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return status(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.verifications.RequestPasswordReset(c.Context(), input.Email); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Password reset email sent if the address is registered"})
}

// ApplyPasswordReset redeems a reset token together with the new password.
func (h *AuthHandler) ApplyPasswordReset(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return status(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return status(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.verifications.ResetPassword(c.Context(), input.Token, input.Password); err != nil {
		return respondError(c, err)
	}

	c.Set(HeaderSuccessCode, CodePasswordReset)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "The password is successfully updated"})
}
