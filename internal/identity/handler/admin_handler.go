package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/OasisOfCleanCode/identity-service/internal/identity/domain"
	"github.com/OasisOfCleanCode/identity-service/internal/identity/dto"
)

func accountIDParam(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// BanUser applies a manual ban with an admin-chosen duration and revokes the
// account's tokens.
func (h *AuthHandler) BanUser(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return status(c, fiber.StatusBadRequest, "invalid account id")
	}

	var input dto.BanInput
	if err := c.BodyParser(&input); err != nil {
		return status(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return status(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.userService.BanAccount(c.Context(), id, time.Duration(input.Minutes)*time.Minute); err != nil {
		return respondError(c, err)
	}

	c.Set(HeaderSuccessCode, CodeAdminActionCompleted)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "account banned"})
}

func (h *AuthHandler) UnbanUser(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return status(c, fiber.StatusBadRequest, "invalid account id")
	}

	if err := h.userService.UnbanAccount(c.Context(), id); err != nil {
		return respondError(c, err)
	}

	c.Set(HeaderSuccessCode, CodeAdminActionCompleted)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "account unbanned"})
}

// ForceLogout revokes every token of the given account.
func (h *AuthHandler) ForceLogout(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return status(c, fiber.StatusBadRequest, "invalid account id")
	}

	if err := h.userService.ForceLogout(c.Context(), id); err != nil {
		return respondError(c, err)
	}

	c.Set(HeaderSuccessCode, CodeAdminActionCompleted)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "sessions revoked"})
}

// ListRoles returns the roles currently held by the account.
func (h *AuthHandler) ListRoles(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return status(c, fiber.StatusBadRequest, "invalid account id")
	}

	account, err := h.userService.GetAccount(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	roles := make([]string, 0, len(account.Roles))
	for _, r := range account.Roles {
		roles = append(roles, string(r))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": account.ID, "roles": roles})
}

func (h *AuthHandler) GrantRole(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return status(c, fiber.StatusBadRequest, "invalid account id")
	}

	var input dto.RoleInput
	if err := c.BodyParser(&input); err != nil {
		return status(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return status(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.userService.GrantRole(c.Context(), id, domain.Role(input.Role)); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "role granted"})
}

func (h *AuthHandler) RevokeRole(c *fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return status(c, fiber.StatusBadRequest, "invalid account id")
	}

	var input dto.RoleInput
	if err := c.BodyParser(&input); err != nil {
		return status(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := validate.Struct(input); err != nil {
		return status(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.userService.RevokeRole(c.Context(), id, domain.Role(input.Role)); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "role revoked"})
}
