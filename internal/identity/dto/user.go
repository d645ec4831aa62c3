package dto

import "time"

type AccountOutput struct {
	ID               int64     `json:"id"`
	Email            *string   `json:"email,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	Roles            []string  `json:"roles"`
	IsEmailConfirmed bool      `json:"is_email_confirmed"`
	IsPhoneConfirmed bool      `json:"is_phone_confirmed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BanInput is the manual admin ban; duration is admin-chosen, unlike the
// fixed lockout window.
type BanInput struct {
	Minutes int `json:"minutes" validate:"required,min=1"`
}

type RoleInput struct {
	Role string `json:"role" validate:"required,uppercase"`
}

type ChangeEmailInput struct {
	NewEmail string `json:"new_email" validate:"required,email"`
}

type RequestPasswordResetInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=50,containsany=0123456789"`
}
