package dto

// RegisterInput requires a password with at least one digit and at least one
// of email/phone (checked in the service, not expressible as a field tag).
type RegisterInput struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
	Password string `json:"password" validate:"required,min=8,max=50,containsany=0123456789"`
}
