package dto

// LoginInput carries an email or phone identifier plus optionally requested
// scopes; the granted set is the intersection with the account's roles.
type LoginInput struct {
	Identifier string   `json:"identifier" validate:"required"`
	Password   string   `json:"password" validate:"required"`
	Scopes     []string `json:"scopes" validate:"omitempty,dive,uppercase"`
}
