package dto

// RefreshInput is filled from the refresh_token cookie, never from the body.
type RefreshInput struct {
	RefreshToken string `json:"-"`
}
