package dto

// TokenResponse is the login/refresh body. The refresh token travels only in
// an HttpOnly cookie, so it is excluded from JSON.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"-"`
}
