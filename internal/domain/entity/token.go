// Package entity contains the data transfer objects exchanged with the
// movie-match backend. They are plain decoded wire models with no behavior
// beyond convenience accessors; instances are replaced wholesale on re-fetch.
package entity

// TokenPair is the access + refresh token pair issued by the auth backend.
// Both tokens are always stored and cleared together.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Credentials carries a sign-in request. Transient; never persisted
// beyond the request that consumes it.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUpRequest carries a sign-up request.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest is the body of a token refresh call.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
