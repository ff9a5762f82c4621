package dto

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email" example:"student@college.ac.in"`
	Password    string `json:"password" binding:"required,min=8" example:"s3cretPass1"`
	DisplayName string `json:"displayName" binding:"required,min=2,max=100" example:"Rahul Kumar"`
}

// LoginRequest is the payload for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries an opaque refresh token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn" example:"3600"` // seconds
	TokenType    string `json:"tokenType" example:"Bearer"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
