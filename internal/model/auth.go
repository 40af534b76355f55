package model

type DriverUser struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	AuthProvider string `json:"authProvider,omitempty"`
	Name         string `json:"name"`
	Enabled      bool   `json:"enabled"`
	Role         string `json:"role,omitempty"`
	Available    bool   `json:"available"`
	Phone        string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	DeviceID string `json:"deviceId,omitempty"`
}

type LoginResponse struct {
	User         DriverUser `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse may omit the refresh token, in which case the previous one stays valid.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type ProfileUpdate struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	CurrentPassword *string `json:"currentPassword,omitempty" validate:"required_with=NewPassword"`
	NewPassword     *string `json:"newPassword,omitempty" validate:"omitempty,min=8"`
}

type ProfileResponse struct {
	User DriverUser `json:"user"`
}
