package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/identity"
)

// RegisterRequest represents a request to create a user
type RegisterRequest struct {
	Username string        `json:"username" binding:"required,min=3,max=50"`
	Email    string        `json:"email" binding:"required,email"`
	Password string        `json:"password" binding:"required,min=8,max=72"`
	FullName string        `json:"nombre" binding:"max=200"`
	Role     identity.Role `json:"rol" binding:"omitempty,oneof=admin vendedor"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID     `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	FullName  string        `json:"nombre"`
	Role      identity.Role `json:"rol"`
	Active    bool          `json:"activo"`
	CreatedAt time.Time     `json:"fecha_alta"`
}

// LoginResponse bundles the authenticated user with its tokens
type LoginResponse struct {
	User                  UserResponse `json:"user"`
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
}

// ToUserResponse converts a user to its API representation
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}
