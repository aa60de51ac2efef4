package response

import (
	"product-catalog/internal/data/entity"
)

const TokenTypeBearer = "Bearer"

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type UserResponse struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Role  entity.UserRole `json:"role"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  user.Role,
	}
}
