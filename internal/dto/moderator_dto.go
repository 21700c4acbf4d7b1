package dto

import (
	"time"

	"github.com/noah-isme/platform-admin-api/internal/models"
)

// ModeratorCreateRequest captures the payload for creating a moderator account.
type ModeratorCreateRequest struct {
	Username      string `json:"username" validate:"required,min=3,max=150"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	AssignedModel string `json:"assigned_model" validate:"omitempty,max=255"`
}

// ModeratorUpdateRequest captures partial update payloads. A nil Password
// leaves the stored credential untouched.
type ModeratorUpdateRequest struct {
	Username      *string `json:"username" validate:"omitempty,min=3,max=150"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Password      *string `json:"password" validate:"omitempty,min=6"`
	AssignedModel *string `json:"assigned_model" validate:"omitempty,max=255"`
}

// ModeratorListRequest defines filters for listing moderator accounts.
type ModeratorListRequest struct {
	Page     int
	PageSize int
	Search   string
}

// ModeratorResponse serializes a moderator account. The password hash is
// deliberately absent.
type ModeratorResponse struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	AssignedModel string    `json:"assigned_model"`
	IsModerator   bool      `json:"is_moderator"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ModeratorListResponse wraps a paginated moderator listing.
type ModeratorListResponse struct {
	Items      []ModeratorResponse `json:"items"`
	Pagination PaginationMeta      `json:"pagination"`
}

// LoginRequest is the moderator login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token and the authenticated moderator.
type LoginResponse struct {
	Token string            `json:"token"`
	User  ModeratorResponse `json:"user"`
}

// NewModeratorResponse converts a moderator model into a DTO.
func NewModeratorResponse(moderator models.Moderator) ModeratorResponse {
	return ModeratorResponse{
		ID:            moderator.ID,
		Username:      moderator.Username,
		Email:         moderator.Email,
		AssignedModel: moderator.AssignedModel,
		IsModerator:   moderator.IsModerator,
		CreatedAt:     moderator.CreatedAt,
		UpdatedAt:     moderator.UpdatedAt,
	}
}
