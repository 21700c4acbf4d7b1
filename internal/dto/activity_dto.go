package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/platform-admin-api/internal/models"
)

// PaginationMeta captures pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// ActivityListRequest defines filters for the paginated activity log listing.
type ActivityListRequest struct {
	Page         int
	PageSize     int
	ActivityType string
	UserID       uint
}

// ActivityCreateRequest captures manual activity log creation payloads.
// The activity type set is closed; anything outside it is rejected.
type ActivityCreateRequest struct {
	ActivityType string                 `json:"activity_type" validate:"required,oneof=user_registration payment subscription model_purchase moderator_created message_flagged"`
	Title        string                 `json:"title" validate:"required,max=200"`
	Message      string                 `json:"message" validate:"required"`
	UserID       *uint                  `json:"user_id"`
	RelatedID    *uint                  `json:"related_id"`
	Metadata     map[string]interface{} `json:"metadata" validate:"omitempty"`
}

// ActivityResponse serializes a single activity log record.
type ActivityResponse struct {
	ID           uint                   `json:"id"`
	ActivityType string                 `json:"activity_type"`
	Title        string                 `json:"title"`
	Message      string                 `json:"message"`
	UserID       *uint                  `json:"user_id"`
	RelatedID    *uint                  `json:"related_id"`
	Metadata     map[string]interface{} `json:"metadata"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ActivityListResponse wraps paginated activity log records.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// RecentActivityResponse is the dashboard top-N feed payload.
type RecentActivityResponse struct {
	Items    []ActivityResponse `json:"items"`
	CacheHit bool               `json:"cache_hit"`
}

// NewActivityResponse converts a model into an activity DTO.
func NewActivityResponse(entry models.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:           entry.ID,
		ActivityType: entry.ActivityType,
		Title:        entry.Title,
		Message:      entry.Message,
		UserID:       entry.UserID,
		RelatedID:    entry.RelatedID,
		Metadata:     metadataFromJSON(entry.Metadata),
		CreatedAt:    entry.CreatedAt,
	}
}

func metadataFromJSON(data datatypes.JSONMap) map[string]interface{} {
	if data == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}(data)
}
