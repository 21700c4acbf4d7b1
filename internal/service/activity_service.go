package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/noah-isme/platform-admin-api/internal/dto"
	"github.com/noah-isme/platform-admin-api/internal/models"
	"github.com/noah-isme/platform-admin-api/internal/observability"
	"github.com/noah-isme/platform-admin-api/internal/repository"
)

// ActivityType enumerates the closed set of activity log categories.
type ActivityType string

// Activity log categories. The set is closed: Log rejects anything else, so a
// typo can never create an unqueryable category.
const (
	ActivityUserRegistration ActivityType = "user_registration"
	ActivityPayment          ActivityType = "payment"
	ActivitySubscription     ActivityType = "subscription"
	ActivityModelPurchase    ActivityType = "model_purchase"
	ActivityModeratorCreated ActivityType = "moderator_created"
	ActivityMessageFlagged   ActivityType = "message_flagged"
)

// Valid reports whether the type belongs to the known category set.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityUserRegistration, ActivityPayment, ActivitySubscription,
		ActivityModelPurchase, ActivityModeratorCreated, ActivityMessageFlagged:
		return true
	}
	return false
}

// ErrUnknownActivityType is returned when a write names a category outside the closed set.
var ErrUnknownActivityType = errors.New("unknown activity type")

// ActivityEntry captures the details required to persist an activity record.
type ActivityEntry struct {
	Type      ActivityType
	Title     string
	Message   string
	UserID    *uint
	RelatedID *uint
	Metadata  map[string]interface{}
}

// ActivityPublisher receives freshly persisted records for live fan-out.
type ActivityPublisher interface {
	Publish(entry dto.ActivityResponse)
}

// ActivityRecorder is the narrow write interface other services depend on.
type ActivityRecorder interface {
	RecordModeratorCreated(ctx context.Context, moderatorID uint, moderatorEmail string, createdByAdminID uint) (dto.ActivityResponse, error)
}

// ActivityService exposes methods to persist and query activity log records.
type ActivityService interface {
	ActivityRecorder
	Log(ctx context.Context, entry ActivityEntry) (dto.ActivityResponse, error)
	RecordUserRegistration(ctx context.Context, userID uint, userEmail string) (dto.ActivityResponse, error)
	RecordPayment(ctx context.Context, userID uint, userEmail string, amount float64, paymentType string, paymentID uint) (dto.ActivityResponse, error)
	RecordSubscription(ctx context.Context, userID uint, userEmail string, plan string, amount float64, paymentID uint) (dto.ActivityResponse, error)
	RecordModelPurchase(ctx context.Context, userID uint, userEmail string, modelName string, amount float64, orderID uint) (dto.ActivityResponse, error)
	RecordMessageFlagged(ctx context.Context, messageID uint, userID uint, userEmail string, reason string) (dto.ActivityResponse, error)
	List(ctx context.Context, req dto.ActivityListRequest) (dto.ActivityListResponse, error)
	Create(ctx context.Context, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error)
}

type activityService struct {
	repo      repository.ActivityLogRepository
	validator *validator.Validate
	publisher ActivityPublisher
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewActivityService constructs the activity log service. The publisher may be
// nil when no live stream is wired.
func NewActivityService(repo repository.ActivityLogRepository, validator *validator.Validate, publisher ActivityPublisher, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "activity_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/platform-admin-api/internal/service/activity"),
	}
}

// Log persists a generic activity record. Each call commits on its own; an
// entry written here survives even if the operation that triggered it later
// fails.
func (s *activityService) Log(ctx context.Context, entry ActivityEntry) (dto.ActivityResponse, error) {
	if !entry.Type.Valid() {
		observability.ActivityWrites().WithLabelValues(string(entry.Type), "rejected").Inc()
		return dto.ActivityResponse{}, fmt.Errorf("%w: %q", ErrUnknownActivityType, entry.Type)
	}
	if strings.TrimSpace(entry.Title) == "" {
		return dto.ActivityResponse{}, fmt.Errorf("title is required")
	}
	if strings.TrimSpace(entry.Message) == "" {
		return dto.ActivityResponse{}, fmt.Errorf("message is required")
	}

	ctx, span := s.tracer.Start(ctx, "activity.log",
		trace.WithAttributes(attribute.String("activity.type", string(entry.Type))))
	defer span.End()

	model := models.ActivityLog{
		ActivityType: string(entry.Type),
		Title:        strings.TrimSpace(entry.Title),
		Message:      strings.TrimSpace(entry.Message),
		UserID:       entry.UserID,
		RelatedID:    entry.RelatedID,
		Metadata:     jsonMapFromMetadata(entry.Metadata),
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		observability.ActivityWrites().WithLabelValues(string(entry.Type), "error").Inc()
		s.logger.Error().Err(err).Str("activity_type", string(entry.Type)).Msg("failed to persist activity record")
		return dto.ActivityResponse{}, err
	}

	observability.ActivityWrites().WithLabelValues(string(entry.Type), "ok").Inc()

	response := dto.NewActivityResponse(model)
	if s.publisher != nil {
		s.publisher.Publish(response)
	}

	return response, nil
}

func (s *activityService) RecordUserRegistration(ctx context.Context, userID uint, userEmail string) (dto.ActivityResponse, error) {
	return s.Log(ctx, ActivityEntry{
		Type:    ActivityUserRegistration,
		Title:   "New User Registration",
		Message: fmt.Sprintf("User %s joined the platform", userEmail),
		UserID:  &userID,
	})
}

func (s *activityService) RecordPayment(ctx context.Context, userID uint, userEmail string, amount float64, paymentType string, paymentID uint) (dto.ActivityResponse, error) {
	return s.Log(ctx, ActivityEntry{
		Type:      ActivityPayment,
		Title:     fmt.Sprintf("New %s Payment", titleCase(paymentType)),
		Message:   fmt.Sprintf("User %s made a payment of $%.2f", userEmail, amount),
		UserID:    &userID,
		RelatedID: &paymentID,
		Metadata: map[string]interface{}{
			"amount":       amount,
			"payment_type": paymentType,
			"payment_id":   paymentID,
		},
	})
}

func (s *activityService) RecordSubscription(ctx context.Context, userID uint, userEmail string, plan string, amount float64, paymentID uint) (dto.ActivityResponse, error) {
	return s.Log(ctx, ActivityEntry{
		Type:      ActivitySubscription,
		Title:     "New Subscription",
		Message:   fmt.Sprintf("User %s subscribed to %s plan for $%.2f", userEmail, plan, amount),
		UserID:    &userID,
		RelatedID: &paymentID,
		Metadata: map[string]interface{}{
			"plan":       plan,
			"amount":     amount,
			"payment_id": paymentID,
		},
	})
}

func (s *activityService) RecordModelPurchase(ctx context.Context, userID uint, userEmail string, modelName string, amount float64, orderID uint) (dto.ActivityResponse, error) {
	return s.Log(ctx, ActivityEntry{
		Type:      ActivityModelPurchase,
		Title:     "Model Purchase",
		Message:   fmt.Sprintf("User %s purchased %s for $%.2f", userEmail, modelName, amount),
		UserID:    &userID,
		RelatedID: &orderID,
		Metadata: map[string]interface{}{
			"model_name": modelName,
			"amount":     amount,
			"order_id":   orderID,
		},
	})
}

func (s *activityService) RecordModeratorCreated(ctx context.Context, moderatorID uint, moderatorEmail string, createdByAdminID uint) (dto.ActivityResponse, error) {
	return s.Log(ctx, ActivityEntry{
		Type:      ActivityModeratorCreated,
		Title:     "New Moderator Added",
		Message:   fmt.Sprintf("Moderator %s was added to the platform", moderatorEmail),
		UserID:    &moderatorID,
		RelatedID: &createdByAdminID,
		Metadata: map[string]interface{}{
			"moderator_email":     moderatorEmail,
			"created_by_admin_id": createdByAdminID,
		},
	})
}

func (s *activityService) RecordMessageFlagged(ctx context.Context, messageID uint, userID uint, userEmail string, reason string) (dto.ActivityResponse, error) {
	cleanReason := strings.TrimSpace(s.sanitizer.Sanitize(reason))

	return s.Log(ctx, ActivityEntry{
		Type:      ActivityMessageFlagged,
		Title:     "Message Flagged",
		Message:   fmt.Sprintf("Message from %s was flagged for review", userEmail),
		UserID:    &userID,
		RelatedID: &messageID,
		Metadata: map[string]interface{}{
			"reason":     cleanReason,
			"message_id": messageID,
		},
	})
}

func (s *activityService) List(ctx context.Context, req dto.ActivityListRequest) (dto.ActivityListResponse, error) {
	filter := repository.ActivityLogFilter{
		Page:         req.Page,
		PageSize:     req.PageSize,
		ActivityType: strings.TrimSpace(req.ActivityType),
	}
	if req.UserID > 0 {
		filter.UserID = &req.UserID
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ActivityListResponse{}, err
	}

	responses := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewActivityResponse(entry))
	}

	return dto.ActivityListResponse{
		Items:      responses,
		Pagination: paginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *activityService) Create(ctx context.Context, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	return s.Log(ctx, ActivityEntry{
		Type:      ActivityType(payload.ActivityType),
		Title:     payload.Title,
		Message:   payload.Message,
		UserID:    payload.UserID,
		RelatedID: payload.RelatedID,
		Metadata:  payload.Metadata,
	})
}

func jsonMapFromMetadata(metadata map[string]interface{}) datatypes.JSONMap {
	data := datatypes.JSONMap{}
	for key, value := range metadata {
		data[key] = value
	}
	return data
}

// titleCase upper-cases the first letter of every space-separated word,
// matching how payment categories are labelled on the dashboard.
func titleCase(input string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
