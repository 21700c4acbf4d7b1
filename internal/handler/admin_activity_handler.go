package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/platform-admin-api/internal/dto"
	"github.com/noah-isme/platform-admin-api/internal/service"
	"github.com/noah-isme/platform-admin-api/internal/utils"
)

// AdminActivityHandler exposes activity log endpoints.
type AdminActivityHandler struct {
	activities service.ActivityService
	recent     service.RecentActivityService
	logger     zerolog.Logger
}

// NewAdminActivityHandler constructs the handler.
func NewAdminActivityHandler(activities service.ActivityService, recent service.RecentActivityService, logger zerolog.Logger) *AdminActivityHandler {
	return &AdminActivityHandler{
		activities: activities,
		recent:     recent,
		logger:     logger.With().Str("component", "admin_activity_handler").Logger(),
	}
}

// Register attaches activity log routes to the router group.
func (h *AdminActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/recent", h.listRecent)
}

func (h *AdminActivityHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if page <= 0 {
		page = 1
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	if pageSize <= 0 {
		pageSize = 25
	} else if pageSize > 200 {
		pageSize = 200
	}

	userID, err := parseQueryInt(c, "user_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	req := dto.ActivityListRequest{
		Page:         page,
		PageSize:     pageSize,
		ActivityType: c.Query("type"),
	}
	if userID > 0 {
		req.UserID = uint(userID)
	}

	response, err := h.activities.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activity records")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity records")
	}

	return utils.SendSuccess(c, "activity records", response)
}

func (h *AdminActivityHandler) create(c *fiber.Ctx) error {
	var payload dto.ActivityCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := h.activities.Create(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendValidationError(c, "invalid activity payload", validationDetail(err))
		}
		if errors.Is(err, service.ErrUnknownActivityType) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create activity record")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create activity record")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "activity record created", entry)
}

func (h *AdminActivityHandler) listRecent(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	response, err := h.recent.Recent(c.Context(), limit)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch recent activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch recent activity")
	}

	if response.CacheHit {
		c.Set("X-Cache-Hit", "true")
	} else {
		c.Set("X-Cache-Hit", "false")
	}

	return utils.SendSuccess(c, "recent activity", response)
}
