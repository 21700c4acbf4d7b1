package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/platform-admin-api/internal/dto"
	"github.com/noah-isme/platform-admin-api/internal/service"
	"github.com/noah-isme/platform-admin-api/internal/utils"
)

// AdminModeratorHandler wires moderator management endpoints.
type AdminModeratorHandler struct {
	service service.ModeratorService
	logger  zerolog.Logger
}

// NewAdminModeratorHandler constructs the handler.
func NewAdminModeratorHandler(service service.ModeratorService, logger zerolog.Logger) *AdminModeratorHandler {
	return &AdminModeratorHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_moderator_handler").Logger(),
	}
}

// Register attaches moderator admin routes to the router group.
func (h *AdminModeratorHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *AdminModeratorHandler) list(c *fiber.Ctx) error {
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
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}

	req := dto.ModeratorListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}

	response, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list moderators")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list moderators")
	}

	return utils.SendSuccess(c, "moderators", response)
}

func (h *AdminModeratorHandler) create(c *fiber.Ctx) error {
	var payload dto.ModeratorCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	createdBy := userIDFromContext(c)
	response, err := h.service.Create(c.Context(), payload, createdBy)
	if err != nil {
		if isValidationError(err) {
			return utils.SendValidationError(c, "invalid moderator payload", validationDetail(err))
		}
		if errors.Is(err, service.ErrModeratorExists) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create moderator")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create moderator")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "moderator created successfully", response)
}

func (h *AdminModeratorHandler) get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid moderator id")
	}

	response, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrModeratorNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "moderator not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch moderator")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch moderator")
	}

	return utils.SendSuccess(c, "moderator", response)
}

func (h *AdminModeratorHandler) update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid moderator id")
	}

	var payload dto.ModeratorUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Update(c.Context(), uint(id), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendValidationError(c, "invalid moderator payload", validationDetail(err))
		}
		if errors.Is(err, service.ErrModeratorNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "moderator not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update moderator")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update moderator")
	}

	return utils.SendSuccess(c, "moderator updated successfully", response)
}

func (h *AdminModeratorHandler) delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid moderator id")
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrModeratorNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "moderator not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete moderator")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete moderator")
	}

	return utils.SendSuccess(c, "moderator deleted successfully", nil)
}
