package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/platform-admin-api/internal/dto"
	"github.com/noah-isme/platform-admin-api/internal/service"
	"github.com/noah-isme/platform-admin-api/internal/utils"
)

// AuthHandler serves moderator login.
type AuthHandler struct {
	service service.ModeratorService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.ModeratorService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the login route.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid JSON")
	}

	response, err := h.service.Login(c.Context(), payload)
	if err != nil {
		// One message for wrong password, unknown email and non-moderator
		// accounts, so callers cannot probe which one it was.
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusBadRequest, service.ErrInvalidCredentials.Error())
		}
		if isValidationError(err) {
			return utils.SendValidationError(c, "invalid login payload", validationDetail(err))
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
	}

	return utils.SendSuccess(c, "login successful", response)
}
