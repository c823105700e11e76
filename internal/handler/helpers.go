package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/llmath/problems-api/internal/middleware"
	"github.com/llmath/problems-api/internal/service"
	"github.com/llmath/problems-api/internal/utils"
)

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// mapServiceError translates service sentinels and validation failures to
// HTTP responses. Anything unrecognized is logged and reported as a 500.
func mapServiceError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrInvalidID):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	case errors.Is(err, service.ErrProblemNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "problem not found")
	case errors.Is(err, service.ErrTagNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "tag not found")
	case errors.Is(err, service.ErrNothingCreated):
		requestLogger(logger, c).Error().Err(err).Msg("create reported no document")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create problem")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
