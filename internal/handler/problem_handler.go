package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/llmath/problems-api/internal/dto"
	"github.com/llmath/problems-api/internal/service"
	"github.com/llmath/problems-api/internal/utils"
)

// ProblemHandler wires problem HTTP routes.
type ProblemHandler struct {
	service service.ProblemService
	logger  zerolog.Logger
}

// NewProblemHandler constructs the handler.
func NewProblemHandler(service service.ProblemService, logger zerolog.Logger) *ProblemHandler {
	return &ProblemHandler{
		service: service,
		logger:  logger.With().Str("component", "problem_handler").Logger(),
	}
}

// Register attaches problem endpoints to the router group.
func (h *ProblemHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.replace)
	router.Delete("/:id", h.delete)
}

func (h *ProblemHandler) create(c *fiber.Ctx) error {
	var payload dto.ProblemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	problem, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return mapServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "problem created", problem)
}

func (h *ProblemHandler) get(c *fiber.Ctx) error {
	problem, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "problem retrieved", problem)
}

func (h *ProblemHandler) replace(c *fiber.Ctx) error {
	var payload dto.ProblemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	problem, err := h.service.Replace(c.Context(), c.Params("id"), payload)
	if err != nil {
		return mapServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "problem updated", problem)
}

func (h *ProblemHandler) delete(c *fiber.Ctx) error {
	confirmation, err := h.service.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "problem deleted", confirmation)
}

func (h *ProblemHandler) list(c *fiber.Ctx) error {
	problems, err := h.service.List(c.Context())
	if err != nil {
		return mapServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "problems retrieved", problems)
}
