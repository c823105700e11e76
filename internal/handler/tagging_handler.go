package handler

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/llmath/problems-api/internal/dto"
	"github.com/llmath/problems-api/internal/service"
	"github.com/llmath/problems-api/internal/utils"
)

// TaggingHandler wires both tagging schemes: the current "type" endpoints
// and the historical "name" endpoints.
type TaggingHandler struct {
	types     service.TaggingService
	names     service.TaggingService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTaggingHandler constructs the handler.
func NewTaggingHandler(types, names service.TaggingService, validator *validator.Validate, logger zerolog.Logger) *TaggingHandler {
	return &TaggingHandler{
		types:     types,
		names:     names,
		validator: validator,
		logger:    logger.With().Str("component", "tagging_handler").Logger(),
	}
}

// Register attaches tagging endpoints to the router group.
func (h *TaggingHandler) Register(router fiber.Router) {
	router.Post("/assign_type", h.assignType)
	router.Get("/get_problems_by_type", h.problemsByType)
	router.Get("/types", h.listTypes)

	router.Post("/give_a_name", h.assignName)
	router.Get("/get_problems_by_name", h.problemsByName)
	router.Get("/names", h.listNames)

	debug := router.Group("/debug")
	debug.Get("/all_type_bindings", h.allTypeBindings)
	debug.Get("/all_types_with_ids", h.allTypesWithIDs)
}

func (h *TaggingHandler) assignType(c *fiber.Ctx) error {
	var payload dto.AssignTypeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return mapServiceError(c, h.logger, err)
	}

	confirmation, err := h.types.Assign(c.Context(), payload.TypeName, payload.ProblemID)
	if err != nil {
		return mapServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "type assigned", confirmation)
}

func (h *TaggingHandler) problemsByType(c *fiber.Ctx) error {
	problemType := strings.TrimSpace(c.Query("problem_type"))

	problems, err := h.types.ProblemsByTag(c.Context(), problemType)
	if err != nil {
		return mapServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "problems retrieved", problems)
}

func (h *TaggingHandler) listTypes(c *fiber.Ctx) error {
	values, err := h.types.ListValues(c.Context())
	if err != nil {
		return mapServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "types retrieved", values)
}

func (h *TaggingHandler) assignName(c *fiber.Ctx) error {
	var payload dto.AssignNameRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return mapServiceError(c, h.logger, err)
	}

	confirmation, err := h.names.Assign(c.Context(), payload.Name, payload.ProblemID)
	if err != nil {
		return mapServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "name assigned", confirmation)
}

func (h *TaggingHandler) problemsByName(c *fiber.Ctx) error {
	problemName := strings.TrimSpace(c.Query("problem_name"))

	problems, err := h.names.ProblemsByTag(c.Context(), problemName)
	if err != nil {
		return mapServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "problems retrieved", problems)
}

func (h *TaggingHandler) listNames(c *fiber.Ctx) error {
	values, err := h.names.ListValues(c.Context())
	if err != nil {
		return mapServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "names retrieved", values)
}

func (h *TaggingHandler) allTypeBindings(c *fiber.Ctx) error {
	bindings, err := h.types.ListBindings(c.Context())
	if err != nil {
		return mapServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "type bindings retrieved", bindings)
}

func (h *TaggingHandler) allTypesWithIDs(c *fiber.Ctx) error {
	tags, err := h.types.ListTagsWithIDs(c.Context())
	if err != nil {
		return mapServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "types retrieved", tags)
}
