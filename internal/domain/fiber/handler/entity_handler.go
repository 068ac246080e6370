package handler

import (
	"github.com/fadilmartias/ai-assessment/internal/dto"
	"github.com/fadilmartias/ai-assessment/internal/usecase"
	"github.com/fadilmartias/ai-assessment/internal/util"
	"github.com/gofiber/fiber/v2"
)

type EntityHandler struct {
	uc *usecase.EntityUsecase
}

func NewEntityHandler(uc *usecase.EntityUsecase) *EntityHandler {
	return &EntityHandler{uc: uc}
}

func (h *EntityHandler) RegisterRoutes(app *fiber.App) {
	entities := app.Group("/api/entities")
	entities.Get("/", h.List)
	entities.Post("/", h.Create)
	entities.Get("/:id", h.Get)
	entities.Put("/:id", h.Update)
	entities.Delete("/:id", h.Delete)
}

func (h *EntityHandler) List(c *fiber.Ctx) error {
	entities, err := h.uc.List(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get entities",
		Data:    entities,
	})
}

func (h *EntityHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEntityRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	entity, err := h.uc.Create(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Entity created successfully",
		Data:    entity,
	})
}

func (h *EntityHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	entity, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get entity",
		Data:    entity,
	})
}

func (h *EntityHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	var req dto.UpdateEntityRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	entity, err := h.uc.Update(c.UserContext(), id, req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Entity updated successfully",
		Data:    entity,
	})
}

func (h *EntityHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Entity deleted successfully",
	})
}
