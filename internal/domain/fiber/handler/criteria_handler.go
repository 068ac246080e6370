package handler

import (
	"github.com/fadilmartias/ai-assessment/internal/dto"
	"github.com/fadilmartias/ai-assessment/internal/usecase"
	"github.com/fadilmartias/ai-assessment/internal/util"
	"github.com/gofiber/fiber/v2"
)

type CriteriaHandler struct {
	uc *usecase.CriteriaUsecase
}

func NewCriteriaHandler(uc *usecase.CriteriaUsecase) *CriteriaHandler {
	return &CriteriaHandler{uc: uc}
}

func (h *CriteriaHandler) RegisterRoutes(app *fiber.App) {
	minQualification := app.Group("/api/criteria/min-qualification")
	minQualification.Post("/", h.CreateMinQualification)
	minQualification.Post("/bulk", h.BulkCreateMinQualification)
	minQualification.Put("/:id", h.UpdateMinQualification)
	minQualification.Delete("/:id", h.DeleteMinQualification)

	formal := app.Group("/api/criteria/formal-assessment")
	formal.Post("/", h.CreateFormal)
	formal.Post("/bulk", h.BulkCreateFormal)
	formal.Put("/:id", h.UpdateFormal)
	formal.Delete("/:id", h.DeleteFormal)
}

func (h *CriteriaHandler) CreateMinQualification(c *fiber.Ctx) error {
	var req dto.CreateMinQualificationCriterionRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	criterion, err := h.uc.CreateMinQualification(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Criterion created successfully",
		Data:    criterion,
	})
}

func (h *CriteriaHandler) BulkCreateMinQualification(c *fiber.Ctx) error {
	var req dto.BulkMinQualificationRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	rows, err := h.uc.BulkCreateMinQualification(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Criteria created successfully",
		Data:    rows,
	})
}

func (h *CriteriaHandler) UpdateMinQualification(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	var req dto.UpdateMinQualificationCriterionRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	criterion, err := h.uc.UpdateMinQualification(c.UserContext(), id, req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Criterion updated successfully",
		Data:    criterion,
	})
}

func (h *CriteriaHandler) DeleteMinQualification(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	if err := h.uc.DeleteMinQualification(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Criterion deleted successfully",
	})
}

func (h *CriteriaHandler) CreateFormal(c *fiber.Ctx) error {
	var req dto.CreateFormalCriterionRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	criterion, err := h.uc.CreateFormal(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Criterion created successfully",
		Data:    criterion,
	})
}

func (h *CriteriaHandler) BulkCreateFormal(c *fiber.Ctx) error {
	var req dto.BulkFormalRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	rows, err := h.uc.BulkCreateFormal(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Criteria created successfully",
		Data:    rows,
	})
}

func (h *CriteriaHandler) UpdateFormal(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	var req dto.UpdateFormalCriterionRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	criterion, err := h.uc.UpdateFormal(c.UserContext(), id, req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Criterion updated successfully",
		Data:    criterion,
	})
}

func (h *CriteriaHandler) DeleteFormal(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	if err := h.uc.DeleteFormal(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Criterion deleted successfully",
	})
}
