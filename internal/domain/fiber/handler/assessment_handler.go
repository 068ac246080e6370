package handler

import (
	"github.com/fadilmartias/ai-assessment/internal/dto"
	"github.com/fadilmartias/ai-assessment/internal/usecase"
	"github.com/fadilmartias/ai-assessment/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AssessmentHandler struct {
	uc *usecase.AssessmentUsecase
}

func NewAssessmentHandler(uc *usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterRoutes(app *fiber.App) {
	minQualification := app.Group("/api/min-qualification")
	minQualification.Post("/assess", h.AssessMinQualification)
	minQualification.Post("/batch-assess", h.BatchMinQualification)
	minQualification.Post("/preview", h.PreviewMinQualification)

	formal := app.Group("/api/formal-assessment")
	formal.Post("/assess", h.AssessFormal)
	formal.Post("/batch-assess", h.BatchFormal)
	formal.Post("/preview", h.PreviewFormal)
}

func (h *AssessmentHandler) AssessMinQualification(c *fiber.Ctx) error {
	var req dto.AssessRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	report, err := h.uc.AssessMinQualification(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.Data(c, fiber.StatusOK, report)
}

func (h *AssessmentHandler) BatchMinQualification(c *fiber.Ctx) error {
	var req dto.BatchAssessRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	resp, err := h.uc.BatchMinQualification(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.Data(c, fiber.StatusOK, resp)
}

func (h *AssessmentHandler) PreviewMinQualification(c *fiber.Ctx) error {
	var req dto.PreviewRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	resp, err := h.uc.PreviewMinQualification(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.Data(c, fiber.StatusOK, resp)
}

func (h *AssessmentHandler) AssessFormal(c *fiber.Ctx) error {
	var req dto.AssessRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	report, err := h.uc.AssessFormal(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.Data(c, fiber.StatusOK, report)
}

func (h *AssessmentHandler) BatchFormal(c *fiber.Ctx) error {
	var req dto.BatchAssessRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	resp, err := h.uc.BatchFormal(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.Data(c, fiber.StatusOK, resp)
}

func (h *AssessmentHandler) PreviewFormal(c *fiber.Ctx) error {
	var req dto.PreviewRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	resp, err := h.uc.PreviewFormal(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.Data(c, fiber.StatusOK, resp)
}
