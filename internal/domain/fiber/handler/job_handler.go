package handler

import (
	"github.com/fadilmartias/ai-assessment/internal/dto"
	"github.com/fadilmartias/ai-assessment/internal/repository"
	"github.com/fadilmartias/ai-assessment/internal/response"
	"github.com/fadilmartias/ai-assessment/internal/usecase"
	"github.com/fadilmartias/ai-assessment/internal/util"
	"github.com/gofiber/fiber/v2"
)

type JobHandler struct {
	uc *usecase.JobUsecase
}

func NewJobHandler(uc *usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(app *fiber.App) {
	jobs := app.Group("/api/jobs")
	jobs.Get("/", h.List)
	jobs.Post("/", h.Create)
	jobs.Get("/search", h.Search)
	jobs.Get("/:id", h.Get)
	jobs.Put("/:id", h.Update)
	jobs.Delete("/:id", h.Delete)
	jobs.Get("/:id/criteria", h.Criteria)
}

func (h *JobHandler) List(c *fiber.Ctx) error {
	filter := repository.JobFilter{
		EntityID: uint(max(c.QueryInt("entity_id", 0), 0)),
		Status:   c.Query("status"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", response.DefaultPageSize),
	}
	jobs, pagination, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get jobs",
		Data:       jobs,
		Pagination: pagination,
	})
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	job, err := h.uc.Create(c.UserContext(), req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Job created successfully",
		Data:    job,
	})
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	job, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get job",
		Data:    job,
	})
}

func (h *JobHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	var req dto.UpdateJobRequest
	if err := parseBody(c, &req); err != nil {
		return handleError(c, err)
	}
	job, err := h.uc.Update(c.UserContext(), id, req)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Job updated successfully",
		Data:    job,
	})
}

func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Job deleted successfully",
	})
}

func (h *JobHandler) Criteria(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	criteria, err := h.uc.Criteria(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get job criteria",
		Data:    criteria,
	})
}

func (h *JobHandler) Search(c *fiber.Ctx) error {
	results, err := h.uc.Search(c.UserContext(), c.Query("q"), c.QueryInt("limit", usecase.DefaultSearchLimit))
	if err != nil {
		return handleError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success search jobs",
		Data:    results,
	})
}
