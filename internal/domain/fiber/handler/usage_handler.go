package handler

import (
	"strconv"

	"github.com/fadilmartias/ai-assessment/internal/usecase"
	"github.com/fadilmartias/ai-assessment/internal/util"
	"github.com/gofiber/fiber/v2"
)

type UsageHandler struct {
	ledger *usecase.UsageLedger
}

func NewUsageHandler(ledger *usecase.UsageLedger) *UsageHandler {
	return &UsageHandler{ledger: ledger}
}

func (h *UsageHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/usage/stats", h.Stats)
}

// Stats aggregates the usage ledger, optionally narrowed by ?job_id=.
func (h *UsageHandler) Stats(c *fiber.Ctx) error {
	var jobID uint
	if raw := c.Query("job_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return handleError(c, util.NewFormError("Invalid job_id", map[string]string{"job_id": "must be a positive integer"}))
		}
		jobID = uint(id)
	}

	stats, err := h.ledger.Stats(c.UserContext(), jobID)
	if err != nil {
		return handleError(c, err)
	}
	body := fiber.Map{"success": true, "stats": stats}
	if jobID != 0 {
		body["job_id"] = jobID
	}
	return util.Data(c, fiber.StatusOK, body)
}
