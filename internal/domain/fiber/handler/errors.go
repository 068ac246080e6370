package handler

import (
	"errors"

	"github.com/fadilmartias/ai-assessment/internal/dto"
	"github.com/fadilmartias/ai-assessment/internal/usecase"
	"github.com/fadilmartias/ai-assessment/internal/util"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps the usecase error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var formErr *util.FormError
	switch {
	case errors.As(err, &formErr),
		errors.Is(err, dto.ErrInvalidJobID),
		errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrConflict):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrJobNotFound), errors.Is(err, usecase.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrNoCriteria):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrEmbeddingUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func handleError(c *fiber.Ctx, err error) error {
	format := util.ErrorResponseFormat{Code: statusFor(err), Message: "Internal server error"}

	var ucErr *usecase.Error
	var formErr *util.FormError
	switch {
	case errors.As(err, &formErr):
		format.Message = formErr.Message
		format.Details = formErr.Errors
	case errors.As(err, &ucErr):
		format.Message = ucErr.Msg
	case errors.Is(err, dto.ErrInvalidJobID):
		format.Message = err.Error()
	}
	return util.ErrorResponse(c, format, err)
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		if errors.Is(err, dto.ErrInvalidJobID) {
			return err
		}
		return util.NewFormError("Invalid JSON body", map[string]string{"body": err.Error()})
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, util.NewFormError("Invalid "+name, map[string]string{name: "must be a positive integer"})
	}
	return uint(id), nil
}
