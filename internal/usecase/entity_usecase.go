package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/fadilmartias/ai-assessment/internal/dto"
	"github.com/fadilmartias/ai-assessment/internal/model"
	"github.com/fadilmartias/ai-assessment/internal/repository"
	"gorm.io/gorm"
)

type EntityUsecase struct {
	repo *repository.EntityRepository
}

func NewEntityUsecase(repo *repository.EntityRepository) *EntityUsecase {
	return &EntityUsecase{repo: repo}
}

func (uc *EntityUsecase) List(ctx context.Context) ([]model.Entity, error) {
	entities, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if entities == nil {
		entities = []model.Entity{}
	}
	return entities, nil
}

func (uc *EntityUsecase) Get(ctx context.Context, id uint) (*model.Entity, error) {
	entity, err := uc.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Entity not found")
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (uc *EntityUsecase) Create(ctx context.Context, req dto.CreateEntityRequest) (*model.Entity, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, newError(ErrValidation, "name is required")
	}
	taken, err := uc.repo.NameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, newError(ErrConflict, "Entity with name %q already exists", name)
	}

	entity := &model.Entity{Name: name, Description: req.Description}
	if err := uc.repo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (uc *EntityUsecase) Update(ctx context.Context, id uint, req dto.UpdateEntityRequest) (*model.Entity, error) {
	entity, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, newError(ErrValidation, "name cannot be empty")
		}
		taken, err := uc.repo.NameTaken(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, newError(ErrConflict, "Entity with name %q already exists", name)
		}
		entity.Name = name
	}
	if req.Description != nil {
		entity.Description = *req.Description
	}

	if err := uc.repo.Update(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Delete removes an entity that owns no jobs.
func (uc *EntityUsecase) Delete(ctx context.Context, id uint) error {
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}
	n, err := uc.repo.CountJobs(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return newError(ErrConflict, "Cannot delete entity with %d existing job(s)", n)
	}
	return uc.repo.Delete(ctx, id)
}
