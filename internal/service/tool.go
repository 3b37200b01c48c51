package service

import (
	"context"
	"errors"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/logger"
	"charlymatloc-backend/internal/repository"
)

type toolService struct {
	toolRepo     repository.ToolRepository
	availability AvailabilityService
}

func NewToolService(toolRepo repository.ToolRepository, availability AvailabilityService) ToolService {
	return &toolService{toolRepo: toolRepo, availability: availability}
}

// ListTools returns the catalog. With a period in the filter only tools with
// at least one free unit over that period are kept.
func (s *toolService) ListTools(ctx context.Context, filter domain.ToolFilter) ([]domain.Tool, error) {
	logger.EnterMethod("toolService.ListTools", "categoryID", filter.CategoryID, "hasPeriod", filter.HasPeriod())

	if filter.HasPeriod() && filter.EndDate.Before(*filter.StartDate) {
		return nil, ErrInvalidPeriod
	}

	tools, err := s.toolRepo.List(ctx, filter.CategoryID)
	if err != nil {
		logger.ExitMethodWithError("toolService.ListTools", err)
		return nil, err
	}
	if !filter.HasPeriod() {
		logger.ExitMethod("toolService.ListTools", "count", len(tools))
		return tools, nil
	}

	available := make([]domain.Tool, 0, len(tools))
	for _, t := range tools {
		ok, err := s.availability.IsAvailableForPeriod(ctx, t.ID, *filter.StartDate, *filter.EndDate, 1)
		if err != nil {
			logger.ExitMethodWithError("toolService.ListTools", err, "toolID", t.ID)
			return nil, err
		}
		if ok {
			available = append(available, t)
		}
	}

	logger.ExitMethod("toolService.ListTools", "count", len(available), "total", len(tools))
	return available, nil
}

func (s *toolService) GetTool(ctx context.Context, id int32) (*domain.Tool, error) {
	tool, err := s.toolRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, err
	}
	return tool, nil
}

func (s *toolService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.toolRepo.ListCategories(ctx)
}
