package service

import (
	"context"
	"errors"
	"time"

	"charlymatloc-backend/internal/logger"
	"charlymatloc-backend/internal/repository"
)

type availabilityService struct {
	toolRepo repository.ToolRepository
}

func NewAvailabilityService(toolRepo repository.ToolRepository) AvailabilityService {
	return &availabilityService{toolRepo: toolRepo}
}

func (s *availabilityService) IsAvailableForPeriod(ctx context.Context, toolID int32, start, end time.Time, quantity int) (bool, error) {
	logger.EnterMethod("availabilityService.IsAvailableForPeriod", "toolID", toolID, "quantity", quantity)

	stock, err := s.toolRepo.GetStock(ctx, toolID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrToolNotFound
		}
		logger.ExitMethodWithError("availabilityService.IsAvailableForPeriod", err, "toolID", toolID)
		return false, err
	}
	if stock < quantity {
		logger.ExitMethod("availabilityService.IsAvailableForPeriod", "toolID", toolID, "available", false, "stock", stock)
		return false, nil
	}

	reserved, err := s.toolRepo.ReservedQuantity(ctx, toolID, start, end)
	if err != nil {
		logger.ExitMethodWithError("availabilityService.IsAvailableForPeriod", err, "toolID", toolID)
		return false, err
	}

	available := stock-reserved >= quantity
	logger.ExitMethod("availabilityService.IsAvailableForPeriod", "toolID", toolID, "available", available, "stock", stock, "reserved", reserved)
	return available, nil
}

func (s *availabilityService) AvailableStock(ctx context.Context, toolID int32, start, end *time.Time) (int, error) {
	stock, err := s.toolRepo.GetStock(ctx, toolID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrToolNotFound
		}
		return 0, err
	}
	if start == nil || end == nil {
		return stock, nil
	}
	if end.Before(*start) {
		return 0, ErrInvalidPeriod
	}

	reserved, err := s.toolRepo.ReservedQuantity(ctx, toolID, *start, *end)
	if err != nil {
		return 0, err
	}
	return max(0, stock-reserved), nil
}
