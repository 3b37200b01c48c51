package service

import (
	"context"
	"errors"
	"time"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/logger"
	"charlymatloc-backend/internal/repository"
	"charlymatloc-backend/internal/utils"
)

type reservationService struct {
	reservationRepo repository.ReservationRepository
	cartRepo        repository.CartRepository
	toolRepo        repository.ToolRepository
	now             func() time.Time
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	cartRepo repository.CartRepository,
	toolRepo repository.ToolRepository,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		cartRepo:        cartRepo,
		toolRepo:        toolRepo,
		now:             time.Now,
	}
}

// CreateFromCart turns the user's current cart into a pending reservation,
// snapshotting prices, then empties the cart
func (s *reservationService) CreateFromCart(ctx context.Context, userID string) (*domain.Reservation, error) {
	logger.EnterMethod("reservationService.CreateFromCart", "userID", userID)

	cart, err := s.cartRepo.GetCurrentByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && cart.IsEmpty()) {
		logger.ExitMethodWithError("reservationService.CreateFromCart", ErrEmptyCart, "userID", userID)
		return nil, ErrEmptyCart
	}
	if err != nil {
		logger.ExitMethodWithError("reservationService.CreateFromCart", err, "userID", userID)
		return nil, err
	}

	res := &domain.Reservation{
		UserID:          userID,
		ReservationDate: s.now(),
		Status:          domain.ReservationStatusPending,
		Items:           make([]domain.ReservationItem, 0, len(cart.Items)),
	}

	for _, it := range cart.Items {
		tool := it.Tool
		if tool == nil {
			tool, err = s.toolRepo.GetByID(ctx, it.ToolID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, ErrToolNotFound
				}
				return nil, err
			}
		}

		cost, err := utils.CalculateRentalCost(it.StartDate, it.EndDate, tool, it.Quantity)
		if err != nil {
			return nil, Validation(err.Error())
		}

		res.Items = append(res.Items, domain.ReservationItem{
			ToolID:       it.ToolID,
			ToolName:     tool.Name,
			StartDate:    it.StartDate,
			EndDate:      it.EndDate,
			Quantity:     it.Quantity,
			DurationDays: cost.Days,
			UnitPrice:    cost.PricePerDay,
			TotalPrice:   cost.TotalCost,
		})
	}
	res.TotalAmount = utils.RoundCents(res.CalculateTotal())

	if err := s.reservationRepo.Create(ctx, res); err != nil {
		logger.ExitMethodWithError("reservationService.CreateFromCart", err, "userID", userID)
		return nil, err
	}

	if err := s.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		logger.Warn("Failed to clear cart after reservation", "cartID", cart.ID, "reservationID", res.ID, "error", err)
	}

	logger.ExitMethod("reservationService.CreateFromCart", "reservationID", res.ID, "total", res.TotalAmount)
	return res, nil
}

func (s *reservationService) GetReservationsByUserID(ctx context.Context, userID string) ([]domain.Reservation, error) {
	return s.reservationRepo.ListByUser(ctx, userID)
}

func (s *reservationService) GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, caller domain.Profile, reservationID string) (*domain.Reservation, error) {
	logger.EnterMethod("reservationService.CancelReservation", "userID", caller.ID, "reservationID", reservationID)

	res, err := s.GetReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.UserID != caller.ID && !caller.IsAdmin() {
		return nil, ErrAccessDenied
	}
	if res.Status == domain.ReservationStatusCancelled {
		return nil, ErrReservationCancelled
	}
	if err := res.Cancel(); err != nil {
		logger.ExitMethodWithError("reservationService.CancelReservation", err, "reservationID", reservationID)
		return nil, ErrStatusTransition
	}

	if err := s.reservationRepo.UpdateStatus(ctx, res.ID, res.Status); err != nil {
		logger.ExitMethodWithError("reservationService.CancelReservation", err, "reservationID", reservationID)
		return nil, err
	}

	logger.ExitMethod("reservationService.CancelReservation", "reservationID", reservationID)
	return res, nil
}

// CompleteFinishedReservations marks confirmed reservations that ended before
// today as completed and returns how many moved
func (s *reservationService) CompleteFinishedReservations(ctx context.Context, today time.Time) (int, error) {
	logger.EnterMethod("reservationService.CompleteFinishedReservations", "today", utils.FormatDate(today))

	ids, err := s.reservationRepo.CompleteEndedBefore(ctx, utils.TruncateToDay(today))
	if err != nil {
		logger.ExitMethodWithError("reservationService.CompleteFinishedReservations", err)
		return 0, err
	}

	logger.ExitMethod("reservationService.CompleteFinishedReservations", "completed", len(ids))
	return len(ids), nil
}
