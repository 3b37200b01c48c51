package service

import (
	"context"
	"errors"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/logger"
	"charlymatloc-backend/internal/repository"
)

type authzService struct {
	reservationRepo repository.ReservationRepository
}

func NewAuthzService(reservationRepo repository.ReservationRepository) AuthzService {
	return &authzService{reservationRepo: reservationRepo}
}

func (s *authzService) CanAccessCart(caller domain.Profile, userID string) bool {
	return caller.IsAdmin() || caller.ID == userID
}

func (s *authzService) CanAddToCart(caller domain.Profile) bool {
	return caller.ID != ""
}

func (s *authzService) CanValidateCart(caller domain.Profile) bool {
	return caller.ID != ""
}

func (s *authzService) CanAccessReservations(caller domain.Profile, userID string) bool {
	return caller.IsAdmin() || caller.ID == userID
}

// CanAccessReservation loads the reservation to compare its owner. An unknown
// reservation is denied to non-admins.
func (s *authzService) CanAccessReservation(ctx context.Context, caller domain.Profile, reservationID string) (bool, error) {
	if caller.IsAdmin() {
		return true, nil
	}
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return res.UserID == caller.ID, nil
}

func (s *authzService) Authorize(ctx context.Context, route string, vars map[string]string, caller domain.Profile) error {
	var allowed bool
	var err error

	switch route {
	case "cart.get", "cart.remove", "cart.remove_by_tool", "cart.update", "cart.clear":
		allowed = s.CanAccessCart(caller, vars["userId"])
	case "cart.add":
		allowed = s.CanAccessCart(caller, vars["userId"]) && s.CanAddToCart(caller)
	case "reservations.create":
		allowed = s.CanAccessCart(caller, vars["userId"]) && s.CanValidateCart(caller)
	case "reservations.list":
		allowed = s.CanAccessReservations(caller, vars["userId"])
	case "reservations.get", "reservations.cancel":
		allowed, err = s.CanAccessReservation(ctx, caller, vars["reservationId"])
	case "payments.process", "payments.list":
		if s.CanAccessReservations(caller, vars["userId"]) {
			allowed, err = s.CanAccessReservation(ctx, caller, vars["reservationId"])
		}
	default:
		allowed = caller.ID != ""
	}

	if err != nil {
		return err
	}
	if !allowed {
		logger.Warn("Authorization denied", "route", route, "userID", caller.ID)
		return ErrAccessDenied
	}
	return nil
}
