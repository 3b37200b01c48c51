package service

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/logger"
	"charlymatloc-backend/internal/repository"
)

// amountTolerance is the largest accepted gap between a payment and the reservation total
const amountTolerance = 0.01

type paymentService struct {
	paymentRepo     repository.PaymentRepository
	reservationRepo repository.ReservationRepository
	randRead        func([]byte) (int, error)
	now             func() time.Time
}

func NewPaymentService(paymentRepo repository.PaymentRepository, reservationRepo repository.ReservationRepository) PaymentService {
	return &paymentService{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		randRead:        rand.Read,
		now:             time.Now,
	}
}

// ProcessPayment settles a pending reservation with a simulated provider.
// The reservation is confirmed once the payment is recorded as paid.
func (s *paymentService) ProcessPayment(ctx context.Context, userID, reservationID string, req PaymentRequest) (*domain.Payment, error) {
	logger.EnterMethod("paymentService.ProcessPayment", "userID", userID, "reservationID", reservationID, "amount", req.Amount)

	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		logger.ExitMethodWithError("paymentService.ProcessPayment", err, "reservationID", reservationID)
		return nil, err
	}
	if res.UserID != userID {
		return nil, ErrNotReservationOwner
	}

	switch res.Status {
	case domain.ReservationStatusConfirmed:
		return nil, ErrAlreadyPaid
	case domain.ReservationStatusCancelled:
		return nil, ErrReservationCancelled
	}

	if math.Abs(req.Amount-res.TotalAmount) > amountTolerance {
		logger.ExitMethodWithError("paymentService.ProcessPayment", ErrAmountMismatch,
			"reservationID", reservationID, "amount", req.Amount, "total", res.TotalAmount)
		return nil, ErrAmountMismatch
	}

	latest, err := s.paymentRepo.GetLatestByReservation(ctx, reservationID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		logger.ExitMethodWithError("paymentService.ProcessPayment", err, "reservationID", reservationID)
		return nil, err
	}
	if latest.IsPaid() {
		return nil, ErrPaymentExists
	}

	// A reservation that cannot be confirmed never gets a paid payment stored
	if err := res.Confirm(); err != nil {
		logger.ExitMethodWithError("paymentService.ProcessPayment", err, "reservationID", reservationID, "status", string(res.Status))
		return nil, ErrStatusTransition
	}

	payment := &domain.Payment{
		ReservationID: reservationID,
		Amount:        req.Amount,
		Method:        req.Method,
		CardHolder:    req.CardHolder,
		Status:        domain.PaymentStatusInitiated,
		CreatedAt:     s.now(),
	}
	if err := payment.MarkPaid(s.providerReference(req.Method)); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		logger.ExitMethodWithError("paymentService.ProcessPayment", err, "reservationID", reservationID)
		return nil, err
	}

	if err := s.reservationRepo.UpdateStatus(ctx, res.ID, res.Status); err != nil {
		logger.ExitMethodWithError("paymentService.ProcessPayment", err, "reservationID", reservationID, "paymentID", payment.ID)
		return nil, err
	}

	logger.ExitMethod("paymentService.ProcessPayment", "paymentID", payment.ID, "reference", payment.ProviderReference)
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, userID, reservationID string) ([]domain.Payment, error) {
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if res.UserID != userID {
		return nil, ErrAccessDenied
	}
	return s.paymentRepo.ListByReservation(ctx, reservationID)
}

// providerReference builds a fake gateway reference such as VIS-1A2B3C4D
func (s *paymentService) providerReference(method string) string {
	prefix := "FAK"
	if m := strings.TrimSpace(method); m != "" {
		if len(m) > 3 {
			m = m[:3]
		}
		prefix = m
	}

	buf := make([]byte, 4)
	var suffix string
	if _, err := s.randRead(buf); err == nil {
		suffix = hex.EncodeToString(buf)
	} else {
		sum := md5.Sum([]byte(fmt.Sprintf("%d", s.now().UnixNano())))
		suffix = hex.EncodeToString(sum[:])[:8]
	}
	return strings.ToUpper(prefix + "-" + suffix)
}
