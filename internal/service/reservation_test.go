package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testReservationID = "8d5b5a6e-1f7c-4c39-9a51-0b9f7d2c4e11"

func newTestReservationService() (*reservationService, *MockReservationRepo, *MockCartRepo, *MockToolRepo) {
	resRepo := new(MockReservationRepo)
	cartRepo := new(MockCartRepo)
	toolRepo := new(MockToolRepo)
	svc := NewReservationService(resRepo, cartRepo, toolRepo).(*reservationService)
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC) }
	return svc, resRepo, cartRepo, toolRepo
}

func TestReservationService_CreateFromCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Success snapshots prices and clears the cart", func(t *testing.T) {
		svc, resRepo, cartRepo, _ := newTestReservationService()
		cartRepo.On("GetCurrentByUser", ctx, testUserID).Return(cartWith(domain.CartItem{
			ID: 9, CartID: 4, ToolID: 1, Tool: drill(), StartDate: jan1, EndDate: jan2, Quantity: 2,
		}), nil)
		resRepo.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Reservation).ID = testReservationID
		}).Return(nil)
		cartRepo.On("ClearItems", ctx, int32(4)).Return(nil)

		res, err := svc.CreateFromCart(ctx, testUserID)
		require.NoError(t, err)
		assert.Equal(t, testReservationID, res.ID)
		assert.Equal(t, domain.ReservationStatusPending, res.Status)
		assert.Equal(t, 40.0, res.TotalAmount)
		require.Len(t, res.Items, 1)
		assert.Equal(t, 2, res.Items[0].DurationDays)
		assert.Equal(t, 10.0, res.Items[0].UnitPrice)
		assert.Equal(t, "Perceuse", res.Items[0].ToolName)
		assert.InDelta(t, res.TotalAmount, res.CalculateTotal(), 0.001)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Tiered pricing across items", func(t *testing.T) {
		svc, resRepo, cartRepo, _ := newTestReservationService()
		week := 7
		tool := &domain.Tool{ID: 2, Name: "Tondeuse", Stock: 1, PricingTiers: []domain.PricingTier{
			{MinDurationDays: 1, MaxDurationDays: &week, PricePerDay: 20},
			{MinDurationDays: 8, PricePerDay: 15},
		}}
		cartRepo.On("GetCurrentByUser", ctx, testUserID).Return(cartWith(
			domain.CartItem{ID: 1, ToolID: 2, Tool: tool, StartDate: jan1, EndDate: jan1.AddDate(0, 0, 9), Quantity: 1},
			domain.CartItem{ID: 2, ToolID: 1, Tool: drill(), StartDate: jan5, EndDate: jan5, Quantity: 1},
		), nil)
		resRepo.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil)
		cartRepo.On("ClearItems", ctx, int32(4)).Return(nil)

		res, err := svc.CreateFromCart(ctx, testUserID)
		require.NoError(t, err)
		assert.Equal(t, 150.0, res.Items[0].TotalPrice)
		assert.Equal(t, 10.0, res.Items[1].TotalPrice)
		assert.Equal(t, 160.0, res.TotalAmount)
	})

	t.Run("Empty cart", func(t *testing.T) {
		svc, resRepo, cartRepo, _ := newTestReservationService()
		cartRepo.On("GetCurrentByUser", ctx, testUserID).Return(cartWith(), nil)

		_, err := svc.CreateFromCart(ctx, testUserID)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.ErrorIs(t, err, ErrValidation)
		resRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("No cart at all", func(t *testing.T) {
		svc, _, cartRepo, _ := newTestReservationService()
		cartRepo.On("GetCurrentByUser", ctx, testUserID).Return(nil, repository.ErrNotFound)

		_, err := svc.CreateFromCart(ctx, testUserID)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("Persistence failure keeps the cart", func(t *testing.T) {
		svc, resRepo, cartRepo, _ := newTestReservationService()
		cartRepo.On("GetCurrentByUser", ctx, testUserID).Return(cartWith(domain.CartItem{
			ID: 9, CartID: 4, ToolID: 1, Tool: drill(), StartDate: jan1, EndDate: jan2, Quantity: 1,
		}), nil)
		resRepo.On("Create", ctx, mock.Anything).Return(errors.New("tx aborted"))

		_, err := svc.CreateFromCart(ctx, testUserID)
		assert.Error(t, err)
		cartRepo.AssertNotCalled(t, "ClearItems", mock.Anything, mock.Anything)
	})
}

func TestReservationService_GetReservationByID(t *testing.T) {
	ctx := context.Background()
	svc, resRepo, _, _ := newTestReservationService()
	resRepo.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.GetReservationByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReservationService_CancelReservation(t *testing.T) {
	ctx := context.Background()
	owner := domain.Profile{ID: testUserID, Role: domain.RoleClient}

	t.Run("Owner cancels a confirmed reservation", func(t *testing.T) {
		svc, resRepo, _, _ := newTestReservationService()
		resRepo.On("GetByID", ctx, testReservationID).Return(&domain.Reservation{
			ID: testReservationID, UserID: testUserID, Status: domain.ReservationStatusConfirmed,
		}, nil)
		resRepo.On("UpdateStatus", ctx, testReservationID, domain.ReservationStatusCancelled).Return(nil)

		res, err := svc.CancelReservation(ctx, owner, testReservationID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCancelled, res.Status)
	})

	t.Run("Other client is denied", func(t *testing.T) {
		svc, resRepo, _, _ := newTestReservationService()
		resRepo.On("GetByID", ctx, testReservationID).Return(&domain.Reservation{
			ID: testReservationID, UserID: "someone-else", Status: domain.ReservationStatusPending,
		}, nil)

		_, err := svc.CancelReservation(ctx, owner, testReservationID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Admin may cancel", func(t *testing.T) {
		svc, resRepo, _, _ := newTestReservationService()
		resRepo.On("GetByID", ctx, testReservationID).Return(&domain.Reservation{
			ID: testReservationID, UserID: "someone-else", Status: domain.ReservationStatusPending,
		}, nil)
		resRepo.On("UpdateStatus", ctx, testReservationID, domain.ReservationStatusCancelled).Return(nil)

		_, err := svc.CancelReservation(ctx, domain.Profile{ID: "admin", Role: domain.RoleAdmin}, testReservationID)
		assert.NoError(t, err)
	})

	t.Run("Completed cannot be cancelled", func(t *testing.T) {
		svc, resRepo, _, _ := newTestReservationService()
		resRepo.On("GetByID", ctx, testReservationID).Return(&domain.Reservation{
			ID: testReservationID, UserID: testUserID, Status: domain.ReservationStatusCompleted,
		}, nil)

		_, err := svc.CancelReservation(ctx, owner, testReservationID)
		assert.ErrorIs(t, err, ErrStatusTransition)
		resRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already cancelled", func(t *testing.T) {
		svc, resRepo, _, _ := newTestReservationService()
		resRepo.On("GetByID", ctx, testReservationID).Return(&domain.Reservation{
			ID: testReservationID, UserID: testUserID, Status: domain.ReservationStatusCancelled,
		}, nil)

		_, err := svc.CancelReservation(ctx, owner, testReservationID)
		assert.ErrorIs(t, err, ErrReservationCancelled)
	})
}

func TestReservationService_CompleteFinishedReservations(t *testing.T) {
	ctx := context.Background()
	svc, resRepo, _, _ := newTestReservationService()
	resRepo.On("CompleteEndedBefore", ctx, jan5).Return([]string{"a", "b"}, nil)

	n, err := svc.CompleteFinishedReservations(ctx, jan5.Add(13*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
