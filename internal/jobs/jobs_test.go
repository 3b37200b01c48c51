package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"charlymatloc-backend/internal/config"
	"charlymatloc-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) CreateFromCart(ctx context.Context, userID string) (*domain.Reservation, error) {
	return nil, nil
}

func (m *MockReservationService) GetReservationsByUserID(ctx context.Context, userID string) ([]domain.Reservation, error) {
	return nil, nil
}

func (m *MockReservationService) GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error) {
	return nil, nil
}

func (m *MockReservationService) CancelReservation(ctx context.Context, caller domain.Profile, id string) (*domain.Reservation, error) {
	return nil, nil
}

func (m *MockReservationService) CompleteFinishedReservations(ctx context.Context, today time.Time) (int, error) {
	args := m.Called(ctx, today)
	return args.Int(0), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) AddToCart(ctx context.Context, userID string, toolID int32, start, end time.Time, quantity int) (*domain.Cart, error) {
	return nil, nil
}

func (m *MockCartService) GetCurrentCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return nil, nil
}

func (m *MockCartService) RemoveFromCart(ctx context.Context, userID string, toolID int32, start time.Time) (*domain.Cart, error) {
	return nil, nil
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID string, itemID int32) (*domain.Cart, error) {
	return nil, nil
}

func (m *MockCartService) UpdateItemQuantity(ctx context.Context, userID string, itemID int32, quantity int) (*domain.Cart, error) {
	return nil, nil
}

func (m *MockCartService) ClearCart(ctx context.Context, userID string) error {
	return nil
}

func (m *MockCartService) PurgeStaleCarts(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

var fixedNow = time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)

func newTestRunner(staleDays int) (*JobRunner, *MockReservationService, *MockCartService) {
	resSvc := new(MockReservationService)
	cartSvc := new(MockCartService)
	cfg := &config.Config{Cart: config.CartConfig{StaleAfterDays: staleDays}}
	jr := NewJobRunner(&Services{Reservation: resSvc, Cart: cartSvc}, cfg)
	jr.now = func() time.Time { return fixedNow }
	return jr, resSvc, cartSvc
}

func TestCompleteFinishedReservations(t *testing.T) {
	jr, resSvc, _ := newTestRunner(30)
	resSvc.On("CompleteFinishedReservations", mock.Anything, fixedNow).Return(2, nil)

	jr.CompleteFinishedReservations()

	resSvc.AssertExpectations(t)
}

func TestCompleteFinishedReservations_ErrorIsSwallowed(t *testing.T) {
	jr, resSvc, _ := newTestRunner(30)
	resSvc.On("CompleteFinishedReservations", mock.Anything, fixedNow).Return(0, errors.New("db down"))

	assert.NotPanics(t, jr.CompleteFinishedReservations)
	resSvc.AssertExpectations(t)
}

func TestPurgeStaleCarts(t *testing.T) {
	jr, _, cartSvc := newTestRunner(30)
	cutoff := time.Date(2024, 2, 9, 2, 0, 0, 0, time.UTC)
	cartSvc.On("PurgeStaleCarts", mock.Anything, cutoff).Return(int64(4), nil)

	jr.PurgeStaleCarts()

	cartSvc.AssertExpectations(t)
}

func TestPurgeStaleCarts_Disabled(t *testing.T) {
	jr, _, cartSvc := newTestRunner(-1)

	jr.PurgeStaleCarts()

	cartSvc.AssertNotCalled(t, "PurgeStaleCarts", mock.Anything, mock.Anything)
}

func TestRunWithRecovery(t *testing.T) {
	jr, _, _ := newTestRunner(30)

	assert.NotPanics(t, func() {
		jr.runWithRecovery("Boom", func() { panic("boom") })
	})
}

func TestRunAllNightlyJobs(t *testing.T) {
	jr, resSvc, cartSvc := newTestRunner(1)
	resSvc.On("CompleteFinishedReservations", mock.Anything, fixedNow).Return(0, nil)
	cartSvc.On("PurgeStaleCarts", mock.Anything, fixedNow.Add(-24*time.Hour)).Return(int64(0), nil)

	jr.RunAllNightlyJobs()

	resSvc.AssertExpectations(t)
	cartSvc.AssertExpectations(t)
}
