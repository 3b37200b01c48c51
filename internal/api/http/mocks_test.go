package http

import (
	"context"
	"time"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockToolService struct {
	mock.Mock
}

func (m *MockToolService) ListTools(ctx context.Context, filter domain.ToolFilter) ([]domain.Tool, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tool), args.Error(1)
}

func (m *MockToolService) GetTool(ctx context.Context, id int32) (*domain.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tool), args.Error(1)
}

func (m *MockToolService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) IsAvailableForPeriod(ctx context.Context, toolID int32, start, end time.Time, quantity int) (bool, error) {
	args := m.Called(ctx, toolID, start, end, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockAvailabilityService) AvailableStock(ctx context.Context, toolID int32, start, end *time.Time) (int, error) {
	args := m.Called(ctx, toolID, start, end)
	return args.Int(0), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) cart(args mock.Arguments) (*domain.Cart, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartService) AddToCart(ctx context.Context, userID string, toolID int32, start, end time.Time, quantity int) (*domain.Cart, error) {
	return m.cart(m.Called(ctx, userID, toolID, start, end, quantity))
}

func (m *MockCartService) GetCurrentCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return m.cart(m.Called(ctx, userID))
}

func (m *MockCartService) RemoveFromCart(ctx context.Context, userID string, toolID int32, start time.Time) (*domain.Cart, error) {
	return m.cart(m.Called(ctx, userID, toolID, start))
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID string, itemID int32) (*domain.Cart, error) {
	return m.cart(m.Called(ctx, userID, itemID))
}

func (m *MockCartService) UpdateItemQuantity(ctx context.Context, userID string, itemID int32, quantity int) (*domain.Cart, error) {
	return m.cart(m.Called(ctx, userID, itemID, quantity))
}

func (m *MockCartService) ClearCart(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockCartService) PurgeStaleCarts(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) reservation(args mock.Arguments) (*domain.Reservation, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) CreateFromCart(ctx context.Context, userID string) (*domain.Reservation, error) {
	return m.reservation(m.Called(ctx, userID))
}

func (m *MockReservationService) GetReservationsByUserID(ctx context.Context, userID string) ([]domain.Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationService) GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error) {
	return m.reservation(m.Called(ctx, id))
}

func (m *MockReservationService) CancelReservation(ctx context.Context, caller domain.Profile, reservationID string) (*domain.Reservation, error) {
	return m.reservation(m.Called(ctx, caller, reservationID))
}

func (m *MockReservationService) CompleteFinishedReservations(ctx context.Context, today time.Time) (int, error) {
	args := m.Called(ctx, today)
	return args.Int(0), args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ProcessPayment(ctx context.Context, userID, reservationID string, req service.PaymentRequest) (*domain.Payment, error) {
	args := m.Called(ctx, userID, reservationID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentService) ListPayments(ctx context.Context, userID, reservationID string) ([]domain.Payment, error) {
	args := m.Called(ctx, userID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) result(args mock.Arguments) (*service.AuthResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, email, password string, role domain.Role) (*service.AuthResult, error) {
	return m.result(m.Called(ctx, email, password, role))
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*service.AuthResult, error) {
	return m.result(m.Called(ctx, email, password))
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*service.AuthResult, error) {
	return m.result(m.Called(ctx, refreshToken))
}

type MockAuthzService struct {
	mock.Mock
}

func (m *MockAuthzService) CanAccessCart(caller domain.Profile, userID string) bool {
	return m.Called(caller, userID).Bool(0)
}

func (m *MockAuthzService) CanAddToCart(caller domain.Profile) bool {
	return m.Called(caller).Bool(0)
}

func (m *MockAuthzService) CanValidateCart(caller domain.Profile) bool {
	return m.Called(caller).Bool(0)
}

func (m *MockAuthzService) CanAccessReservations(caller domain.Profile, userID string) bool {
	return m.Called(caller, userID).Bool(0)
}

func (m *MockAuthzService) CanAccessReservation(ctx context.Context, caller domain.Profile, reservationID string) (bool, error) {
	args := m.Called(ctx, caller, reservationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthzService) Authorize(ctx context.Context, route string, vars map[string]string, caller domain.Profile) error {
	return m.Called(ctx, route, vars, caller).Error(0)
}
