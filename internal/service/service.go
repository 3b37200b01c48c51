package service

import (
	"context"
	"time"

	"charlymatloc-backend/internal/domain"
)

type AvailabilityService interface {
	// IsAvailableForPeriod reports whether quantity units of the tool are free
	// over the inclusive period
	IsAvailableForPeriod(ctx context.Context, toolID int32, start, end time.Time, quantity int) (bool, error)
	// AvailableStock returns the units left for the period, or the raw stock when no period is given
	AvailableStock(ctx context.Context, toolID int32, start, end *time.Time) (int, error)
}

type ToolService interface {
	ListTools(ctx context.Context, filter domain.ToolFilter) ([]domain.Tool, error)
	GetTool(ctx context.Context, id int32) (*domain.Tool, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type CartService interface {
	AddToCart(ctx context.Context, userID string, toolID int32, start, end time.Time, quantity int) (*domain.Cart, error)
	GetCurrentCart(ctx context.Context, userID string) (*domain.Cart, error)
	RemoveFromCart(ctx context.Context, userID string, toolID int32, start time.Time) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID string, itemID int32) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID string, itemID int32, quantity int) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID string) error
	PurgeStaleCarts(ctx context.Context, olderThan time.Time) (int64, error)
}

type ReservationService interface {
	CreateFromCart(ctx context.Context, userID string) (*domain.Reservation, error)
	GetReservationsByUserID(ctx context.Context, userID string) ([]domain.Reservation, error)
	GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, caller domain.Profile, reservationID string) (*domain.Reservation, error)
	CompleteFinishedReservations(ctx context.Context, today time.Time) (int, error)
}

type PaymentRequest struct {
	Amount     float64
	Method     string
	CardHolder string
}

type PaymentService interface {
	ProcessPayment(ctx context.Context, userID, reservationID string, req PaymentRequest) (*domain.Payment, error)
	ListPayments(ctx context.Context, userID, reservationID string) ([]domain.Payment, error)
}

// AuthResult is returned by every successful authentication
type AuthResult struct {
	Profile      domain.Profile
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

type AuthService interface {
	Register(ctx context.Context, email, password string, role domain.Role) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}

type AuthzService interface {
	CanAccessCart(caller domain.Profile, userID string) bool
	CanAddToCart(caller domain.Profile) bool
	CanValidateCart(caller domain.Profile) bool
	CanAccessReservations(caller domain.Profile, userID string) bool
	CanAccessReservation(ctx context.Context, caller domain.Profile, reservationID string) (bool, error)
	// Authorize answers for a named route given its path variables
	Authorize(ctx context.Context, route string, vars map[string]string, caller domain.Profile) error
}
