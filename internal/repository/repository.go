package repository

import (
	"context"
	"errors"
	"time"

	"charlymatloc-backend/internal/domain"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type ToolRepository interface {
	List(ctx context.Context, categoryID int32) ([]domain.Tool, error)
	GetByID(ctx context.Context, id int32) (*domain.Tool, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	// GetStock returns the tool's total stock
	GetStock(ctx context.Context, toolID int32) (int, error)
	// ReservedQuantity sums reserved quantities of the tool over pending and
	// confirmed reservations whose items overlap [start, end] inclusively
	ReservedQuantity(ctx context.Context, toolID int32, start, end time.Time) (int, error)
}

type CartRepository interface {
	GetCurrentByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Create(ctx context.Context, cart *domain.Cart) error
	AddItem(ctx context.Context, item *domain.CartItem) error
	GetItem(ctx context.Context, itemID int32) (*domain.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID int32, quantity int) error
	RemoveItem(ctx context.Context, itemID int32) error
	RemoveItemByToolAndStart(ctx context.Context, cartID, toolID int32, start time.Time) (int64, error)
	ClearItems(ctx context.Context, cartID int32) error
	DeleteStaleEmpty(ctx context.Context, olderThan time.Time) (int64, error)
}

type ReservationRepository interface {
	// Create persists the reservation and its items atomically and assigns IDs
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
	// CompleteEndedBefore moves confirmed reservations ending before the date to completed
	CompleteEndedBefore(ctx context.Context, date time.Time) ([]string, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetLatestByReservation(ctx context.Context, reservationID string) (*domain.Payment, error)
	ListByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
