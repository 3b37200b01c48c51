package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"charlymatloc-backend/internal/repository"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations
const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
	repository.ToolRepository
	repository.CartRepository
	repository.ReservationRepository
	repository.PaymentRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		ToolRepository:        NewToolRepository(db),
		CartRepository:        NewCartRepository(db),
		ReservationRepository: NewReservationRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
		UserRepository:        NewUserRepository(db),
	}
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// translateError maps driver errors onto repository sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pqErr.Constraint)
	}
	return err
}
