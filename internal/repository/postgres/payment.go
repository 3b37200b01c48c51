package postgres

import (
	"context"
	"database/sql"
	"time"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/logger"
	"charlymatloc-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	logger.EnterMethod("paymentRepository.Create", "reservationID", p.ReservationID, "status", p.Status.String())

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	query := `INSERT INTO payments (reservation_id, amount, method, card_holder, status_code, provider_reference, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING payment_id`
	err := r.db.QueryRowContext(ctx, query,
		p.ReservationID, p.Amount, p.Method, p.CardHolder, int(p.Status), p.ProviderReference, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		logger.ExitMethodWithError("paymentRepository.Create", err, "reservationID", p.ReservationID)
		return err
	}

	logger.ExitMethod("paymentRepository.Create", "paymentID", p.ID)
	return nil
}

const paymentColumns = `payment_id, reservation_id, amount, COALESCE(method, ''), COALESCE(card_holder, ''),
	       status_code, COALESCE(provider_reference, ''), created_at`

func scanPayment(s interface{ Scan(...any) error }) (domain.Payment, error) {
	var p domain.Payment
	var status int
	err := s.Scan(&p.ID, &p.ReservationID, &p.Amount, &p.Method, &p.CardHolder, &status, &p.ProviderReference, &p.CreatedAt)
	p.Status = domain.PaymentStatus(status)
	return p, err
}

// GetLatestByReservation returns the most recent payment attempt, or
// repository.ErrNotFound when there is none
func (r *paymentRepository) GetLatestByReservation(ctx context.Context, reservationID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE reservation_id = $1 ORDER BY payment_id DESC LIMIT 1`
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, reservationID))
	if err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

func (r *paymentRepository) ListByReservation(ctx context.Context, reservationID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE reservation_id = $1 ORDER BY payment_id`
	rows, err := r.db.QueryContext(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
