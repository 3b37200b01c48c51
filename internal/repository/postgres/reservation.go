package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/logger"
	"charlymatloc-backend/internal/repository"
	"charlymatloc-backend/internal/utils"

	"github.com/lib/pq"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

// Create inserts the reservation header and its items in a single
// transaction. The header's start and end dates span all items.
func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	logger.EnterMethod("reservationRepository.Create", "userID", res.UserID, "items", len(res.Items))

	if len(res.Items) == 0 {
		return fmt.Errorf("reservation has no items")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("reservationRepository.Create", err)
		return err
	}
	defer tx.Rollback()

	start, end := res.Period()
	if res.ReservationDate.IsZero() {
		res.ReservationDate = time.Now()
	}

	header := `INSERT INTO reservations (user_id, status_code, start_date, end_date, total_price, created_at)
	           VALUES ($1, $2, $3, $4, $5, $6) RETURNING reservation_id`
	logger.DatabaseCall("INSERT", "reservations", "userID", res.UserID)
	err = tx.QueryRowContext(ctx, header, res.UserID, res.Status.Code(), start, end, res.TotalAmount, res.ReservationDate).Scan(&res.ID)
	logger.DatabaseResult("INSERT", 1, err, "reservationID", res.ID)
	if err != nil {
		logger.ExitMethodWithError("reservationRepository.Create", err, "userID", res.UserID)
		return err
	}

	itemQuery := `INSERT INTO reservation_items (reservation_id, tool_id, start_date, end_date, quantity, unit_price, total_price)
	              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING reservation_item_id`
	for i := range res.Items {
		it := &res.Items[i]
		it.ReservationID = res.ID
		err = tx.QueryRowContext(ctx, itemQuery, res.ID, it.ToolID, it.StartDate, it.EndDate, it.Quantity, it.UnitPrice, it.TotalPrice).Scan(&it.ID)
		if err != nil {
			logger.ExitMethodWithError("reservationRepository.Create", err, "reservationID", res.ID, "toolID", it.ToolID)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("reservationRepository.Create", err, "reservationID", res.ID)
		return err
	}

	logger.ExitMethod("reservationRepository.Create", "reservationID", res.ID)
	return nil
}

const reservationColumns = `reservation_id, user_id, status_code, total_price, created_at`

func scanReservation(s interface{ Scan(...any) error }) (domain.Reservation, error) {
	var res domain.Reservation
	var code int
	if err := s.Scan(&res.ID, &res.UserID, &code, &res.TotalAmount, &res.ReservationDate); err != nil {
		return res, err
	}
	status, err := domain.ReservationStatusFromCode(code)
	if err != nil {
		return res, err
	}
	res.Status = status
	return res, nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_id = $1`
	res, err := scanReservation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}

	items, err := r.loadItems(ctx, []string{res.ID})
	if err != nil {
		return nil, err
	}
	res.Items = items[res.ID]
	if res.Items == nil {
		res.Items = []domain.ReservationItem{}
	}
	return &res, nil
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	logger.EnterMethod("reservationRepository.ListByUser", "userID", userID)

	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1 ORDER BY start_date DESC, created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.ExitMethodWithError("reservationRepository.ListByUser", err, "userID", userID)
		return nil, err
	}
	defer rows.Close()

	reservations := []domain.Reservation{}
	var ids []string
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
		ids = append(ids, res.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		logger.ExitMethod("reservationRepository.ListByUser", "count", 0)
		return reservations, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		logger.ExitMethodWithError("reservationRepository.ListByUser", err, "userID", userID)
		return nil, err
	}
	for i := range reservations {
		reservations[i].Items = items[reservations[i].ID]
		if reservations[i].Items == nil {
			reservations[i].Items = []domain.ReservationItem{}
		}
	}

	logger.ExitMethod("reservationRepository.ListByUser", "count", len(reservations))
	return reservations, nil
}

func (r *reservationRepository) loadItems(ctx context.Context, reservationIDs []string) (map[string][]domain.ReservationItem, error) {
	query := `
		SELECT ri.reservation_item_id, ri.reservation_id, ri.tool_id, COALESCE(t.name, ''),
		       ri.start_date, ri.end_date, ri.quantity, ri.unit_price, ri.total_price
		FROM reservation_items ri
		LEFT JOIN tools t ON ri.tool_id = t.tool_id
		WHERE ri.reservation_id = ANY($1)
		ORDER BY ri.reservation_item_id
	`
	logger.DatabaseCall("SELECT", "reservation_items", "reservations", len(reservationIDs))
	rows, err := r.db.QueryContext(ctx, query, pq.Array(reservationIDs))
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.ReservationItem)
	var count int64
	for rows.Next() {
		var it domain.ReservationItem
		if err := rows.Scan(&it.ID, &it.ReservationID, &it.ToolID, &it.ToolName,
			&it.StartDate, &it.EndDate, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, err
		}
		if days, err := utils.RentalDays(it.StartDate, it.EndDate); err == nil {
			it.DurationDays = days
		}
		out[it.ReservationID] = append(out[it.ReservationID], it)
		count++
	}
	logger.DatabaseResult("SELECT", count, rows.Err())
	return out, rows.Err()
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	logger.DatabaseCall("UPDATE", "reservations", "reservationID", id, "status", status)
	res, err := r.db.ExecContext(ctx, `UPDATE reservations SET status_code = $1 WHERE reservation_id = $2`, status.Code(), id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "reservationID", id)
		return err
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, nil, "reservationID", id)
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *reservationRepository) CompleteEndedBefore(ctx context.Context, date time.Time) ([]string, error) {
	query := `
		UPDATE reservations
		SET status_code = $1
		WHERE status_code = $2
		  AND end_date < $3
		RETURNING reservation_id
	`
	rows, err := r.db.QueryContext(ctx, query,
		domain.ReservationStatusCompleted.Code(), domain.ReservationStatusConfirmed.Code(), date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
