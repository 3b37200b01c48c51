package postgres_test

import (
	"context"
	"testing"
	"time"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/repository"
	"charlymatloc-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		user := &domain.User{Email: "client@example.com", PasswordHash: "hash", Role: domain.RoleClient}
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("client@example.com", "hash", 0, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(userID))

		require.NoError(t, repo.Create(ctx, user))
		assert.Equal(t, userID, user.ID)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		user := &domain.User{Email: "client@example.com", PasswordHash: "hash"}
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err := repo.Create(ctx, user)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()
	cols := []string{"user_id", "email", "password_hash", "role_code", "created_at"}

	t.Run("Admin", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("admin@example.com").
			WillReturnRows(sqlmock.NewRows(cols).AddRow(userID, "admin@example.com", "hash", 1, time.Now()))

		u, err := repo.GetByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, u.Role)
	})

	t.Run("Unknown email", func(t *testing.T) {
		mock.ExpectQuery("FROM users WHERE email").
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("Unknown role code", func(t *testing.T) {
		mock.ExpectQuery("FROM users WHERE user_id").
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(userID, "x@example.com", "hash", 5, time.Now()))

		_, err := repo.GetByID(ctx, userID)
		assert.Error(t, err)
	})
}

func TestPaymentRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()
	cols := []string{"payment_id", "reservation_id", "amount", "method", "card_holder", "status_code", "provider_reference", "created_at"}

	t.Run("Create", func(t *testing.T) {
		p := &domain.Payment{ReservationID: reservationID, Amount: 40, Method: "visa", Status: domain.PaymentStatusPaid, ProviderReference: "VIS-0A0B0C0D"}
		mock.ExpectQuery("INSERT INTO payments").
			WithArgs(reservationID, 40.0, "visa", "", 1, "VIS-0A0B0C0D", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"payment_id"}).AddRow(3))

		require.NoError(t, repo.Create(ctx, p))
		assert.Equal(t, int32(3), p.ID)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("Latest", func(t *testing.T) {
		mock.ExpectQuery("FROM payments WHERE reservation_id (.+) ORDER BY payment_id DESC LIMIT 1").
			WithArgs(reservationID).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(3, reservationID, 40.0, "visa", "", 1, "VIS-0A0B0C0D", time.Now()))

		p, err := repo.GetLatestByReservation(ctx, reservationID)
		require.NoError(t, err)
		assert.True(t, p.IsPaid())
	})

	t.Run("Latest none", func(t *testing.T) {
		mock.ExpectQuery("FROM payments").
			WithArgs(reservationID).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.GetLatestByReservation(ctx, reservationID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		mock.ExpectQuery("FROM payments WHERE reservation_id").
			WithArgs(reservationID).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(1, reservationID, 40.0, "visa", "", 2, "", time.Now()).
				AddRow(2, reservationID, 40.0, "visa", "", 1, "VIS-0A0B0C0D", time.Now()))

		list, err := repo.ListByReservation(ctx, reservationID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, domain.PaymentStatusFailed, list[0].Status)
	})
}
