package postgres

import (
	"context"
	"database/sql"
	"time"

	"charlymatloc-backend/internal/domain"
	"charlymatloc-backend/internal/logger"
	"charlymatloc-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user and fills in the generated UUID. A taken email
// surfaces as repository.ErrDuplicate.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	logger.EnterMethod("userRepository.Create", "email", user.Email, "role", user.Role.String())

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	query := `INSERT INTO users (email, password_hash, role_code, created_at) VALUES ($1, $2, $3, $4) RETURNING user_id`
	logger.DatabaseCall("INSERT", "users", "email", user.Email)
	err := r.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash, int(user.Role), user.CreatedAt).Scan(&user.ID)
	logger.DatabaseResult("INSERT", 1, err, "userID", user.ID)
	if err != nil {
		err = translateError(err)
		logger.ExitMethodWithError("userRepository.Create", err, "email", user.Email)
		return err
	}

	logger.ExitMethod("userRepository.Create", "userID", user.ID)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT user_id, email, password_hash, role_code, created_at FROM users WHERE user_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT user_id, email, password_hash, role_code, created_at FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var roleCode int
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &roleCode, &u.CreatedAt); err != nil {
		return nil, translateError(err)
	}
	role, err := domain.ParseRole(roleCode)
	if err != nil {
		return nil, err
	}
	u.Role = role
	return u, nil
}
