package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/pkg/errors"
)

type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) scanUser(scan func(dest ...interface{}) error) (*domain.User, error) {
	var u domain.User
	var phone, address sql.NullString

	err := scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&phone,
		&address,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if address.Valid {
		u.Address = &address.String
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, name, email, phone, address, role, created_at FROM users WHERE id = $1`

	u, err := r.scanUser(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "user", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get user by ID", zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, phone, address, role, created_at FROM users WHERE email = $1`

	u, err := r.scanUser(r.db.QueryRowContext(ctx, query, strings.ToLower(email)).Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "user", ID: email}
	}
	if err != nil {
		r.logger.Error("Failed to get user by email", zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User, passwordHash string) error {
	query := `
		INSERT INTO users (id, name, email, phone, address, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.Email = strings.ToLower(user.Email)

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.Address,
		user.Role,
		passwordHash,
		user.CreatedAt,
	)
	if err != nil {
		// 23505 = unique_violation on users.email
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &errors.ErrConflict{Message: "email already registered"}
		}
		r.logger.Error("Failed to create user", zap.Error(err))
		return err
	}
	return nil
}

func (r *userRepository) PasswordHash(ctx context.Context, email string) (string, error) {
	query := `SELECT password_hash FROM users WHERE email = $1`

	var hash string
	err := r.db.QueryRowContext(ctx, query, strings.ToLower(email)).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", &errors.ErrNotFound{Resource: "user", ID: email}
	}
	if err != nil {
		r.logger.Error("Failed to get password hash", zap.Error(err))
		return "", err
	}
	return hash, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone, address *string) error {
	query := `
		UPDATE users
		SET name = COALESCE($2, name), phone = COALESCE($3, phone), address = COALESCE($4, address)
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, name, phone, address)
	if err != nil {
		r.logger.Error("Failed to update user profile", zap.Error(err))
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "user", ID: id.String()}
	}
	return nil
}
