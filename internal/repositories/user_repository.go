package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "casebackend/internal/config"
	"casebackend/internal/domain"
	"casebackend/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) GetUserByMobile(ctx context.Context, mobile string) (models.User, error) {
	var u models.User
	err := r.db().QueryRowContext(ctx, `
		SELECT id, name, mobile, password_hash, created_at
		FROM users WHERE mobile = ?`, mobile).
		Scan(&u.ID, &u.Name, &u.Mobile, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return u, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// CreateUser inserts u; an existing mobile is a ConflictError.
func (r UserRepository) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	var exists int
	if err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE mobile = ?`, u.Mobile).Scan(&exists); err != nil {
		return u, fmt.Errorf("check user: %w", err)
	}
	if exists > 0 {
		return u, domain.ConflictError{Resource: "user", Msg: "mobile already registered"}
	}

	now := time.Now()
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO users (name, mobile, password_hash, created_at)
		VALUES (?, ?, ?, ?)`, u.Name, u.Mobile, u.PasswordHash, now)
	if err != nil {
		return u, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return u, err
	}
	u.ID = id
	u.CreatedAt = now
	return u, nil
}
