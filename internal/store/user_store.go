package store

import (
	"context"

	users "github.com/DanielFonsecaa/42chess/internal/user"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type UserStore struct {
	db *sqlx.DB
}

const (
	getUserQuery           = "SELECT * FROM users WHERE id = ?"
	getUserByProviderQuery = `
        SELECT * FROM users
        WHERE provider = ?
        AND provider_id = ?
    `
	createUserQuery = `
		INSERT INTO users (id, email, username, is_admin, provider, provider_id, avatar_url, created_at) VALUES
		(:id, :email, :username, :is_admin, :provider, :provider_id, :avatar_url, :created_at)
	`
	updateUserProfileQuery = `
		UPDATE users SET
		username = :username,
		avatar_url = :avatar_url,
		is_admin = :is_admin
		WHERE id = :id
	`
)

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetUserByProvider(ctx context.Context, provider string, providerID string) (*users.User, error) {
	var user users.User
	err := s.db.GetContext(ctx, &user, getUserByProviderQuery, provider, providerID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUser runs on q so joins can check the user inside their transaction.
func (s *UserStore) GetUser(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*users.User, error) {
	var user users.User
	if err := sqlx.GetContext(ctx, q, &user, getUserQuery, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) CreateUser(ctx context.Context, user *users.User) error {
	_, err := s.db.NamedExecContext(ctx, createUserQuery, user)
	return translateError(err)
}

func (s *UserStore) UpdateUserProfile(ctx context.Context, user *users.User) error {
	result, err := s.db.NamedExecContext(ctx, updateUserProfileQuery, user)
	if err != nil {
		return err
	}
	return checkAffectedRows(result)
}

func (s *UserStore) DB() *sqlx.DB {
	return s.db
}
