package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/gavilanm26/prueba-backend-fgs/internal/apperr"
	"github.com/gavilanm26/prueba-backend-fgs/internal/db"
)

// UserValidator is the external collaborator the issuer delegates
// credential checks to. A zero userID with a nil error means the
// credentials are unknown or invalid.
type UserValidator interface {
	ValidateUser(ctx context.Context, username, password string) (string, error)
}

// UserStore validates credentials against the users table with bcrypt
// hashes. It satisfies UserValidator.
type UserStore struct {
	repo *db.Postgres
}

func NewUserStore(repo *db.Postgres) *UserStore {
	return &UserStore{repo: repo}
}

func (s *UserStore) ValidateUser(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil
	}

	return user.ID, nil
}

func (s *UserStore) EnsureSchema(ctx context.Context) error {
	return s.repo.EnsureUserSchema(ctx)
}

// EnsureUser creates the bootstrap user when it does not exist yet, so a
// fresh deployment can authenticate immediately.
func (s *UserStore) EnsureUser(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return apperr.E(apperr.KindNotConfigured, "SEED_USERNAME/SEED_PASSWORD are required")
	}

	_, err := s.repo.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !db.IsNoRows(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.repo.CreateUser(ctx, username, string(hash))
	return err
}
