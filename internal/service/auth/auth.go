package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartcanteen/canteen-api/internal/credentials"
	"github.com/smartcanteen/canteen-api/internal/models"
	"github.com/smartcanteen/canteen-api/internal/repo"
)

// ErrUserNotFound means the credentials were well-formed and matched the
// derivation rule but no such user row exists.
var ErrUserNotFound = errors.New("user not found")

// Re-exported so handlers map the whole login taxonomy from one package.
var (
	ErrInvalidEmailFormat = credentials.ErrInvalidEmailFormat
	ErrInvalidCredentials = credentials.ErrInvalidCredentials
)

type Service struct {
	Users   *repo.UserRepo
	Deriver credentials.Deriver
}

// Login authenticates an email/password pair. No session is issued: every
// request re-authenticates, either through this check or by passing the
// identity along.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := credentials.Verify(s.Deriver, email, password); err != nil {
		return nil, err
	}

	user, err := s.Users.FindByCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
		}
		return nil, err
	}
	return user, nil
}
