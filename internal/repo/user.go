package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-api/internal/models"
)

var ErrNotFound = errors.New("not found")

type UserRepo struct {
	DB *gorm.DB
}

// FindByCredentials matches a login against the stored credential column.
// The caller never sees PRNHash back; gorm fills it but handlers serialize
// the public fields only.
func (r *UserRepo) FindByCredentials(ctx context.Context, email, credential string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("email = ? AND prn_hash = ?", email, credential).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return r.DB.WithContext(ctx).Create(user).Error
}

// EnsureOwner seeds the owner account so a fresh database is usable
// without manual SQL. Existing rows are left alone.
func (r *UserRepo) EnsureOwner(ctx context.Context, email, fullName, credential string) error {
	var existing models.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.Create(ctx, &models.User{
		Email:    email,
		PRNHash:  credential,
		Role:     models.RoleOwner,
		FullName: fullName,
	})
}
