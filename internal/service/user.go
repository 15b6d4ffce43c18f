package service

import (
	"context"

	"github.com/iliyamo/recipe-share/internal/model"
	"github.com/iliyamo/recipe-share/internal/repository"
	"github.com/iliyamo/recipe-share/internal/utils"
)

// UserService covers profile reads and mutations. Role changes are gated to
// admins at the routing layer; the service only validates the target.
type UserService struct {
	Users      *repository.UserRepo
	BcryptCost int
}

func NewUserService(users *repository.UserRepo, bcryptCost int) *UserService {
	return &UserService{Users: users, BcryptCost: bcryptCost}
}

// GetProfile returns the user record.
func (s *UserService) GetProfile(ctx context.Context, id uint64) (*model.User, error) {
	return s.Users.GetByID(ctx, id)
}

// UpdateProfile changes the supplied fields; a supplied password is
// re-hashed before it reaches the repository. Unique violations surface as
// repository.ErrUserExists.
func (s *UserService) UpdateProfile(ctx context.Context, id uint64, username, email, password *string) (*model.User, error) {
	var hash *string
	if password != nil {
		h, err := utils.HashPassword(*password, s.BcryptCost)
		if err != nil {
			return nil, err
		}
		hash = &h
	}
	if err := s.Users.UpdateProfile(ctx, id, username, email, hash); err != nil {
		return nil, err
	}
	return s.Users.GetByID(ctx, id)
}

// DeleteProfile removes the account and everything hanging off it.
func (s *UserService) DeleteProfile(ctx context.Context, id uint64) error {
	return s.Users.Delete(ctx, id)
}

// UpdateRole assigns a new role to the target user. ErrUserNotFound when the
// target is absent.
func (s *UserService) UpdateRole(ctx context.Context, id uint64, role string) (*model.User, error) {
	if err := s.Users.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	return s.Users.GetByID(ctx, id)
}
