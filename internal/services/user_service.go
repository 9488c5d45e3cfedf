package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/storage"
)

var _ Users = (*UserService)(nil)

// UserService applies validation and not-found semantics on top of a user
// repository. It knows nothing about books.
type UserService struct {
	repo storage.UserRepository
	log  *logrus.Entry
}

func NewUserService(repo storage.UserRepository, log *logrus.Entry) *UserService {
	return &UserService{repo: repo, log: log}
}

// CreateUser validates the user and stores it under a fresh id; any id on
// the input is ignored.
func (s *UserService) CreateUser(ctx context.Context, user UserDto) (UserDto, error) {
	entity := user.Entity().WithID(0)
	if err := entity.Validate(); err != nil {
		return UserDto{}, err
	}

	saved, err := s.repo.Save(ctx, entity)
	if err != nil {
		return UserDto{}, fmt.Errorf("failed to create user: %w", err)
	}
	s.log.WithField("userId", saved.ID).Debug("user created")
	return UserDtoOf(saved), nil
}

// UpdateUser overwrites every field of an existing user. It never creates.
func (s *UserService) UpdateUser(ctx context.Context, user UserDto) (UserDto, error) {
	entity := user.Entity()
	if err := entity.Validate(); err != nil {
		return UserDto{}, err
	}

	existing, found, err := s.repo.FindByID(ctx, user.ID)
	if err != nil {
		return UserDto{}, fmt.Errorf("failed to load user: %w", err)
	}
	if !found {
		return UserDto{}, storage.NotFound(entities.KindUser, user.ID)
	}

	existing.FullName = entity.FullName
	existing.Title = entity.Title
	existing.Age = entity.Age

	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return UserDto{}, fmt.Errorf("failed to update user: %w", err)
	}
	s.log.WithField("userId", saved.ID).Debug("user updated")
	return UserDtoOf(saved), nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (UserDto, error) {
	user, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserDto{}, fmt.Errorf("failed to load user: %w", err)
	}
	if !found {
		return UserDto{}, storage.NotFound(entities.KindUser, id)
	}
	return UserDtoOf(user), nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]UserDto, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	dtos := make([]UserDto, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, UserDtoOf(u))
	}
	return dtos, nil
}

// DeleteUserByID removes the user if present. Books owned by the user are
// left alone.
func (s *UserService) DeleteUserByID(ctx context.Context, id uint) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.log.WithField("userId", id).Debug("user deleted")
	return nil
}
