package service

import (
	"context"
	"errors"
	"time"

	"github.com/tieubaoca/thinknotes-be/repository"
	"github.com/tieubaoca/thinknotes-be/types"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserService interface {
	CreateUser(ctx context.Context, user *types.User) error
	GetUser(ctx context.Context, id string) (*types.User, error)
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
	UpdateUser(ctx context.Context, id string, user *types.User) error
	DeleteUser(ctx context.Context, id string) error
	PaginateUser(ctx context.Context, page int64, limit int64) ([]*types.User, int64, error)
	Authenticate(ctx context.Context, username, password string) (*types.User, error)
}

type userService struct {
	repo repository.UserRepo
}

func NewUserService(repo repository.UserRepo) UserService {
	return &userService{
		repo: repo,
	}
}

func (s *userService) CreateUser(ctx context.Context, user *types.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if user.Role == "" {
		user.Role = types.USER_ROLE_USER
	}
	user.CreateAt = time.Now().Unix()
	user.UpdateAt = time.Now().Unix()
	return s.repo.CreateUser(ctx, user)
}

func (s *userService) GetUser(ctx context.Context, id string) (*types.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

func (s *userService) UpdateUser(ctx context.Context, id string, user *types.User) error {
	dbUser, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Username != "" {
		dbUser.Username = user.Username
	}
	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		dbUser.Password = string(hashed)
	}
	if user.FullName != "" {
		dbUser.FullName = user.FullName
	}
	if user.Role != "" {
		dbUser.Role = user.Role
	}
	dbUser.UpdateAt = time.Now().Unix()
	return s.repo.UpdateUser(ctx, dbUser)
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	return s.repo.DeleteUser(ctx, id)
}

func (s *userService) PaginateUser(ctx context.Context, page int64, limit int64) ([]*types.User, int64, error) {
	return s.repo.PaginateUser(ctx, page, limit)
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*types.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
