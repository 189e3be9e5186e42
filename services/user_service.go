package services

import (
	"context"
	"errors"
	"strings"

	"deals-service/models"
	"deals-service/repository"

	"go.uber.org/zap"
)

// UserService covers the admin account listing and self-service profile edits.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, *ServiceError)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.UserProfile, *ServiceError)
}

type userServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) UserService {
	return &userServiceImpl{repo: repo, logger: logger}
}

func (s *userServiceImpl) ListUsers(ctx context.Context) ([]models.User, *ServiceError) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, serverError(err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.UserProfile, *ServiceError) {
	user, err := s.repo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("User not found")
	}
	if err != nil {
		s.logger.Error("Failed to load user", zap.String("user_id", userID), zap.Error(err))
		return nil, serverError(err)
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
	}
	if email := strings.TrimSpace(req.Email); email != "" && email != user.Email {
		existing, err := s.repo.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != user.ID:
			return nil, badRequest("Email already in use")
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			s.logger.Error("Failed to check email", zap.Error(err))
			return nil, serverError(err)
		}
		updates["email"] = email
	}

	if len(updates) > 0 {
		user, err = s.repo.Update(ctx, userID, updates)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("User not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, badRequest("Email already in use")
		case err != nil:
			s.logger.Error("Failed to update profile", zap.String("user_id", userID), zap.Error(err))
			return nil, serverError(err)
		}
	}

	return &models.UserProfile{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}, nil
}
