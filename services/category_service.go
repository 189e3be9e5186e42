package services

import (
	"context"
	"errors"

	"deals-service/media"
	"deals-service/models"
	"deals-service/repository"

	"go.uber.org/zap"
)

// CategoryInput is a parsed category form. Nil fields were not submitted.
type CategoryInput struct {
	Name         *string
	TotalCoupons *int
	Image        *media.File
}

// CategoryService defines the category catalogue operations.
type CategoryService interface {
	CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, *ServiceError)
	ListCategories(ctx context.Context) ([]models.Category, *ServiceError)
	GetCategory(ctx context.Context, id string) (*models.Category, *ServiceError)
	UpdateCategory(ctx context.Context, id string, in CategoryInput) (*models.Category, *ServiceError)
	DeleteCategory(ctx context.Context, id string) *ServiceError
}

type categoryServiceImpl struct {
	repo     repository.CategoryRepository
	uploader media.Uploader
	logger   *zap.Logger
}

func NewCategoryService(repo repository.CategoryRepository, uploader media.Uploader, logger *zap.Logger) CategoryService {
	return &categoryServiceImpl{repo: repo, uploader: uploader, logger: logger}
}

func (s *categoryServiceImpl) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, *ServiceError) {
	name := trimmed(in.Name)
	if name == "" || in.Image == nil {
		return nil, badRequest("Please provide name and image")
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, badRequest("Category with this name already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to check category name", zap.String("name", name), zap.Error(err))
		return nil, serverError(err)
	}

	asset, err := s.uploader.Upload(ctx, *in.Image)
	if err != nil {
		s.logger.Error("Failed to upload category image", zap.String("name", name), zap.Error(err))
		return nil, serverError(err)
	}

	category := &models.Category{Name: name, Image: asset.URL}
	if in.TotalCoupons != nil {
		category.TotalCoupons = *in.TotalCoupons
	}
	if err := s.repo.Create(ctx, category); err != nil {
		discardAsset(ctx, s.uploader, s.logger, asset.PublicID)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, badRequest("Category with this name already exists")
		}
		s.logger.Error("Failed to create category", zap.String("name", name), zap.Error(err))
		return nil, serverError(err)
	}

	s.logger.Info("Category created", zap.String("id", category.ID.Hex()), zap.String("name", category.Name))
	return category, nil
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, serverError(err)
	}
	return categories, nil
}

func (s *categoryServiceImpl) GetCategory(ctx context.Context, id string) (*models.Category, *ServiceError) {
	category, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Category not found")
	}
	if err != nil {
		s.logger.Error("Failed to fetch category", zap.String("id", id), zap.Error(err))
		return nil, serverError(err)
	}
	return category, nil
}

func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*models.Category, *ServiceError) {
	category, svcErr := s.GetCategory(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	if name := trimmed(in.Name); name != "" && name != category.Name {
		return nil, badRequest("Category name cannot be updated")
	}

	updates := map[string]interface{}{}
	if in.TotalCoupons != nil {
		updates["totalCoupons"] = *in.TotalCoupons
	}
	var asset *media.Asset
	if in.Image != nil {
		var err error
		if asset, err = s.uploader.Upload(ctx, *in.Image); err != nil {
			s.logger.Error("Failed to upload category image", zap.String("id", id), zap.Error(err))
			return nil, serverError(err)
		}
		updates["image"] = asset.URL
	}
	if len(updates) == 0 {
		return category, nil
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if asset != nil {
			discardAsset(ctx, s.uploader, s.logger, asset.PublicID)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Category not found")
		}
		s.logger.Error("Failed to update category", zap.String("id", id), zap.Error(err))
		return nil, serverError(err)
	}
	if asset != nil {
		discardAsset(ctx, s.uploader, s.logger, s.uploader.PublicIDFromURL(category.Image))
	}
	return updated, nil
}

func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id string) *ServiceError {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("Category not found")
	}
	if err != nil {
		s.logger.Error("Failed to delete category", zap.String("id", id), zap.Error(err))
		return serverError(err)
	}
	s.logger.Info("Category deleted", zap.String("id", id))
	return nil
}

