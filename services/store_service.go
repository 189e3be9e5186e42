package services

import (
	"context"
	"errors"
	"strings"

	"deals-service/media"
	"deals-service/models"
	"deals-service/repository"

	"go.uber.org/zap"
)

// StoreInput is a parsed store form. Nil fields were not submitted.
type StoreInput struct {
	Name         *string
	TotalCoupons *int
	Logo         *media.File
}

// StoreService defines the store catalogue operations.
type StoreService interface {
	CreateStore(ctx context.Context, in StoreInput) (*models.Store, *ServiceError)
	ListStores(ctx context.Context) ([]models.Store, *ServiceError)
	GetStore(ctx context.Context, id string) (*models.Store, *ServiceError)
	UpdateStore(ctx context.Context, id string, in StoreInput) (*models.Store, *ServiceError)
	DeleteStore(ctx context.Context, id string) *ServiceError
}

type storeServiceImpl struct {
	repo     repository.StoreRepository
	uploader media.Uploader
	logger   *zap.Logger
}

func NewStoreService(repo repository.StoreRepository, uploader media.Uploader, logger *zap.Logger) StoreService {
	return &storeServiceImpl{repo: repo, uploader: uploader, logger: logger}
}

func (s *storeServiceImpl) CreateStore(ctx context.Context, in StoreInput) (*models.Store, *ServiceError) {
	name := trimmed(in.Name)
	if name == "" || in.Logo == nil {
		return nil, badRequest("Please provide name and logo")
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, badRequest("Store with this name already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to check store name", zap.String("name", name), zap.Error(err))
		return nil, serverError(err)
	}

	asset, err := s.uploader.Upload(ctx, *in.Logo)
	if err != nil {
		s.logger.Error("Failed to upload store logo", zap.String("name", name), zap.Error(err))
		return nil, serverError(err)
	}

	store := &models.Store{Name: name, Logo: asset.URL}
	if in.TotalCoupons != nil {
		store.TotalCoupons = *in.TotalCoupons
	}
	if err := s.repo.Create(ctx, store); err != nil {
		discardAsset(ctx, s.uploader, s.logger, asset.PublicID)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, badRequest("Store with this name already exists")
		}
		s.logger.Error("Failed to create store", zap.String("name", name), zap.Error(err))
		return nil, serverError(err)
	}

	s.logger.Info("Store created", zap.String("id", store.ID.Hex()), zap.String("name", store.Name))
	return store, nil
}

func (s *storeServiceImpl) ListStores(ctx context.Context) ([]models.Store, *ServiceError) {
	stores, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list stores", zap.Error(err))
		return nil, serverError(err)
	}
	return stores, nil
}

func (s *storeServiceImpl) GetStore(ctx context.Context, id string) (*models.Store, *ServiceError) {
	store, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Store not found")
	}
	if err != nil {
		s.logger.Error("Failed to fetch store", zap.String("id", id), zap.Error(err))
		return nil, serverError(err)
	}
	return store, nil
}

func (s *storeServiceImpl) UpdateStore(ctx context.Context, id string, in StoreInput) (*models.Store, *ServiceError) {
	store, svcErr := s.GetStore(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	if name := trimmed(in.Name); name != "" && name != store.Name {
		return nil, badRequest("Store name cannot be updated")
	}

	updates := map[string]interface{}{}
	if in.TotalCoupons != nil {
		updates["totalCoupons"] = *in.TotalCoupons
	}
	var asset *media.Asset
	if in.Logo != nil {
		var err error
		if asset, err = s.uploader.Upload(ctx, *in.Logo); err != nil {
			s.logger.Error("Failed to upload store logo", zap.String("id", id), zap.Error(err))
			return nil, serverError(err)
		}
		updates["logo"] = asset.URL
	}
	if len(updates) == 0 {
		return store, nil
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if asset != nil {
			discardAsset(ctx, s.uploader, s.logger, asset.PublicID)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Store not found")
		}
		s.logger.Error("Failed to update store", zap.String("id", id), zap.Error(err))
		return nil, serverError(err)
	}
	if asset != nil {
		discardAsset(ctx, s.uploader, s.logger, s.uploader.PublicIDFromURL(store.Logo))
	}
	return updated, nil
}

func (s *storeServiceImpl) DeleteStore(ctx context.Context, id string) *ServiceError {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("Store not found")
	}
	if err != nil {
		s.logger.Error("Failed to delete store", zap.String("id", id), zap.Error(err))
		return serverError(err)
	}
	s.logger.Info("Store deleted", zap.String("id", id))
	return nil
}

// discardAsset removes an image from the media host. Failures are only logged.
func discardAsset(ctx context.Context, uploader media.Uploader, logger *zap.Logger, publicID string) {
	if publicID == "" {
		return
	}
	if err := uploader.Delete(ctx, publicID); err != nil {
		logger.Warn("Failed to delete media asset", zap.String("public_id", publicID), zap.Error(err))
	}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
