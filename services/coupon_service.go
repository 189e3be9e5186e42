package services

import (
	"context"
	"errors"
	"strings"

	"deals-service/models"
	"deals-service/repository"

	aws_pkg "deals-service/pkg/aws"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CouponService defines the coupon CRUD and engagement operations.
type CouponService interface {
	CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, *ServiceError)
	ListCoupons(ctx context.Context) ([]models.PopulatedCoupon, *ServiceError)
	GetCoupon(ctx context.Context, id string) (*models.PopulatedCoupon, *ServiceError)
	UpdateCoupon(ctx context.Context, id string, req *models.UpdateCouponRequest) (*models.Coupon, *ServiceError)
	DeleteCoupon(ctx context.Context, id string) *ServiceError
	RecordClick(ctx context.Context, id string) (*models.Coupon, *ServiceError)
	RecordUse(ctx context.Context, id string) (*models.Coupon, *ServiceError)
}

type couponServiceImpl struct {
	repo    repository.CouponRepository
	metrics MetricsRecorder
	logger  *zap.Logger
}

// NewCouponService creates a new CouponService.
func NewCouponService(repo repository.CouponRepository, metrics MetricsRecorder, logger *zap.Logger) CouponService {
	return &couponServiceImpl{repo: repo, metrics: metricsOrNoop(metrics), logger: logger}
}

func (s *couponServiceImpl) CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, *ServiceError) {
	storeID, err := primitive.ObjectIDFromHex(req.Store)
	if err != nil {
		return nil, badRequest("Invalid store id")
	}
	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		return nil, badRequest("Invalid category id")
	}

	coupon := &models.Coupon{
		Store:    storeID,
		Category: categoryID,
		CouponDetails: models.CouponDetails{
			CouponCode:            strings.TrimSpace(req.CouponCode),
			DiscountType:          req.DiscountType,
			DiscountValue:         *req.DiscountValue,
			AffiliateLink:         req.AffiliateLink,
			ExpiryDate:            *req.ExpiryDate,
			Status:                true,
			Terms:                 req.Terms,
			MinimumPurchaseAmount: req.MinimumPurchaseAmount,
			UsageLimit:            req.UsageLimit,
			TargetAudience:        req.TargetAudience,
			Description:           req.Description,
			CouponType:            req.CouponType,
			StartDate:             req.StartDate,
			MaxDiscountCap:        req.MaxDiscountCap,
			Tags:                  req.Tags,
		},
	}
	if req.Status != nil {
		coupon.Status = *req.Status
	}
	if req.Featured != nil {
		coupon.Featured = *req.Featured
	}

	if err := s.repo.Create(ctx, coupon); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, badRequest("Coupon code already exists")
		}
		s.logger.Error("Failed to create coupon", zap.String("code", coupon.CouponCode), zap.Error(err))
		return nil, serverError(err)
	}

	s.logger.Info("Coupon created", zap.String("id", coupon.ID.Hex()), zap.String("code", coupon.CouponCode))
	return coupon, nil
}

func (s *couponServiceImpl) ListCoupons(ctx context.Context) ([]models.PopulatedCoupon, *ServiceError) {
	coupons, err := s.repo.FindAllPopulated(ctx)
	if err != nil {
		s.logger.Error("Failed to list coupons", zap.Error(err))
		return nil, serverError(err)
	}
	return coupons, nil
}

func (s *couponServiceImpl) GetCoupon(ctx context.Context, id string) (*models.PopulatedCoupon, *ServiceError) {
	coupon, err := s.repo.FindByIDPopulated(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Coupon not found")
	}
	if err != nil {
		s.logger.Error("Failed to fetch coupon", zap.String("id", id), zap.Error(err))
		return nil, serverError(err)
	}
	return coupon, nil
}

func (s *couponServiceImpl) UpdateCoupon(ctx context.Context, id string, req *models.UpdateCouponRequest) (*models.Coupon, *ServiceError) {
	updates, svcErr := couponUpdates(req)
	if svcErr != nil {
		return nil, svcErr
	}

	coupon, err := s.repo.Update(ctx, id, updates)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, notFound("Coupon not found")
	case errors.Is(err, repository.ErrDuplicate):
		return nil, badRequest("Coupon code already exists")
	case err != nil:
		s.logger.Error("Failed to update coupon", zap.String("id", id), zap.Error(err))
		return nil, serverError(err)
	}
	return coupon, nil
}

func couponUpdates(req *models.UpdateCouponRequest) (map[string]interface{}, *ServiceError) {
	updates := map[string]interface{}{}
	if req.Store != nil {
		oid, err := primitive.ObjectIDFromHex(*req.Store)
		if err != nil {
			return nil, badRequest("Invalid store id")
		}
		updates["store"] = oid
	}
	if req.Category != nil {
		oid, err := primitive.ObjectIDFromHex(*req.Category)
		if err != nil {
			return nil, badRequest("Invalid category id")
		}
		updates["category"] = oid
	}
	if req.CouponCode != nil {
		updates["couponCode"] = strings.TrimSpace(*req.CouponCode)
	}
	if req.DiscountType != nil {
		updates["discountType"] = *req.DiscountType
	}
	if req.DiscountValue != nil {
		updates["discountValue"] = *req.DiscountValue
	}
	if req.AffiliateLink != nil {
		updates["affiliateLink"] = *req.AffiliateLink
	}
	if req.ExpiryDate != nil {
		updates["expiryDate"] = *req.ExpiryDate
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.Terms != nil {
		updates["terms"] = *req.Terms
	}
	if req.MinimumPurchaseAmount != nil {
		updates["minimumPurchaseAmount"] = *req.MinimumPurchaseAmount
	}
	if req.UsageLimit != nil {
		updates["usageLimit"] = *req.UsageLimit
	}
	if req.TargetAudience != nil {
		updates["targetAudience"] = *req.TargetAudience
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CouponType != nil {
		updates["couponType"] = *req.CouponType
	}
	if req.StartDate != nil {
		updates["startDate"] = *req.StartDate
	}
	if req.MaxDiscountCap != nil {
		updates["maxDiscountCap"] = *req.MaxDiscountCap
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}
	return updates, nil
}

func (s *couponServiceImpl) DeleteCoupon(ctx context.Context, id string) *ServiceError {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("Coupon not found")
	}
	if err != nil {
		s.logger.Error("Failed to delete coupon", zap.String("id", id), zap.Error(err))
		return serverError(err)
	}
	s.logger.Info("Coupon deleted", zap.String("id", id))
	return nil
}

func (s *couponServiceImpl) RecordClick(ctx context.Context, id string) (*models.Coupon, *ServiceError) {
	return s.increment(ctx, id, repository.FieldClickCount, aws_pkg.MetricCouponClicks)
}

func (s *couponServiceImpl) RecordUse(ctx context.Context, id string) (*models.Coupon, *ServiceError) {
	return s.increment(ctx, id, repository.FieldUsedCount, aws_pkg.MetricCouponUses)
}

func (s *couponServiceImpl) increment(ctx context.Context, id, field, metric string) (*models.Coupon, *ServiceError) {
	coupon, err := s.repo.Increment(ctx, id, field)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Coupon not found")
	}
	if err != nil {
		s.logger.Error("Failed to increment coupon counter",
			zap.String("id", id), zap.String("field", field), zap.Error(err))
		return nil, serverError(err)
	}
	recordCountAsync(s.metrics, s.logger, metric, map[string]string{"Store": coupon.Store.Hex()})
	return coupon, nil
}
