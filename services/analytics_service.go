package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deals-service/models"
	"deals-service/repository"

	aws_pkg "deals-service/pkg/aws"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const recentActivityLimit = 5

// AnalyticsService defines the admin analytics operations.
type AnalyticsService interface {
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, *ServiceError)
	GetRecentActivity(ctx context.Context) (*models.RecentActivity, *ServiceError)
	GetAnalytics(ctx context.Context, analyticsType, id string) (*models.EntityAnalytics, *ServiceError)
	BulkUpdateCouponStatus(ctx context.Context, req *models.BulkStatusRequest) (int64, *ServiceError)
	UpdateFeaturedStatus(ctx context.Context, id string, req *models.FeaturedRequest) (*models.Coupon, *ServiceError)
}

type analyticsServiceImpl struct {
	coupons    repository.CouponRepository
	stores     repository.StoreRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	metrics    MetricsRecorder
	logger     *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(
	coupons repository.CouponRepository,
	stores repository.StoreRepository,
	categories repository.CategoryRepository,
	users repository.UserRepository,
	metrics MetricsRecorder,
	logger *zap.Logger,
) AnalyticsService {
	return &analyticsServiceImpl{
		coupons:    coupons,
		stores:     stores,
		categories: categories,
		users:      users,
		metrics:    metricsOrNoop(metrics),
		logger:     logger,
	}
}

// GetDashboardStats runs the counts and sums concurrently. Each is a separate snapshot,
// so the figures need not be mutually consistent under concurrent writes.
func (s *analyticsServiceImpl) GetDashboardStats(ctx context.Context) (*models.DashboardStats, *ServiceError) {
	var stats models.DashboardStats
	now := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Stores, err = s.stores.Count(gctx)
		return wrap("count stores", err)
	})
	g.Go(func() (err error) {
		stats.Categories, err = s.categories.Count(gctx)
		return wrap("count categories", err)
	})
	g.Go(func() (err error) {
		stats.Users, err = s.users.Count(gctx)
		return wrap("count users", err)
	})
	g.Go(func() (err error) {
		stats.Coupons.Total, err = s.coupons.Count(gctx, nil)
		return wrap("count coupons", err)
	})
	g.Go(func() (err error) {
		stats.Coupons.Active, err = s.coupons.Count(gctx, map[string]interface{}{"status": true})
		return wrap("count active coupons", err)
	})
	g.Go(func() (err error) {
		stats.Coupons.Expired, err = s.coupons.Count(gctx, map[string]interface{}{"expiryDate": map[string]interface{}{"$lt": now}})
		return wrap("count expired coupons", err)
	})
	g.Go(func() (err error) {
		stats.Coupons.Featured, err = s.coupons.Count(gctx, map[string]interface{}{"featured": true})
		return wrap("count featured coupons", err)
	})
	g.Go(func() (err error) {
		stats.Engagement.TotalClicks, err = s.coupons.SumField(gctx, repository.FieldClickCount)
		return wrap("sum clicks", err)
	})
	g.Go(func() (err error) {
		stats.Engagement.TotalUsage, err = s.coupons.SumField(gctx, repository.FieldUsedCount)
		return wrap("sum usage", err)
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to build dashboard stats", zap.Error(err))
		return nil, serverError(err)
	}
	return &stats, nil
}

func (s *analyticsServiceImpl) GetRecentActivity(ctx context.Context) (*models.RecentActivity, *ServiceError) {
	coupons, err := s.coupons.FindRecent(ctx, recentActivityLimit)
	if err != nil {
		s.logger.Error("Failed to fetch recent coupons", zap.Error(err))
		return nil, serverError(err)
	}
	stores, err := s.stores.FindRecent(ctx, recentActivityLimit)
	if err != nil {
		s.logger.Error("Failed to fetch recent stores", zap.Error(err))
		return nil, serverError(err)
	}
	categories, err := s.categories.FindRecent(ctx, recentActivityLimit)
	if err != nil {
		s.logger.Error("Failed to fetch recent categories", zap.Error(err))
		return nil, serverError(err)
	}

	activity := &models.RecentActivity{
		RecentCoupons:    coupons,
		RecentStores:     stores,
		RecentCategories: categories,
	}
	if activity.RecentCoupons == nil {
		activity.RecentCoupons = []models.CouponSummary{}
	}
	if activity.RecentStores == nil {
		activity.RecentStores = []models.Store{}
	}
	if activity.RecentCategories == nil {
		activity.RecentCategories = []models.Category{}
	}
	return activity, nil
}

func (s *analyticsServiceImpl) GetAnalytics(ctx context.Context, analyticsType, id string) (*models.EntityAnalytics, *ServiceError) {
	var field string
	switch models.AnalyticsType(analyticsType) {
	case models.AnalyticsTypeStore:
		field = "store"
	case models.AnalyticsTypeCategory:
		field = "category"
	default:
		return nil, badRequest("Invalid analytics type")
	}

	coupons, err := s.coupons.FindByReference(ctx, field, id)
	if err != nil {
		s.logger.Error("Failed to fetch coupons for analytics",
			zap.String("type", analyticsType), zap.String("id", id), zap.Error(err))
		return nil, serverError(err)
	}
	return summarize(coupons), nil
}

// summarize folds the coupons in the order given. The first coupon with the highest
// click count wins ties.
func summarize(coupons []models.Coupon) *models.EntityAnalytics {
	result := &models.EntityAnalytics{TotalCoupons: len(coupons)}
	for i := range coupons {
		c := &coupons[i]
		result.TotalClicks += c.ClickCount
		result.TotalUsage += c.UsedCount
		if result.MostPopularCoupon == nil || c.ClickCount > result.MostPopularCoupon.ClickCount {
			result.MostPopularCoupon = c
		}
	}
	if result.TotalClicks > 0 {
		result.ConversionRate = float64(result.TotalUsage) / float64(result.TotalClicks) * 100
	}
	return result
}

func (s *analyticsServiceImpl) BulkUpdateCouponStatus(ctx context.Context, req *models.BulkStatusRequest) (int64, *ServiceError) {
	if len(req.CouponIDs) == 0 {
		return 0, badRequest("Please provide coupon IDs")
	}
	if req.Status == nil {
		return 0, badRequest("Status is required")
	}

	modified, err := s.coupons.UpdateStatusMany(ctx, req.CouponIDs, *req.Status)
	if err != nil {
		s.logger.Error("Failed to bulk update coupon status", zap.Int("ids", len(req.CouponIDs)), zap.Error(err))
		return 0, serverError(err)
	}

	recordCountAsync(s.metrics, s.logger, aws_pkg.MetricBulkStatusUpdates, nil)
	s.logger.Info("Bulk coupon status update",
		zap.Int("requested", len(req.CouponIDs)),
		zap.Int64("modified", modified),
		zap.Bool("status", *req.Status))
	return modified, nil
}

func (s *analyticsServiceImpl) UpdateFeaturedStatus(ctx context.Context, id string, req *models.FeaturedRequest) (*models.Coupon, *ServiceError) {
	if req.Featured == nil {
		return nil, badRequest("Featured status is required")
	}

	coupon, err := s.coupons.SetFeatured(ctx, id, *req.Featured)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Coupon not found")
	}
	if err != nil {
		s.logger.Error("Failed to update featured status", zap.String("id", id), zap.Error(err))
		return nil, serverError(err)
	}
	return coupon, nil
}

func wrap(op string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
