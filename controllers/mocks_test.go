package controllers_test

import (
	"context"

	"deals-service/models"
	"deals-service/services"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockAnalyticsService struct {
	dashboardFn func(ctx context.Context) (*models.DashboardStats, *services.ServiceError)
	recentFn    func(ctx context.Context) (*models.RecentActivity, *services.ServiceError)
	analyticsFn func(ctx context.Context, typ, id string) (*models.EntityAnalytics, *services.ServiceError)
	bulkFn      func(ctx context.Context, req *models.BulkStatusRequest) (int64, *services.ServiceError)
	featuredFn  func(ctx context.Context, id string, req *models.FeaturedRequest) (*models.Coupon, *services.ServiceError)
}

func (m *mockAnalyticsService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, *services.ServiceError) {
	return m.dashboardFn(ctx)
}
func (m *mockAnalyticsService) GetRecentActivity(ctx context.Context) (*models.RecentActivity, *services.ServiceError) {
	return m.recentFn(ctx)
}
func (m *mockAnalyticsService) GetAnalytics(ctx context.Context, typ, id string) (*models.EntityAnalytics, *services.ServiceError) {
	return m.analyticsFn(ctx, typ, id)
}
func (m *mockAnalyticsService) BulkUpdateCouponStatus(ctx context.Context, req *models.BulkStatusRequest) (int64, *services.ServiceError) {
	return m.bulkFn(ctx, req)
}
func (m *mockAnalyticsService) UpdateFeaturedStatus(ctx context.Context, id string, req *models.FeaturedRequest) (*models.Coupon, *services.ServiceError) {
	return m.featuredFn(ctx, id, req)
}

type mockUserService struct {
	listFn    func(ctx context.Context) ([]models.User, *services.ServiceError)
	profileFn func(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.UserProfile, *services.ServiceError)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]models.User, *services.ServiceError) {
	return m.listFn(ctx)
}
func (m *mockUserService) UpdateProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.UserProfile, *services.ServiceError) {
	return m.profileFn(ctx, id, req)
}

type mockStoreService struct {
	createFn func(ctx context.Context, in services.StoreInput) (*models.Store, *services.ServiceError)
	listFn   func(ctx context.Context) ([]models.Store, *services.ServiceError)
	getFn    func(ctx context.Context, id string) (*models.Store, *services.ServiceError)
	updateFn func(ctx context.Context, id string, in services.StoreInput) (*models.Store, *services.ServiceError)
	deleteFn func(ctx context.Context, id string) *services.ServiceError
}

func (m *mockStoreService) CreateStore(ctx context.Context, in services.StoreInput) (*models.Store, *services.ServiceError) {
	return m.createFn(ctx, in)
}
func (m *mockStoreService) ListStores(ctx context.Context) ([]models.Store, *services.ServiceError) {
	return m.listFn(ctx)
}
func (m *mockStoreService) GetStore(ctx context.Context, id string) (*models.Store, *services.ServiceError) {
	return m.getFn(ctx, id)
}
func (m *mockStoreService) UpdateStore(ctx context.Context, id string, in services.StoreInput) (*models.Store, *services.ServiceError) {
	return m.updateFn(ctx, id, in)
}
func (m *mockStoreService) DeleteStore(ctx context.Context, id string) *services.ServiceError {
	return m.deleteFn(ctx, id)
}

type mockCouponService struct {
	createFn func(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, *services.ServiceError)
	listFn   func(ctx context.Context) ([]models.PopulatedCoupon, *services.ServiceError)
	getFn    func(ctx context.Context, id string) (*models.PopulatedCoupon, *services.ServiceError)
	updateFn func(ctx context.Context, id string, req *models.UpdateCouponRequest) (*models.Coupon, *services.ServiceError)
	deleteFn func(ctx context.Context, id string) *services.ServiceError
	clickFn  func(ctx context.Context, id string) (*models.Coupon, *services.ServiceError)
	useFn    func(ctx context.Context, id string) (*models.Coupon, *services.ServiceError)
}

func (m *mockCouponService) CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, *services.ServiceError) {
	return m.createFn(ctx, req)
}
func (m *mockCouponService) ListCoupons(ctx context.Context) ([]models.PopulatedCoupon, *services.ServiceError) {
	return m.listFn(ctx)
}
func (m *mockCouponService) GetCoupon(ctx context.Context, id string) (*models.PopulatedCoupon, *services.ServiceError) {
	return m.getFn(ctx, id)
}
func (m *mockCouponService) UpdateCoupon(ctx context.Context, id string, req *models.UpdateCouponRequest) (*models.Coupon, *services.ServiceError) {
	return m.updateFn(ctx, id, req)
}
func (m *mockCouponService) DeleteCoupon(ctx context.Context, id string) *services.ServiceError {
	return m.deleteFn(ctx, id)
}
func (m *mockCouponService) RecordClick(ctx context.Context, id string) (*models.Coupon, *services.ServiceError) {
	return m.clickFn(ctx, id)
}
func (m *mockCouponService) RecordUse(ctx context.Context, id string) (*models.Coupon, *services.ServiceError) {
	return m.useFn(ctx, id)
}
