package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"deals-service/middleware"
	"deals-service/models"
	"deals-service/services"

	"github.com/gin-gonic/gin"
)

// AdminController serves the dashboard, analytics and admin account routes.
type AdminController struct {
	analytics services.AnalyticsService
	users     services.UserService
}

func NewAdminController(analytics services.AnalyticsService, users services.UserService) *AdminController {
	return &AdminController{analytics: analytics, users: users}
}

// GetDashboardStats handles GET /api/admin/dashboard.
func (ac *AdminController) GetDashboardStats(ctx *gin.Context) {
	stats, svcErr := ac.analytics.GetDashboardStats(ctx.Request.Context())
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// GetRecentActivity handles GET /api/admin/recent-activity.
func (ac *AdminController) GetRecentActivity(ctx *gin.Context) {
	activity, svcErr := ac.analytics.GetRecentActivity(ctx.Request.Context())
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "activity": activity})
}

// GetAnalytics handles GET /api/admin/analytics/:type/:id.
func (ac *AdminController) GetAnalytics(ctx *gin.Context) {
	analytics, svcErr := ac.analytics.GetAnalytics(ctx.Request.Context(), ctx.Param("type"), ctx.Param("id"))
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "analytics": analytics})
}

// BulkUpdateCouponStatus handles PUT /api/admin/coupons/bulk-status-update.
func (ac *AdminController) BulkUpdateCouponStatus(ctx *gin.Context) {
	var req models.BulkStatusRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}

	modified, svcErr := ac.analytics.BulkUpdateCouponStatus(ctx.Request.Context(), &req)
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       fmt.Sprintf("%d coupons updated successfully", modified),
		"modifiedCount": modified,
	})
}

// UpdateFeaturedStatus handles PUT /api/admin/coupons/:id/featured.
func (ac *AdminController) UpdateFeaturedStatus(ctx *gin.Context) {
	var req models.FeaturedRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}

	coupon, svcErr := ac.analytics.UpdateFeaturedStatus(ctx.Request.Context(), ctx.Param("id"), &req)
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	message := "Coupon removed from featured"
	if *req.Featured {
		message = "Coupon marked as featured"
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": message, "coupon": coupon})
}

// GetUsers handles GET /api/admin/users.
func (ac *AdminController) GetUsers(ctx *gin.Context) {
	users, svcErr := ac.users.ListUsers(ctx.Request.Context())
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "count": len(users), "users": users})
}

// UpdateProfile handles PUT /api/admin/profile for the authenticated caller.
func (ac *AdminController) UpdateProfile(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req models.UpdateProfileRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		badRequest(ctx, validationMessage(err))
		return
	}

	profile, svcErr := ac.users.UpdateProfile(ctx.Request.Context(), userID, &req)
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}

// bindOptionalJSON decodes the body into dst. An empty body leaves dst zero-valued so
// the service reports which field is missing.
func bindOptionalJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		badRequest(ctx, "Invalid request body")
		return false
	}
	return true
}
