package controllers

import (
	"net/http"

	"deals-service/models"
	"deals-service/services"

	"github.com/gin-gonic/gin"
)

// CouponController handles the /api/coupons routes. These keep the plain response
// shapes the listing clients consume: the document itself on success, {error} on
// a bad request and {message} otherwise.
type CouponController struct {
	couponService services.CouponService
}

// NewCouponController creates a new CouponController.
func NewCouponController(couponService services.CouponService) *CouponController {
	return &CouponController{couponService: couponService}
}

func couponFail(ctx *gin.Context, svcErr *services.ServiceError) {
	if svcErr.StatusCode == http.StatusBadRequest {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(svcErr.StatusCode, gin.H{"message": svcErr.Message})
}

// CreateCoupon handles POST /api/coupons.
func (cc *CouponController) CreateCoupon(ctx *gin.Context) {
	var req models.CreateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	coupon, svcErr := cc.couponService.CreateCoupon(ctx.Request.Context(), &req)
	if svcErr != nil {
		couponFail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, coupon)
}

// GetCoupons handles GET /api/coupons.
func (cc *CouponController) GetCoupons(ctx *gin.Context) {
	coupons, svcErr := cc.couponService.ListCoupons(ctx.Request.Context())
	if svcErr != nil {
		couponFail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, coupons)
}

// GetCoupon handles GET /api/coupons/:id.
func (cc *CouponController) GetCoupon(ctx *gin.Context) {
	coupon, svcErr := cc.couponService.GetCoupon(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		couponFail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, coupon)
}

// UpdateCoupon handles PUT /api/coupons/:id.
func (cc *CouponController) UpdateCoupon(ctx *gin.Context) {
	var req models.UpdateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	coupon, svcErr := cc.couponService.UpdateCoupon(ctx.Request.Context(), ctx.Param("id"), &req)
	if svcErr != nil {
		couponFail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, coupon)
}

// DeleteCoupon handles DELETE /api/coupons/:id.
func (cc *CouponController) DeleteCoupon(ctx *gin.Context) {
	if svcErr := cc.couponService.DeleteCoupon(ctx.Request.Context(), ctx.Param("id")); svcErr != nil {
		couponFail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
}

// RecordClick handles POST /api/coupons/:id/click.
func (cc *CouponController) RecordClick(ctx *gin.Context) {
	coupon, svcErr := cc.couponService.RecordClick(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "clickCount": coupon.ClickCount})
}

// RecordUse handles POST /api/coupons/:id/use.
func (cc *CouponController) RecordUse(ctx *gin.Context) {
	coupon, svcErr := cc.couponService.RecordUse(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "usedCount": coupon.UsedCount})
}
