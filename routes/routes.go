package routes

import (
	"deals-service/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes mounts the analytics and admin account routes. Every route requires auth.
func RegisterAdminRoutes(api *gin.RouterGroup, ac *controllers.AdminController, auth gin.HandlerFunc) {
	admin := api.Group("/admin")
	admin.Use(auth)
	admin.GET("/dashboard", ac.GetDashboardStats)
	admin.GET("/recent-activity", ac.GetRecentActivity)
	admin.GET("/analytics/:type/:id", ac.GetAnalytics)
	admin.PUT("/coupons/bulk-status-update", ac.BulkUpdateCouponStatus)
	admin.PUT("/coupons/:id/featured", ac.UpdateFeaturedStatus)
	admin.GET("/users", ac.GetUsers)
	admin.PUT("/profile", ac.UpdateProfile)
}

// RegisterStoreRoutes mounts /stores; reads are public.
func RegisterStoreRoutes(api *gin.RouterGroup, sc *controllers.StoreController, auth gin.HandlerFunc) {
	stores := api.Group("/stores")
	stores.GET("", sc.GetStores)
	stores.GET("/:id", sc.GetStore)
	stores.POST("", auth, sc.CreateStore)
	stores.PUT("/:id", auth, sc.UpdateStore)
	stores.DELETE("/:id", auth, sc.DeleteStore)
}

// RegisterCategoryRoutes mounts /categories; reads are public.
func RegisterCategoryRoutes(api *gin.RouterGroup, cc *controllers.CategoryController, auth gin.HandlerFunc) {
	categories := api.Group("/categories")
	categories.GET("", cc.GetCategories)
	categories.GET("/:id", cc.GetCategory)
	categories.POST("", auth, cc.CreateCategory)
	categories.PUT("/:id", auth, cc.UpdateCategory)
	categories.DELETE("/:id", auth, cc.DeleteCategory)
}

// RegisterCouponRoutes mounts /coupons. Reads and the engagement counters are public.
func RegisterCouponRoutes(api *gin.RouterGroup, cc *controllers.CouponController, auth gin.HandlerFunc) {
	coupons := api.Group("/coupons")
	coupons.GET("", cc.GetCoupons)
	coupons.GET("/:id", cc.GetCoupon)
	coupons.POST("/:id/click", cc.RecordClick)
	coupons.POST("/:id/use", cc.RecordUse)
	coupons.POST("", auth, cc.CreateCoupon)
	coupons.PUT("/:id", auth, cc.UpdateCoupon)
	coupons.DELETE("/:id", auth, cc.DeleteCoupon)
}
