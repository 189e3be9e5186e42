package controllers

import (
	"net/http"

	"deals-service/cache"
	"deals-service/models"
	"deals-service/services"

	"github.com/gin-gonic/gin"
)

// CategoryController handles the /api/categories routes.
type CategoryController struct {
	categories services.CategoryService
	cache      *cache.ListingCache
}

func NewCategoryController(categories services.CategoryService, listingCache *cache.ListingCache) *CategoryController {
	return &CategoryController{categories: categories, cache: listingCache}
}

func (cc *CategoryController) categoryInput(ctx *gin.Context) (services.CategoryInput, bool) {
	form, err := readUploadForm(ctx)
	if err != nil {
		badRequest(ctx, err.Error())
		return services.CategoryInput{}, false
	}
	total, err := form.Int("totalCoupons")
	if err != nil {
		badRequest(ctx, err.Error())
		return services.CategoryInput{}, false
	}
	return services.CategoryInput{Name: form.String("name"), TotalCoupons: total, Image: form.File("image")}, true
}

// CreateCategory handles POST /api/categories (multipart: name, totalCoupons, image).
func (cc *CategoryController) CreateCategory(ctx *gin.Context) {
	in, ok := cc.categoryInput(ctx)
	if !ok {
		return
	}

	category, svcErr := cc.categories.CreateCategory(ctx.Request.Context(), in)
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	cc.cache.Invalidate(ctx.Request.Context(), cache.NamespaceCategories)
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "category": category})
}

// GetCategories handles GET /api/categories.
func (cc *CategoryController) GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if version, hit := cc.cache.Get(ctx.Request.Context(), cache.NamespaceCategories, &categories); !hit {
		var svcErr *services.ServiceError
		if categories, svcErr = cc.categories.ListCategories(ctx.Request.Context()); svcErr != nil {
			fail(ctx, svcErr)
			return
		}
		cc.cache.SetAsync(cache.NamespaceCategories, version, categories)
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "count": len(categories), "categories": categories})
}

// GetCategory handles GET /api/categories/:id.
func (cc *CategoryController) GetCategory(ctx *gin.Context) {
	category, svcErr := cc.categories.GetCategory(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "category": category})
}

// UpdateCategory handles PUT /api/categories/:id (multipart: totalCoupons, name, image).
func (cc *CategoryController) UpdateCategory(ctx *gin.Context) {
	in, ok := cc.categoryInput(ctx)
	if !ok {
		return
	}

	category, svcErr := cc.categories.UpdateCategory(ctx.Request.Context(), ctx.Param("id"), in)
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	cc.cache.Invalidate(ctx.Request.Context(), cache.NamespaceCategories)
	ctx.JSON(http.StatusOK, gin.H{"success": true, "category": category})
}

// DeleteCategory handles DELETE /api/categories/:id.
func (cc *CategoryController) DeleteCategory(ctx *gin.Context) {
	if svcErr := cc.categories.DeleteCategory(ctx.Request.Context(), ctx.Param("id")); svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	cc.cache.Invalidate(ctx.Request.Context(), cache.NamespaceCategories)
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted successfully"})
}
