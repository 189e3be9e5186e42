package controllers

import (
	"net/http"

	"deals-service/cache"
	"deals-service/models"
	"deals-service/services"

	"github.com/gin-gonic/gin"
)

// StoreController handles the /api/stores routes.
type StoreController struct {
	stores services.StoreService
	cache  *cache.ListingCache
}

func NewStoreController(stores services.StoreService, listingCache *cache.ListingCache) *StoreController {
	return &StoreController{stores: stores, cache: listingCache}
}

func (sc *StoreController) storeInput(ctx *gin.Context) (services.StoreInput, bool) {
	form, err := readUploadForm(ctx)
	if err != nil {
		badRequest(ctx, err.Error())
		return services.StoreInput{}, false
	}
	total, err := form.Int("totalCoupons")
	if err != nil {
		badRequest(ctx, err.Error())
		return services.StoreInput{}, false
	}
	return services.StoreInput{Name: form.String("name"), TotalCoupons: total, Logo: form.File("logo")}, true
}

// CreateStore handles POST /api/stores (multipart: name, totalCoupons, logo).
func (sc *StoreController) CreateStore(ctx *gin.Context) {
	in, ok := sc.storeInput(ctx)
	if !ok {
		return
	}

	store, svcErr := sc.stores.CreateStore(ctx.Request.Context(), in)
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	sc.cache.Invalidate(ctx.Request.Context(), cache.NamespaceStores)
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "store": store})
}

// GetStores handles GET /api/stores.
func (sc *StoreController) GetStores(ctx *gin.Context) {
	var stores []models.Store
	if version, hit := sc.cache.Get(ctx.Request.Context(), cache.NamespaceStores, &stores); !hit {
		var svcErr *services.ServiceError
		if stores, svcErr = sc.stores.ListStores(ctx.Request.Context()); svcErr != nil {
			fail(ctx, svcErr)
			return
		}
		sc.cache.SetAsync(cache.NamespaceStores, version, stores)
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "count": len(stores), "stores": stores})
}

// GetStore handles GET /api/stores/:id.
func (sc *StoreController) GetStore(ctx *gin.Context) {
	store, svcErr := sc.stores.GetStore(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "store": store})
}

// UpdateStore handles PUT /api/stores/:id (multipart: totalCoupons, name, logo).
func (sc *StoreController) UpdateStore(ctx *gin.Context) {
	in, ok := sc.storeInput(ctx)
	if !ok {
		return
	}

	store, svcErr := sc.stores.UpdateStore(ctx.Request.Context(), ctx.Param("id"), in)
	if svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	sc.cache.Invalidate(ctx.Request.Context(), cache.NamespaceStores)
	ctx.JSON(http.StatusOK, gin.H{"success": true, "store": store})
}

// DeleteStore handles DELETE /api/stores/:id.
func (sc *StoreController) DeleteStore(ctx *gin.Context) {
	if svcErr := sc.stores.DeleteStore(ctx.Request.Context(), ctx.Param("id")); svcErr != nil {
		fail(ctx, svcErr)
		return
	}
	sc.cache.Invalidate(ctx.Request.Context(), cache.NamespaceStores)
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Store deleted successfully"})
}
