package controllers

import (
	"net/http"

	"deals-service/services"

	"github.com/gin-gonic/gin"
)

// fail writes the {success:false, message} envelope used by the admin, store and category routes.
func fail(ctx *gin.Context, svcErr *services.ServiceError) {
	ctx.JSON(svcErr.StatusCode, gin.H{"success": false, "message": svcErr.Message})
}

func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}
