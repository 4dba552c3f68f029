package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func getHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// registerHealthRoutes registers the unauthenticated health check
func registerHealthRoutes(r gin.IRoutes) {
	r.GET("/health", getHealth)
}
