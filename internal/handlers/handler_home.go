package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Buddy Tix Tracker API v1"})
}

// getHealth reports liveness. The ledger is loaded before the server starts,
// so a running process is a healthy one.
func getHealth(ctx *gin.Context) {
	ctx.String(http.StatusOK, "OK")
}

// registerHomeRoutes registers the unversioned routes
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/", getHome)
	r.GET("/health", getHealth)
}
