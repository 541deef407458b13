package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) RootInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "File Upload Service API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"upload": "/upload-document",
			"files":  "/files",
		},
	})
}

func (a *API) Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}
