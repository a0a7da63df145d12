package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myrestapi/backend/internal/model"
)

// Ping is the health check endpoint.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Index godoc
// @Summary API index
// @Tags index
// @Produce json
// @Success 200 {object} model.IndexResource
// @Router /api [get]
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, model.IndexResource{
		Links: model.Links{
			"lectures": {Href: lecturesPath},
		},
	})
}
