package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/airshare-go/api/models"
)

// HandleAirshare answers the role probe on GET /airshare. The body is the
// exact role literal other implementations match on.
func HandleAirshare(c *gin.Context) {
	session := models.GetShareSession()
	if session == nil {
		c.String(http.StatusServiceUnavailable, "")
		return
	}
	c.String(http.StatusOK, session.Role.Identifier())
}
