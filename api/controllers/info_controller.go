package controllers

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"github.com/moyoez/airshare-go/api/models"
	"github.com/moyoez/airshare-go/tool"
)

type sessionInfo struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// HandleInfo reports session metadata as JSON on GET /info.
func HandleInfo(c *gin.Context) {
	session := models.GetShareSession()
	if session == nil {
		c.JSON(http.StatusServiceUnavailable, tool.FastReturnError("No active session"))
		return
	}
	payload, err := sonic.Marshal(sessionInfo{
		Role: session.Role.Identifier(),
		Name: session.DisplayName,
		Size: session.Size,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to encode info"))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
