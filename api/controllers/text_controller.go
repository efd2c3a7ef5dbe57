package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/airshare-go/api/eventshub"
	"github.com/moyoez/airshare-go/api/models"
	"github.com/moyoez/airshare-go/tool"
	"github.com/moyoez/airshare-go/types"
)

// HandleText serves the text payload verbatim on GET /.
func HandleText(c *gin.Context) {
	session := models.GetShareSession()
	if session == nil {
		c.String(http.StatusServiceUnavailable, "")
		return
	}

	remote := c.ClientIP()
	tool.DefaultLogger.Infof("Content requested (by %s), transferred!", remote)
	go eventshub.Publish(types.EventTextServed, remote, "", int64(len(session.Text)))

	c.String(http.StatusOK, session.Text)
}
