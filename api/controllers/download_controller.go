package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/airshare-go/api/eventshub"
	"github.com/moyoez/airshare-go/api/models"
	"github.com/moyoez/airshare-go/tool"
	"github.com/moyoez/airshare-go/types"
)

// downloadChunkSize is fixed by the wire behavior: streaming must move the
// file in 8 KiB chunks and never buffer it whole.
const downloadChunkSize = 8192

const downloadPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Airshare Download</title>
</head>
<body>
<form action="/download" method="get">
    <input type="submit" value="Download %s (%s)"/>
</form>
</body>
</html>
`

// HandleDownloadPage renders the landing page naming the file and its
// human-readable size, GET / for file senders.
func HandleDownloadPage(c *gin.Context) {
	session := models.GetShareSession()
	if session == nil {
		c.String(http.StatusServiceUnavailable, "")
		return
	}
	page := fmt.Sprintf(downloadPageTemplate, session.DisplayName, tool.FormatSize(session.Size))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// HandleDownload streams the artifact on GET /download.
func HandleDownload(c *gin.Context) {
	session := models.GetShareSession()
	if session == nil {
		c.String(http.StatusServiceUnavailable, "")
		return
	}

	f, err := os.Open(session.Path)
	if err != nil {
		tool.DefaultLogger.Errorf("[Download] Failed to open artifact %s: %v", session.Path, err)
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to read file"))
		return
	}
	defer f.Close()

	remote := c.ClientIP()
	tool.DefaultLogger.Infof("Content requested (by %s), transferred!", remote)
	go eventshub.Publish(types.EventFileServed, remote, session.DisplayName, session.Size)

	c.Header("Content-Type", session.MimeType)
	c.Header("Content-Length", strconv.FormatInt(session.Size, 10))
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s; size=%d", session.DisplayName, session.Size))
	c.Status(http.StatusOK)

	buf := make([]byte, downloadChunkSize)
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			if _, writeErr := c.Writer.Write(buf[:n]); writeErr != nil {
				tool.DefaultLogger.Debugf("[Download] Client went away: %v", writeErr)
				return
			}
			c.Writer.Flush()
		}
		if readErr != nil {
			return
		}
	}
}
