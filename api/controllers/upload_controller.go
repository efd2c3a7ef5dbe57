package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/airshare-go/api/eventshub"
	"github.com/moyoez/airshare-go/api/models"
	"github.com/moyoez/airshare-go/tool"
	"github.com/moyoez/airshare-go/types"
)

// uploadFieldName is the multipart form field carrying the file. Part of the
// wire contract.
const uploadFieldName = "upload_file"

// HandleUpload accepts a multipart upload on POST /upload and persists it
// under its submitted name in the upload folder.
func HandleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile(uploadFieldName)
	if err != nil {
		tool.DefaultLogger.Errorf("[Upload] Missing %s field: %v", uploadFieldName, err)
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Missing upload_file field"))
		return
	}

	folder := models.GetUploadFolder()
	if err := os.MkdirAll(folder, 0o755); err != nil {
		tool.DefaultLogger.Errorf("[Upload] Failed to create upload folder %s: %v", folder, err)
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to store file"))
		return
	}

	// Base strips any path components a client might smuggle into the name.
	name := filepath.Base(fileHeader.Filename)
	dst := tool.NextAvailablePath(folder, name)

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Unreadable upload"))
		return
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		tool.DefaultLogger.Errorf("[Upload] Failed to create %s: %v", dst, err)
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to store file"))
		return
	}
	defer out.Close()

	written, err := tool.CopyWithContext(c.Request.Context(), out, src)
	if err != nil {
		// partial files are not rolled back; there is no resumption contract
		tool.DefaultLogger.Errorf("[Upload] Transfer failed after %d bytes: %v", written, err)
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Transfer failed"))
		return
	}

	remote := c.ClientIP()
	tool.DefaultLogger.Infof("Received `%s` (%s) from %s", name, tool.FormatSize(written), remote)
	go eventshub.Publish(types.EventFileReceived, remote, name, written)

	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}
