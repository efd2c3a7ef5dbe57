package tool

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// GetFileInfoFromPath reads file information from the local filesystem.
// The MIME type is sniffed from content, not guessed from the extension,
// because it ends up in the /download content-type header.
// Returns fileName, size, mimeType, error.
func GetFileInfoFromPath(filePath string) (string, int64, string, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return "", 0, "", fmt.Errorf("failed to stat file: %v", err)
	}
	if fileInfo.IsDir() {
		return "", 0, "", fmt.Errorf("path is a directory, not a file")
	}

	fileName := filepath.Base(filePath)
	fileSize := fileInfo.Size()

	fileType := "application/octet-stream"
	if mime, err := mimetype.DetectFile(filePath); err == nil {
		fileType = mime.String()
	}

	return fileName, fileSize, fileType, nil
}
