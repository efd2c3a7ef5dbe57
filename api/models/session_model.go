// Package models holds the process-wide share session state the controllers
// read from. The session is set once before the server starts and is
// immutable afterwards.
package models

import (
	"fmt"
	"sync"

	"github.com/moyoez/airshare-go/tool"
	"github.com/moyoez/airshare-go/types"
)

var (
	mu      sync.RWMutex
	current *types.ShareSession

	DefaultUploadFolder = "uploads"
)

// NewTextSession builds a text-sender session.
func NewTextSession(text string) (*types.ShareSession, error) {
	if text == "" {
		return nil, fmt.Errorf("text payload is empty: %w", types.ErrInvalidInput)
	}
	return &types.ShareSession{
		Role: types.RoleTextSender,
		Text: text,
	}, nil
}

// NewFileSession builds a file-sender session from a prepared artifact.
// Size and MIME type are derived here, once, from the file on disk.
func NewFileSession(artifactPath, displayName string) (*types.ShareSession, error) {
	name, size, mimeType, err := tool.GetFileInfoFromPath(artifactPath)
	if err != nil {
		return nil, err
	}
	if displayName == "" {
		displayName = name
	}
	return &types.ShareSession{
		Role:        types.RoleFileSender,
		Path:        artifactPath,
		DisplayName: displayName,
		Size:        size,
		MimeType:    mimeType,
	}, nil
}

// NewReceiveSession builds an upload-receiver session.
func NewReceiveSession() *types.ShareSession {
	return &types.ShareSession{Role: types.RoleUploadReceiver}
}

func SetShareSession(s *types.ShareSession) {
	mu.Lock()
	defer mu.Unlock()
	current = s
}

func GetShareSession() *types.ShareSession {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func SetDefaultUploadFolder(folder string) {
	if folder != "" {
		mu.Lock()
		defer mu.Unlock()
		DefaultUploadFolder = folder
	}
}

func GetUploadFolder() string {
	mu.RLock()
	defer mu.RUnlock()
	return DefaultUploadFolder
}
