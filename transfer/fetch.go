package transfer

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/moyoez/airshare-go/discovery"
	"github.com/moyoez/airshare-go/tool"
	"github.com/moyoez/airshare-go/types"
)

// FetchResult is what a fetch produced: shared text, or the path a file
// was saved to.
type FetchResult struct {
	Text      string
	SavedPath string
}

// Fetch pulls whatever the sender advertised under code is sharing: the
// text payload for a text sender, the streamed artifact for a file sender.
// An upload receiver is a role mismatch for this flow.
func Fetch(ctx context.Context, reg *discovery.Registry, code, destDir string) (*FetchResult, error) {
	record, err := reg.LookupContext(ctx, code)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("the airshare `%s.local` does not exist: %w", code, types.ErrServiceNotFound)
	}
	return FetchFrom(ctx, record, destDir)
}

// FetchFrom performs the fetch against an already resolved record.
func FetchFrom(ctx context.Context, record *types.ServiceRecord, destDir string) (*FetchResult, error) {
	// A fetch accepts either sender role, so the expectation is pinned to
	// whatever role the remote committed to once the probe answers.
	target := &types.TransferRequest{Name: record.Name, Address: record.Address, Port: record.Port}
	role, err := probeRole(ctx, baseURL(target))
	if err != nil {
		return nil, err
	}
	target.ExpectedRole = role

	switch role {
	case types.RoleTextSender:
		text, err := fetchText(ctx, target)
		if err != nil {
			return nil, err
		}
		return &FetchResult{Text: text}, nil
	case types.RoleFileSender:
		path, err := fetchFile(ctx, target, destDir)
		if err != nil {
			return nil, err
		}
		tool.DefaultLogger.Infof("Saved `%s` from airshare `%s.local`", filepath.Base(path), target.Name)
		return &FetchResult{SavedPath: path}, nil
	default:
		return nil, fmt.Errorf("the airshare `%s.local` is an upload receiver, nothing to fetch: %w",
			target.Name, types.ErrRoleMismatch)
	}
}

func fetchText(ctx context.Context, target *types.TransferRequest) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", baseURL(target)+"/", nil)
	if err != nil {
		return "", err
	}
	resp, err := tool.GetHttpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("text fetch failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("text fetch failed: %v", err)
	}
	return string(body), nil
}

func fetchFile(ctx context.Context, target *types.TransferRequest, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", baseURL(target)+"/download", nil)
	if err != nil {
		return "", err
	}
	resp, err := tool.StreamHttpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: %s", resp.Status)
	}

	name := "download"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		if fn := params["filename"]; fn != "" {
			name = filepath.Base(fn)
		}
	}

	if destDir == "" {
		destDir = "."
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create destination folder: %v", err)
	}
	dst := tool.NextAvailablePath(destDir, name)

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %v", dst, err)
	}
	defer out.Close()

	if _, err := tool.CopyWithContext(ctx, out, resp.Body); err != nil {
		return "", fmt.Errorf("download interrupted: %v", err)
	}
	return dst, nil
}
