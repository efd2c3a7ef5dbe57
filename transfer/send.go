// Package transfer implements the client side: pushing a file to a remote
// upload receiver and pulling text or files from a remote sender.
package transfer

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/moyoez/airshare-go/discovery"
	"github.com/moyoez/airshare-go/pack"
	"github.com/moyoez/airshare-go/tool"
	"github.com/moyoez/airshare-go/types"
)

const uploadFieldName = "upload_file"

// Send pushes file(s) to the upload receiver advertised under code.
// Input is validated before any network activity: an empty path list fails
// with ErrInvalidInput and performs no discovery call.
func Send(ctx context.Context, reg *discovery.Registry, code string, paths []string, compress bool) error {
	if len(paths) == 0 {
		return fmt.Errorf("nothing to send: %w", types.ErrInvalidInput)
	}

	record, err := reg.LookupContext(ctx, code)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("the airshare `%s.local` does not exist: %w", code, types.ErrServiceNotFound)
	}

	return SendTo(ctx, record, paths, compress)
}

// SendTo performs the upload against an already resolved record.
func SendTo(ctx context.Context, record *types.ServiceRecord, paths []string, compress bool) error {
	if len(paths) == 0 {
		return fmt.Errorf("nothing to send: %w", types.ErrInvalidInput)
	}

	probeReachability(record)

	req := resolveTarget(record, types.RoleUploadReceiver)
	if err := verifyRole(ctx, req); err != nil {
		return err
	}

	artifact, name, cleanup, err := pack.Prepare(paths, compress)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := uploadArtifact(ctx, baseURL(req), artifact, name); err != nil {
		return err
	}
	tool.DefaultLogger.Infof("Uploaded `%s` to airshare `%s.local`!", name, req.Name)
	return nil
}

// resolveTarget binds a resolved record to the role the upcoming operation
// expects the remote to hold.
func resolveTarget(record *types.ServiceRecord, expected types.Role) *types.TransferRequest {
	return &types.TransferRequest{
		Name:         record.Name,
		Address:      record.Address,
		Port:         record.Port,
		ExpectedRole: expected,
	}
}

func baseURL(req *types.TransferRequest) string {
	return fmt.Sprintf("http://%s:%d", req.Address, req.Port)
}

// verifyRole probes the remote and fails with ErrRoleMismatch unless it
// identifies as the role the request expects.
func verifyRole(ctx context.Context, req *types.TransferRequest) error {
	role, err := probeRole(ctx, baseURL(req))
	if err != nil {
		return err
	}
	if role != req.ExpectedRole {
		return fmt.Errorf("the airshare `%s.local` identifies as %q, not %q: %w",
			req.Name, role.Identifier(), req.ExpectedRole.Identifier(), types.ErrRoleMismatch)
	}
	return nil
}

// probeRole asks /airshare which role the remote committed to.
func probeRole(ctx context.Context, base string) (types.Role, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", base+"/airshare", nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create probe request: %v", err)
	}
	resp, err := tool.GetHttpClient().Do(req)
	if err != nil {
		return 0, fmt.Errorf("role probe failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return 0, fmt.Errorf("role probe failed: %v", err)
	}
	role, ok := types.RoleFromIdentifier(strings.TrimSpace(string(body)))
	if !ok {
		return 0, fmt.Errorf("remote did not identify as an airshare service: %w", types.ErrRoleMismatch)
	}
	return role, nil
}

// probeReachability pings the resolved address before committing to the
// transfer. Purely advisory: failures are logged, never fatal, since many
// networks filter echo traffic.
func probeReachability(record *types.ServiceRecord) {
	if record.Address == nil || record.Address.IsLoopback() {
		return
	}
	pinger, err := probing.NewPinger(record.Address.String())
	if err != nil {
		return
	}
	pinger.SetPrivileged(false)
	pinger.Count = 1
	pinger.Timeout = 2 * time.Second
	if err := pinger.Run(); err != nil || pinger.Statistics().PacketsRecv == 0 {
		tool.DefaultLogger.Debugf("Reachability probe to %s got no reply", record.Address)
	}
}

// uploadArtifact streams the artifact as a multipart POST without buffering
// it whole.
func uploadArtifact(ctx context.Context, base, artifactPath, name string) error {
	f, err := os.Open(artifactPath)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %v", err)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer f.Close()
		part, err := mw.CreateFormFile(uploadFieldName, name)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, "POST", base+"/upload", pr)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := tool.StreamHttpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("upload cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("failed to send upload request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("upload request failed: %s", resp.Status)
	}
	return nil
}
