package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/moyoez/airshare-go/api/models"
	"github.com/moyoez/airshare-go/discovery"
	"github.com/moyoez/airshare-go/pack"
	"github.com/moyoez/airshare-go/session"
	"github.com/moyoez/airshare-go/tool"
	"github.com/moyoez/airshare-go/transfer"
	"github.com/moyoez/airshare-go/types"
)

func main() {
	cfg := tool.SetFlags()
	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}

	tool.InitLogger()
	switch strings.ToLower(cfg.Log) {
	case "", "dev":
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	case "prod":
		tool.DefaultLogger.SetLevel(log.InfoLevel)
	case "none":
		tool.DefaultLogger.SetLevel(log.FatalLevel)
	default:
		tool.DefaultLogger.Warnf("Unknown log mode %q, using debug level", cfg.Log)
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	}

	if cfg.UsePort > 0 {
		appCfg.Port = cfg.UsePort
	}
	if cfg.UseUploadDir != "" {
		appCfg.UploadFolder = cfg.UseUploadDir
	}
	models.SetDefaultUploadFolder(appCfg.UploadFolder)

	if cfg.Code == "" {
		tool.DefaultLogger.Fatalf("-code is required")
	}

	registry := discovery.NewRegistry(
		discovery.WithLookupTimeout(time.Duration(appCfg.LookupTimeoutSeconds) * time.Second))
	defer registry.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case cfg.Send != "":
		paths := splitPaths(cfg.Send)
		if err := transfer.Send(ctx, registry, cfg.Code, paths, cfg.Compress); err != nil {
			tool.DefaultLogger.Fatalf("%v", err)
		}
	case cfg.Fetch:
		result, err := transfer.Fetch(ctx, registry, cfg.Code, cfg.OutDir)
		if err != nil {
			tool.DefaultLogger.Fatalf("%v", err)
		}
		if result.Text != "" {
			fmt.Println(result.Text)
		}
	default:
		runServer(ctx, cfg, appCfg.Port, registry)
	}
}

// runServer builds the share session from the flags and hosts it until the
// process is interrupted.
func runServer(ctx context.Context, cfg tool.Config, port int, registry *discovery.Registry) {
	shareSession, cleanup, err := buildSession(cfg)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	defer cleanup()

	handle, err := session.Start(session.Config{
		Code:     cfg.Code,
		Port:     port,
		Registry: registry,
		Session:  shareSession,
	})
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}

	select {
	case <-ctx.Done():
		if err := handle.Stop(); err != nil {
			tool.DefaultLogger.Errorf("Server stopped with error: %v", err)
		}
	case <-handle.Done():
		if err := handle.Err(); err != nil {
			tool.DefaultLogger.Fatalf("%v", err)
		}
	}
}

func buildSession(cfg tool.Config) (*types.ShareSession, func(), error) {
	noop := func() {}
	switch {
	case cfg.Text != "":
		s, err := models.NewTextSession(cfg.Text)
		return s, noop, err
	case cfg.File != "":
		artifact, name, cleanup, err := pack.Prepare(splitPaths(cfg.File), cfg.Compress)
		if err != nil {
			return nil, noop, err
		}
		s, err := models.NewFileSession(artifact, name)
		if err != nil {
			cleanup()
			return nil, noop, err
		}
		return s, cleanup, nil
	case cfg.Receive:
		return models.NewReceiveSession(), noop, nil
	default:
		return nil, noop, fmt.Errorf("one of -text, -file or -receive is required: %w", types.ErrInvalidInput)
	}
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths
}
