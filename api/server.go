// Package api hosts the transfer server: a gin engine whose routes are
// fixed at startup from the session role.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/moyoez/airshare-go/api/controllers"
	"github.com/moyoez/airshare-go/api/eventshub"
	"github.com/moyoez/airshare-go/api/models"
	"github.com/moyoez/airshare-go/discovery"
	"github.com/moyoez/airshare-go/tool"
	"github.com/moyoez/airshare-go/types"
)

// Server advertises one share session under a code and serves it over HTTP.
type Server struct {
	code     string
	port     int
	registry *discovery.Registry
	server   *http.Server
}

func NewServer(code string, port int, registry *discovery.Registry) *Server {
	return &Server{
		code:     code,
		port:     port,
		registry: registry,
	}
}

// BuildEngine registers the role-conditioned routes. Every role answers the
// probe, info and events routes; content routes depend on the role and never
// change for the server's lifetime.
func BuildEngine(role types.Role) *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/airshare", controllers.HandleAirshare)
	engine.GET("/info", controllers.HandleInfo)
	engine.GET("/events", eventshub.HandleWebsocket)

	switch role {
	case types.RoleTextSender:
		engine.GET("/", controllers.HandleText)
	case types.RoleFileSender:
		engine.GET("/", controllers.HandleDownloadPage)
		engine.GET("/download", controllers.HandleDownload)
	case types.RoleUploadReceiver:
		engine.POST("/upload", controllers.HandleUpload)
	}
	return engine
}

// Start registers the service, binds the listener and serves until ctx is
// cancelled. Registration completes before the bind, so no request is ever
// served under a name the discovery layer would deny. The session must be
// set in models before calling Start.
func (s *Server) Start(ctx context.Context) error {
	session := models.GetShareSession()
	if session == nil {
		return fmt.Errorf("no share session set: %w", types.ErrInvalidInput)
	}

	record, err := s.registry.Register(s.code, s.port)
	if err != nil {
		return err
	}
	defer s.registry.Unregister(s.code)

	engine := BuildEngine(session.Role)
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: engine,
	}

	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind port %d: %v", s.port, err)
	}

	s.printShareHint(session, record)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// printShareHint logs the share URLs and prints a terminal QR code of the
// direct address, the way senders expect to hand the link to a phone.
func (s *Server) printShareHint(session *types.ShareSession, record *types.ServiceRecord) {
	urlPort := ""
	if s.port != 80 {
		urlPort = fmt.Sprintf(":%d", s.port)
	}
	url := fmt.Sprintf("http://%s%s", record.Address, urlPort)

	what := session.Role.Identifier()
	switch session.Role {
	case types.RoleTextSender:
		what = "text"
	case types.RoleFileSender:
		what = fmt.Sprintf("`%s` (%s)", session.DisplayName, tool.FormatSize(session.Size))
	case types.RoleUploadReceiver:
		what = "upload receiver"
	}
	tool.DefaultLogger.Infof("Serving %s at %s and `http://%s.local%s`, press Ctrl+C to stop sharing...",
		what, url, s.code, urlPort)

	if qr, err := qrcode.New(url, qrcode.Medium); err == nil {
		fmt.Print(qr.ToSmallString(false))
	}
}
