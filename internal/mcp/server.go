// ABOUTME: MCP server setup for the recovery tracker.
// ABOUTME: Wraps the MCP server around a loaded tracker and exposes tools and resources.
package mcp

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/harperreed/recovery/internal/logging"
	"github.com/harperreed/recovery/internal/models"
	"github.com/harperreed/recovery/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	tracker   *tracker.Tracker
	logger    *log.Logger
	today     func() models.Date
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithToday overrides how the server determines the current day.
func WithToday(fn func() models.Date) Option {
	return func(s *Server) { s.today = fn }
}

// NewServer creates a new MCP server over a loaded tracker.
func NewServer(t *tracker.Tracker, opts ...Option) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "recovery",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		tracker:   t,
		logger:    logging.Discard(),
		today:     models.Today,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// persistWarning describes a failed save so clients know the change is in memory only.
func (s *Server) persistWarning() string {
	if err := s.tracker.LastPersistError(); err != nil {
		s.logger.Warn("change not persisted", "err", err)
		return "saved in memory only, storage unavailable: " + err.Error()
	}
	return ""
}
