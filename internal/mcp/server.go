// ABOUTME: MCP server initialization and configuration
// ABOUTME: Sets up server with collection tools and resources for AI agents

package mcp

import (
	"context"
	"fmt"

	"github.com/harper/reel/internal/stores"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// Server wraps the MCP server with the session's stores.
type Server struct {
	mcp    *mcp.Server
	reg    *stores.Registry
	logger zerolog.Logger
}

// NewServer creates MCP server with all capabilities.
func NewServer(reg *stores.Registry, logger zerolog.Logger) (*Server, error) {
	if reg == nil {
		return nil, fmt.Errorf("store registry is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "reel",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:    mcpServer,
		reg:    reg,
		logger: logger.With().Str("component", "mcp").Logger(),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info().Msg("serving on stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
