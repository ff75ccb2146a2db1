// Package mcp exposes campaign data and session prep as MCP tools.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/plotgod/internal/storage"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "plotgod"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Generator produces session prep text from a user prompt.
type Generator interface {
	Generate(ctx context.Context, userPrompt string) (string, error)
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New builds the MCP server and registers the campaign tools against the
// given store and prep generator.
func New(store storage.Store, generator Generator) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}

	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(server, campaignListTool(), campaignListHandler(store))
	mcp.AddTool(server, campaignCreateTool(), campaignCreateHandler(store))
	mcp.AddTool(server, sessionLatestTool(), sessionLatestHandler(store))
	mcp.AddTool(server, sessionAddTool(), sessionAddHandler(store))
	mcp.AddTool(server, partyListTool(), partyListHandler(store))
	mcp.AddTool(server, npcListTool(), npcListHandler(store))
	mcp.AddTool(server, locationListTool(), locationListHandler(store))
	mcp.AddTool(server, sessionPrepTool(), sessionPrepHandler(store, generator))

	return &Server{mcpServer: server}, nil
}

// Serve runs the MCP server on stdio until the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, &mcp.StdioTransport{})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
