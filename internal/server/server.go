// Package server exposes the sandbox to agent runtimes as an MCP server
// over stdio, with hot reload of the rules file.
package server

import (
	"context"
	"fmt"
	"os"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/ppiankov/filewarden/internal/audit"
	"github.com/ppiankov/filewarden/internal/classify"
	"github.com/ppiankov/filewarden/internal/config"
	"github.com/ppiankov/filewarden/internal/gate"
	"github.com/ppiankov/filewarden/internal/sandbox"
)

// Config holds MCP server configuration.
type Config struct {
	ConfigPath string
	Logger     *zerolog.Logger
}

// Server wraps the MCP SDK server around one sandboxed session. The
// audit log lives for the whole session; the gate and sandbox are
// rebuilt when the rules file reloads.
type Server struct {
	mcpServer *mcpsdk.Server
	log       zerolog.Logger

	mu       sync.RWMutex
	sb       *sandbox.Sandbox
	auditLog *audit.Log
	cfgPath  string
	cfgHash  string
}

// New creates an MCP server with loaded scope rules and registered tools.
func New(cfg Config) (*Server, error) {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("component", "server").Logger()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	fileCfg, hash, err := config.LoadWithHash(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("server: load config: %w", err)
	}
	store, err := fileCfg.Store()
	if err != nil {
		return nil, fmt.Errorf("server: build rule store: %w", err)
	}

	auditLog := audit.NewLog()
	g := gate.New(store, classify.Default(), auditLog)

	s := &Server{
		log:      logger,
		sb:       sandbox.New(g, fileCfg.AllowedOperations),
		auditLog: auditLog,
		cfgPath:  cfg.ConfigPath,
		cfgHash:  hash,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "filewarden",
			Version: "0.1.0",
		},
		nil,
	)
	s.registerTools()

	logger.Info().
		Str("agent_id", s.sb.AgentID()).
		Str("config_hash", hash).
		Msg("session started")
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Reload re-reads the rules file and swaps in a fresh gate and sandbox.
// The session audit log is carried over: reloading rules never discards
// the trail.
func (s *Server) Reload() error {
	fileCfg, hash, err := config.LoadWithHash(s.cfgPath)
	if err != nil {
		return fmt.Errorf("server: reload config: %w", err)
	}
	store, err := fileCfg.Store()
	if err != nil {
		return fmt.Errorf("server: rebuild rule store: %w", err)
	}

	s.mu.Lock()
	s.sb = sandbox.New(gate.New(store, classify.Default(), s.auditLog), fileCfg.AllowedOperations)
	s.cfgHash = hash
	s.mu.Unlock()

	s.log.Info().Str("config_hash", hash).Msg("rules reloaded")
	return nil
}

// Sandbox returns the current sandbox under the reload lock.
func (s *Server) Sandbox() *sandbox.Sandbox {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sb
}

// AuditLog returns the session audit log.
func (s *Server) AuditLog() *audit.Log {
	return s.auditLog
}

// ConfigHash returns the hash of the rule set currently in force.
func (s *Server) ConfigHash() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfgHash
}
