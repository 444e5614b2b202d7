// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes a discrete resonance engine as a set of tools. One engine instance
// lives per server session; clients drive it with tick/boost calls and read
// back metric snapshots.
package mcpserver

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oscillab/resonance/internal/config"
	"github.com/oscillab/resonance/internal/discrete"
	"github.com/oscillab/resonance/internal/ratelimit"
)

// Server wraps the MCP SDK server around a discrete engine instance.
type Server struct {
	server       *sdk.Server
	engine       *discrete.Engine
	preset       string
	toolLimiters ratelimit.ToolLimiters
	audit        *AuditLogger
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "resonance")
	Version string // Server version
	Preset  string // Discrete engine preset ("fast" or "precise")
	Seed    int64  // Random seed; 0 means time-seeded
	DataDir string // Directory for the audit log; empty disables auditing
}

// NewServer creates a new MCP server owning a freshly started engine.
func NewServer(cfg *Config) (*Server, error) {
	engineCfg, err := config.Preset(cfg.Preset)
	if err != nil {
		return nil, fmt.Errorf("resolving preset: %w", err)
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	engine := discrete.NewEngine(engineCfg, rng)
	engine.Start()

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			// Client initialized, ready to serve
		},
	})

	s := &Server{
		server:       mcpServer,
		engine:       engine,
		preset:       cfg.Preset,
		toolLimiters: ratelimit.NewToolLimiters(),
		audit:        NewAuditLogger(cfg.DataDir),
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all resonance MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "resonance_status",
		Description: "Get the engine's current metric snapshot (coherence, entropy, activity, lockup state)",
	}, s.handleStatus)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "resonance_tick",
		Description: "Advance the engine one or more virtual steps and return the final tick result",
	}, s.handleTick)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "resonance_boost",
		Description: "Boost one oscillator's amplitude by prime (unknown primes are ignored)",
	}, s.handleBoost)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "resonance_dampen",
		Description: "Multiply every oscillator's amplitude by a factor",
	}, s.handleDampen)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "resonance_reset",
		Description: "Reset the engine: random phases, zero amplitudes, default coupling, tick count 0",
	}, s.handleReset)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "resonance_recover",
		Description: "Apply the lockup remedy: replace the coupling matrix with random small values",
	}, s.handleRecover)
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	s.audit.Close()

	return err
}

// Close releases server resources.
func (s *Server) Close() error {
	s.audit.Close()
	return nil
}
