package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davidbz/docquote/internal/config"
	"github.com/davidbz/docquote/internal/document"
	"github.com/davidbz/docquote/internal/mcpserver"
	"github.com/davidbz/docquote/internal/observability"
	"github.com/davidbz/docquote/internal/pricing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout carries the protocol, so logs must go to stderr (zap's default).
	cfg := config.Load()
	logger, err := observability.InitLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	counters, err := document.NewDefaultRegistry()
	if err != nil {
		log.Fatalf("Failed to register page counters: %v", err)
	}

	server := mcpserver.NewServer(mcpserver.NewTools(pricing.NewCalculator(pricing.DefaultConfig()), counters))
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("MCP server failed: %v", err)
	}
}
