package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewServer creates an MCP server with the build_views and query_symbols
// tools registered, grounded on onedusk-pd/internal/mcptools/server.go's
// NewCodeIntelMCPServer shape.
func NewServer(svc *CodeIntelService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "codegraph",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_views",
		Description: "Parse one source file and build its AST/CFG/DFG views (C1-C9), returning the composed record stream.",
	}, svc.BuildViews)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_symbols",
		Description: "Parse one source file and search its declared symbols by name substring match.",
	}, svc.QuerySymbols)

	return server
}

// RunHTTP starts an HTTP server exposing the codegraph MCP tools, mirroring
// onedusk-pd/internal/mcptools/server.go's RunMCPServer.
func RunHTTP(ctx context.Context, svc *CodeIntelService, addr string) error {
	server := NewServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
