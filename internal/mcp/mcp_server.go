// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	seriesArgDescription = `Series to analyze as a JSON object of name to sample map, e.g. {"insta": {"2025-06-01T12:00": 3}}. Names are sorted for a stable column order.`
	storedArgDescription = "Comma-separated names of series held by the sample store."
)

// NewMCPServer initializes and configures the trendline MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Trendline Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_series ---
	s.AddTool(mcp.NewTool("analyze_series",
		mcp.WithDescription("Unify up to two engagement series on one timeline and compute first and second discrete derivatives, critical points and summaries."),
		mcp.WithObject("series", mcp.Description(seriesArgDescription)),
		mcp.WithString("stored", mcp.Description(storedArgDescription)),
	), h.handleAnalyzeSeries)

	// --- 2. Tool: critical_points ---
	s.AddTool(mcp.NewTool("critical_points",
		mcp.WithDescription("List the timestamps where a derivative of a series is exactly zero: stationary points (first order) and inflection points (second order)."),
		mcp.WithObject("series", mcp.Description(seriesArgDescription)),
		mcp.WithString("stored", mcp.Description(storedArgDescription)),
		mcp.WithString("order", mcp.Description("Derivative order to inspect. Defaults to 'both'."), mcp.Enum("first", "second", "both")),
	), h.handleCriticalPoints)

	// --- 3. Tool: summarize_series ---
	s.AddTool(mcp.NewTool("summarize_series",
		mcp.WithDescription("Report peak, peak time and average of the positive samples of each series, plus the covered period."),
		mcp.WithObject("series", mcp.Description(seriesArgDescription)),
		mcp.WithString("stored", mcp.Description(storedArgDescription)),
	), h.handleSummarizeSeries)

	return s
}

// StartMCPServer starts the trendline MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
