// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/cofail/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the cofail MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Complaint Mining Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: mine_itemsets ---
	s.AddTool(mcp.NewTool("mine_itemsets",
		mcp.WithDescription("Mine frequent component itemsets from a vehicle complaint data file."),
		mcp.WithString("data_path", mcp.Description("Path to the complaint data file (defaults to the configured file if not specified).")),
		mcp.WithNumber("min_support", mcp.Description("Minimum support threshold in (0, 1) exclusive.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleMineItemsets)

	// --- 2. Tool: generate_rules ---
	s.AddTool(mcp.NewTool("generate_rules",
		mcp.WithDescription("Generate association rules between vehicle components that fail together."),
		mcp.WithString("data_path", mcp.Description("Path to the complaint data file.")),
		mcp.WithNumber("min_support", mcp.Description("Minimum support threshold in (0, 1) exclusive.")),
		mcp.WithString("metric", mcp.Description("Ranking metric (support, confidence, lift). Defaults to 'lift'."), mcp.Enum("support", "confidence", "lift")),
		mcp.WithNumber("min_threshold", mcp.Description("Minimum metric value for a rule to be kept.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleGenerateRules)

	// --- 3. Tool: analyze_dates ---
	s.AddTool(mcp.NewTool("analyze_dates",
		mcp.WithDescription("Bucket complaint dates by year, year-month and weekday."),
		mcp.WithString("data_path", mcp.Description("Path to the complaint data file.")),
		mcp.WithString("date_column", mcp.Description("Date column to analyze."), mcp.Enum("fail_date", "date_added", "date_received")),
	), h.handleAnalyzeDates)

	// --- 4. Tool: dataset_summary ---
	s.AddTool(mcp.NewTool("dataset_summary",
		mcp.WithDescription("Summarize a complaint data file with component and manufacturer frequency tables."),
		mcp.WithString("data_path", mcp.Description("Path to the complaint data file.")),
		mcp.WithNumber("top", mcp.Description("Depth of each frequency table."), mcp.Required()),
	), h.handleDatasetSummary)

	return s
}

// StartMCPServer starts the cofail MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
