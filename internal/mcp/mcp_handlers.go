package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/cofail/core"
	"github.com/huangsam/cofail/internal/contract"
	"github.com/huangsam/cofail/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// applyCommonArgs clones the base config and applies the arguments shared
// across tools. Thresholds are re-checked since they arrive unvalidated.
func (h *toolHandler) applyCommonArgs(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("data_path", ""); p != "" {
		cfg.DataPath = p
	}
	if s := request.GetFloat("min_support", 0); s != 0 {
		if s <= 0 || s >= 1 {
			return nil, fmt.Errorf("min_support must be in (0, 1) exclusive (received %g)", s)
		}
		cfg.MinSupport = s
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	return cfg, nil
}

func (h *toolHandler) handleMineItemsets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyCommonArgs(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid mining parameters: %v", err)), nil
	}

	itemsets, stats, err := core.GetItemsetResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("mining failed: %v", err)), nil
	}
	if len(itemsets) > cfg.ResultLimit {
		itemsets = itemsets[:cfg.ResultLimit]
	}

	payload := struct {
		Stats    schema.MiningStats `json:"stats"`
		Itemsets []schema.ItemSet   `json:"itemsets"`
	}{stats, itemsets}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGenerateRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyCommonArgs(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid mining parameters: %v", err)), nil
	}
	if m := request.GetString("metric", ""); m != "" {
		metric := schema.Metric(m)
		if _, ok := schema.ValidMetrics[metric]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid metric: %s", m)), nil
		}
		cfg.Metric = metric
	}
	if t := request.GetFloat("min_threshold", -1); t >= 0 {
		cfg.MinThreshold = t
	}

	rules, stats, err := core.GetRuleResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rule generation failed: %v", err)), nil
	}
	if len(rules) > cfg.ResultLimit {
		rules = rules[:cfg.ResultLimit]
	}

	payload := struct {
		Stats schema.MiningStats       `json:"stats"`
		Rules []schema.AssociationRule `json:"rules"`
	}{stats, rules}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAnalyzeDates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("data_path", ""); p != "" {
		cfg.DataPath = p
	}
	if c := request.GetString("date_column", ""); c != "" {
		column := schema.DateColumn(c)
		if _, ok := schema.ValidDateColumns[column]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date column: %s", c)), nil
		}
		cfg.DateColumn = column
	}

	buckets, err := core.GetDateResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("date analysis failed: %v", err)), nil
	}
	if buckets == nil {
		return mcp.NewToolResultText(fmt.Sprintf("no usable dates found in column %s", cfg.DateColumn)), nil
	}

	jsonData, _ := json.MarshalIndent(buckets, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDatasetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("data_path", ""); p != "" {
		cfg.DataPath = p
	}
	if t := request.GetInt("top", 0); t > 0 {
		cfg.Top = t
	}

	summary, err := core.GetSummaryResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
