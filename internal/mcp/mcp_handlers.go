package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/huangsam/trendline/core"
	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/loader"
	"github.com/huangsam/trendline/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// analysisResult is the payload of analyze_series.
type analysisResult struct {
	Series    []string               `json:"series"`
	Points    []schema.CombinedPoint `json:"points"`
	Critical  []schema.CriticalPoint `json:"critical"`
	Summaries []schema.Summary       `json:"summaries"`
	Period    *schema.Period         `json:"period"`
}

// summaryResult is the payload of summarize_series.
type summaryResult struct {
	Summaries []schema.Summary `json:"summaries"`
	Period    *schema.Period   `json:"period"`
}

func (h *toolHandler) handleAnalyzeSeries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	series, err := h.loadSeries(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid series parameters: %v", err)), nil
	}

	report := core.Analyze(series)
	return jsonResult(analysisResult{
		Series:    report.Timeline.Series,
		Points:    report.Points,
		Critical:  report.Critical,
		Summaries: report.Summaries,
		Period:    report.Period,
	})
}

func (h *toolHandler) handleCriticalPoints(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	order := schema.DerivativeOrder(strings.ToLower(request.GetString("order", string(h.defaultOrder()))))
	if _, ok := schema.ValidDerivativeOrders[order]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid order %q: must be first, second or both", order)), nil
	}

	series, err := h.loadSeries(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid series parameters: %v", err)), nil
	}

	derivs := core.DifferentiateAll(core.Unify(series))
	return jsonResult(core.ClassifyAll(derivs, order.Expand()...))
}

func (h *toolHandler) handleSummarizeSeries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	series, err := h.loadSeries(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid series parameters: %v", err)), nil
	}

	report := core.Analyze(series)
	return jsonResult(summaryResult{Summaries: report.Summaries, Period: report.Period})
}

func (h *toolHandler) defaultOrder() schema.DerivativeOrder {
	if h.baseCfg != nil && h.baseCfg.Order != "" {
		return h.baseCfg.Order
	}
	return schema.BothOrders
}

// loadSeries resolves the inline and stored series of a request, sorted by name.
func (h *toolHandler) loadSeries(request mcp.CallToolRequest) ([]schema.Series, error) {
	inline, err := parseInlineSeries(request.GetArguments()["series"])
	if err != nil {
		return nil, err
	}

	var sources, storedSources []schema.Source
	for name := range inline {
		sources = append(sources, schema.Source{Name: name})
	}
	for _, name := range strings.Split(request.GetString("stored", ""), ",") {
		if name = strings.TrimSpace(name); name != "" {
			src := schema.Source{Name: name, Stored: true}
			sources = append(sources, src)
			storedSources = append(storedSources, src)
		}
	}
	if err := contract.ValidateSources(sources); err != nil {
		return nil, err
	}

	series := make([]schema.Series, 0, len(sources))
	for name, samples := range inline {
		series = append(series, schema.Series{Name: name, Samples: samples})
	}
	if len(storedSources) > 0 {
		var store contract.SampleStore
		if h.mgr != nil {
			store = h.mgr.GetSampleStore()
		}
		stored, err := loader.Load(storedSources, store)
		if err != nil {
			return nil, err
		}
		series = append(series, stored...)
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Name < series[j].Name })
	slog.Debug("Loaded series for tool call", "tool", request.Params.Name, "series", len(series))
	return series, nil
}

// parseInlineSeries accepts the series argument as a JSON object or as a string holding one.
func parseInlineSeries(raw any) (map[string]schema.SampleMap, error) {
	if raw == nil {
		return nil, nil
	}

	var data []byte
	if s, ok := raw.(string); ok {
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		data = []byte(s)
	} else {
		encoded, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("series is not valid JSON: %w", err)
		}
		data = encoded
	}

	var byName map[string]json.RawMessage
	if err := json.Unmarshal(data, &byName); err != nil {
		return nil, fmt.Errorf("series must be a JSON object of name to sample map: %w", err)
	}

	out := make(map[string]schema.SampleMap, len(byName))
	for name, body := range byName {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("series names must not be empty")
		}
		samples, err := loader.ReadSampleMap(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", name, err)
		}
		out[name] = samples
	}
	return out, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
