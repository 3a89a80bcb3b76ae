package config

import (
	"fmt"
	"log/slog"
)

var validModes = map[string]bool{"off": true, "conservative": true, "balanced": true}
var validTokenizers = map[string]bool{"cl100k_base": true, "none": true}
var validEmbedders = map[string]bool{"mcp": true, "wasm": true, "none": true}
var validLogFormats = map[string]bool{"text": true, "json": true}

// maxTokenBudgetHardCap is the absolute upper limit for Settings.TokenBudget.
// Values above this are almost certainly a configuration mistake.
const maxTokenBudgetHardCap = 2_000_000

// Validate inspects s and returns a slice of ValidationErrors describing
// hard errors and warnings. It does not stop at the first error: every
// check runs, and all findings are accumulated before returning. The
// returned slice is nil when no issues are found.
func Validate(s *Settings) []ValidationError {
	if s == nil {
		return nil
	}

	var results []ValidationError

	if !validModes[s.Mode] {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    "mode",
			Message:  fmt.Sprintf("mode %q is invalid", s.Mode),
			Suggest:  "Valid modes: off, conservative, balanced",
		})
	}

	if !validTokenizers[s.Tokenizer] {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    "tokenizer",
			Message:  fmt.Sprintf("tokenizer %q is invalid", s.Tokenizer),
			Suggest:  "Valid tokenizers: cl100k_base, none",
		})
	}

	if !validEmbedders[s.Embedder] {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    "embedder",
			Message:  fmt.Sprintf("embedder %q is invalid", s.Embedder),
			Suggest:  "Valid embedders: mcp, wasm, none",
		})
	}

	if !validLogFormats[s.LogFormat] {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    "log_format",
			Message:  fmt.Sprintf("log_format %q is invalid", s.LogFormat),
			Suggest:  "Valid formats: text, json",
		})
	}

	if s.Embedder == "mcp" && s.MCPCommand == "" {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    "mcp_command",
			Message:  "embedder is \"mcp\" but mcp_command is empty",
			Suggest:  "Set mcp_command to the command line that launches the MCP embedding host",
		})
	}

	if s.Embedder == "wasm" && s.WASMModelPath == "" {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    "wasm_model_path",
			Message:  "embedder is \"wasm\" but wasm_model_path is empty",
			Suggest:  "Set wasm_model_path to the compiled embedding module",
		})
	}

	if s.TokenBudget < 0 {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    "token_budget",
			Message:  fmt.Sprintf("token_budget %d is negative", s.TokenBudget),
			Suggest:  "Set token_budget to a positive integer or 0 to derive it from the model",
		})
	}
	if s.TokenBudget > maxTokenBudgetHardCap {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    "token_budget",
			Message:  fmt.Sprintf("token_budget %d exceeds the maximum allowed value of %d", s.TokenBudget, maxTokenBudgetHardCap),
			Suggest:  fmt.Sprintf("Reduce token_budget to at most %d", maxTokenBudgetHardCap),
		})
	}

	if s.MaxCacheAgeMS < 0 {
		results = append(results, ValidationError{
			Severity: "error",
			Field:    "max_cache_age_ms",
			Message:  fmt.Sprintf("max_cache_age_ms %d is negative", s.MaxCacheAgeMS),
			Suggest:  "Set max_cache_age_ms to a non-negative value",
		})
	}

	if len(results) > 0 {
		slog.Debug("settings validation complete", "total_issues", len(results))
	}

	return results
}
