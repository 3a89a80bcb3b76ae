package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// loadTOMLFlat parses a TOML settings file at path into a flat
// koanf-compatible map, containing only the keys explicitly present in the
// file. Returns (nil, nil) when the file does not exist. Unknown keys are
// logged as warnings, not treated as errors, for forward compatibility.
func loadTOMLFlat(path string) (map[string]any, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var raw map[string]interface{}
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	warnUndecodedKeys(meta, path)

	return flattenSettingsRaw(raw), nil
}

// warnUndecodedKeys logs a warning for each key in the TOML document that
// does not map to a known Settings field.
func warnUndecodedKeys(meta toml.MetaData, source string) {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return
	}
	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	slog.Warn("unknown config keys will be ignored", "source", source, "keys", strings.Join(keys, ", "))
}

// flattenSettingsRaw converts a raw TOML map (as decoded by BurntSushi/toml
// into map[string]interface{}) into a flat koanf-compatible map. Only
// fields explicitly present in the raw map are included.
func flattenSettingsRaw(raw map[string]interface{}) map[string]any {
	flat := make(map[string]any)

	for _, key := range []string{"mode", "model", "tokenizer", "embedder", "mcp_command", "wasm_model_path", "cache_dir", "log_format", "log_level"} {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok {
				flat[key] = s
			}
		}
	}

	if v, ok := raw["token_budget"]; ok {
		flat["token_budget"] = toInt(v)
	}
	if v, ok := raw["max_cache_age_ms"]; ok {
		flat["max_cache_age_ms"] = toInt64(v)
	}

	return flat
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
