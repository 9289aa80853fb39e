package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// projectConfigName is the per-directory config file name.
const projectConfigName = ".stringer.json"

var (
	errConfigNotFound = errors.New("config file not found")
	errConfigRead     = errors.New("cannot read config file")
	errConfigInvalid  = errors.New("invalid config file")
)

// fileConfig mirrors the option surface as config-file keys. Pointer
// fields distinguish "absent" from an explicit zero value.
type fileConfig struct {
	MinLen      *int    `json:"min_len"`
	Enc         *string `json:"enc"`
	Threads     *string `json:"threads"`
	JSON        *bool   `json:"json"`
	NullOnly    *bool   `json:"null_only"`
	CapRunBytes *int    `json:"cap_run_bytes"`
	Output      *string `json:"output"`
}

// loadFileConfig loads layered defaults with the following precedence
// (highest wins):
//  1. Global user config ($XDG_CONFIG_HOME/stringer/config.json or
//     ~/.config/stringer/config.json)
//  2. Project config (.stringer.json in workDir)
//  3. Explicit config file via --config (must exist)
//
// Command-line flags are applied on top by the caller.
func loadFileConfig(workDir, explicit string, env map[string]string) (fileConfig, error) {
	var merged fileConfig

	if globalPath := globalConfigPath(env); globalPath != "" {
		cfg, loaded, err := parseConfigFile(globalPath, false)
		if err != nil {
			return fileConfig{}, err
		}

		if loaded {
			merged = mergeFileConfig(merged, cfg)
		}
	}

	projectPath := filepath.Join(workDir, projectConfigName)
	cfg, loaded, err := parseConfigFile(projectPath, false)
	if err != nil {
		return fileConfig{}, err
	}

	if loaded {
		merged = mergeFileConfig(merged, cfg)
	}

	if explicit != "" {
		path := explicit
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}

		cfg, _, err := parseConfigFile(path, true)
		if err != nil {
			return fileConfig{}, err
		}

		merged = mergeFileConfig(merged, cfg)
	}

	return merged, nil
}

// globalConfigPath returns the global config file path, or "" when no
// home directory can be determined. env is consulted instead of the
// process environment so tests stay hermetic.
func globalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "stringer", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "stringer", "config.json")
	}

	return ""
}

// parseConfigFile reads and standardizes one config file. The format
// is JWCC (JSON with comments and trailing commas). Returns loaded ==
// false when the file does not exist and mustExist is false.
func parseConfigFile(path string, mustExist bool) (fileConfig, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return fileConfig{}, false, fmt.Errorf("%w: %s", errConfigNotFound, path)
			}

			return fileConfig{}, false, nil
		}

		return fileConfig{}, false, fmt.Errorf("%w %s: %w", errConfigRead, path, err)
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	var cfg fileConfig
	if err := json.Unmarshal(std, &cfg); err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	return cfg, true, nil
}

// mergeFileConfig overlays src on dst; present src fields win.
func mergeFileConfig(dst, src fileConfig) fileConfig {
	if src.MinLen != nil {
		dst.MinLen = src.MinLen
	}

	if src.Enc != nil {
		dst.Enc = src.Enc
	}

	if src.Threads != nil {
		dst.Threads = src.Threads
	}

	if src.JSON != nil {
		dst.JSON = src.JSON
	}

	if src.NullOnly != nil {
		dst.NullOnly = src.NullOnly
	}

	if src.CapRunBytes != nil {
		dst.CapRunBytes = src.CapRunBytes
	}

	if src.Output != nil {
		dst.Output = src.Output
	}

	return dst
}
