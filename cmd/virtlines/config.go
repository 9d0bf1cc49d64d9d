package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"virtlines/internal/virtlines"
)

const configFileName = "virtlines.toml"

// renderSettings mirrors the [render] table of virtlines.toml.
type renderSettings struct {
	Width              *int    `toml:"width"`
	AutoWidth          *bool   `toml:"auto_width"`
	HighlightWholeLine *bool   `toml:"highlight_whole_line"`
	Profile            *string `toml:"profile"`
}

type fileConfig struct {
	Render renderSettings `toml:"render"`
}

// findConfigFile walks up from dir looking for virtlines.toml.
// Returns an empty path when no config file exists up to the filesystem root.
func findConfigFile(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	for {
		candidate := filepath.Join(abs, configFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", nil
		}
		abs = parent
	}
}

// loadConfig applies virtlines.toml (if found near dir) over the defaults.
// The returned profile name is empty when the file does not pin one.
func loadConfig(dir string) (virtlines.Config, string, error) {
	cfg := virtlines.DefaultConfig()

	path, err := findConfigFile(dir)
	if err != nil || path == "" {
		return cfg, "", err
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return cfg, "", fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if fc.Render.Width != nil {
		cfg.Width = *fc.Render.Width
	}
	if fc.Render.AutoWidth != nil {
		cfg.AutoWidth = *fc.Render.AutoWidth
	}
	if fc.Render.HighlightWholeLine != nil {
		cfg.HighlightWholeLine = *fc.Render.HighlightWholeLine
	}
	profile := ""
	if fc.Render.Profile != nil {
		profile = *fc.Render.Profile
	}
	logger.Debug("loaded config", "path", path)
	return cfg, profile, nil
}
