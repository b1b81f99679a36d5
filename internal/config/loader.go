package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/profile files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, profile+".yaml")
}

// Loader reads YAML configs and merges default → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: profile, "" for default only
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// LoadMerged loads default.yaml and overlays <profile>.yaml (optional).
// It returns the merged RawConfig (without normalization).
func (l *Loader) LoadMerged(profile string) (RawConfig, error) {
	l.mu.RLock()
	if cfg, ok := l.cache[profile]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if profile != "" {
		profCfg, err := readYAML(l.paths.ProfilePath(profile)) // profile file may not exist
		if err != nil {
			return RawConfig{}, fmt.Errorf("read profile %s: %w", profile, err)
		}
		merged = mergeRaw(defCfg, profCfg)
	}

	l.mu.Lock()
	l.cache[profile] = merged
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears loader's cache.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw overlays 'b' on 'a' where b is non-zero/non-nil.
// Presets merge per name and per field.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// server / log
	if b.Server.HTTPAddr != "" {
		out.Server.HTTPAddr = b.Server.HTTPAddr
	}
	if b.Server.GRPCAddr != "" {
		out.Server.GRPCAddr = b.Server.GRPCAddr
	}
	if b.Log.Level != "" {
		out.Log.Level = b.Log.Level
	}

	// catalog: a profile that names a path or url replaces the source entirely
	if b.Catalog.Path != "" || b.Catalog.URL != "" {
		out.Catalog.Path = b.Catalog.Path
		out.Catalog.URL = b.Catalog.URL
	}
	if b.Catalog.ReloadInterval != "" {
		out.Catalog.ReloadInterval = b.Catalog.ReloadInterval
	}
	if b.Catalog.Timeout != "" {
		out.Catalog.Timeout = b.Catalog.Timeout
	}

	// generator
	if b.Generator.MaxBatch != nil {
		out.Generator.MaxBatch = b.Generator.MaxBatch
	}
	if b.Generator.MaxTrials != nil {
		out.Generator.MaxTrials = b.Generator.MaxTrials
	}

	// presets
	if len(b.Presets) > 0 {
		presets := make(map[string]BatchParams, len(a.Presets)+len(b.Presets))
		for name, p := range a.Presets {
			presets[name] = p
		}
		for name, p := range b.Presets {
			presets[name] = mergeParams(presets[name], p)
		}
		out.Presets = presets
	}

	// vouchers replace per name
	if len(b.Vouchers) > 0 {
		vouchers := make(map[string]VoucherSpec, len(a.Vouchers)+len(b.Vouchers))
		for name, v := range a.Vouchers {
			vouchers[name] = v
		}
		for name, v := range b.Vouchers {
			vouchers[name] = v
		}
		out.Vouchers = vouchers
	}

	return out
}

// mergeParams overlays the non-nil fields of b on a.
func mergeParams(a, b BatchParams) BatchParams {
	out := a
	if b.Tier != nil {
		out.Tier = b.Tier
	}
	if b.GachaType != nil {
		out.GachaType = b.GachaType
	}
	if b.HatchWaves != nil {
		out.HatchWaves = b.HatchWaves
	}
	if b.Amount != nil {
		out.Amount = b.Amount
	}
	if b.Shiny != nil {
		out.Shiny = b.Shiny
	}
	if b.VariantTier != nil {
		out.VariantTier = b.VariantTier
	}
	return out
}
