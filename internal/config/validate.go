package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xtding233/egg-gacha/internal/egg"
	"github.com/xtding233/egg-gacha/internal/voucher"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// catalog
	if cfg.Catalog.Path == "" && cfg.Catalog.URL == "" {
		errs = append(errs, "catalog.path or catalog.url is required")
	}
	if cfg.Catalog.ReloadInterval != "" {
		if d, err := time.ParseDuration(cfg.Catalog.ReloadInterval); err != nil || d < 0 {
			errs = append(errs, "catalog.reload_interval must be a non-negative duration")
		}
	}
	if cfg.Catalog.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Catalog.Timeout); err != nil || d <= 0 {
			errs = append(errs, "catalog.timeout must be a positive duration")
		}
	}

	// generator
	if cfg.Generator.MaxBatch != nil && *cfg.Generator.MaxBatch < 1 {
		errs = append(errs, "generator.max_batch must be >= 1")
	}
	if cfg.Generator.MaxTrials != nil && *cfg.Generator.MaxTrials < 1 {
		errs = append(errs, "generator.max_trials must be >= 1")
	}

	// presets, in name order for stable messages
	names := make([]string, 0, len(cfg.Presets))
	for name := range cfg.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		errs = append(errs, validateParams("presets."+name, cfg.Presets[name])...)
	}

	vnames := make([]string, 0, len(cfg.Vouchers))
	for name := range cfg.Vouchers {
		vnames = append(vnames, name)
	}
	sort.Strings(vnames)
	for _, name := range vnames {
		if cfg.Vouchers[name].toVoucher(name).Validate() != nil {
			errs = append(errs, fmt.Sprintf("vouchers.%s: needs per_pull or per_multi_pull with multi_size >= 2", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateParams(prefix string, p BatchParams) []string {
	var errs []string
	if p.Tier != nil && (*p.Tier < 0 || *p.Tier > int(egg.MaxTier)) {
		errs = append(errs, fmt.Sprintf("%s.tier must be in [0,%d]", prefix, egg.MaxTier))
	}
	if p.GachaType != nil && (*p.GachaType < 0 || *p.GachaType > int(egg.MaxGachaType)) {
		errs = append(errs, fmt.Sprintf("%s.gacha_type must be in [0,%d]", prefix, egg.MaxGachaType))
	}
	if p.HatchWaves != nil && (*p.HatchWaves < 0 || *p.HatchWaves > egg.MaxHatchWaves) {
		errs = append(errs, fmt.Sprintf("%s.hatch_waves must be in [0,%d]", prefix, egg.MaxHatchWaves))
	}
	if p.Amount != nil && *p.Amount < 0 {
		errs = append(errs, prefix+".amount must be >= 0")
	}
	if p.VariantTier != nil && (*p.VariantTier < 0 || *p.VariantTier > egg.MaxVariantTier) {
		errs = append(errs, fmt.Sprintf("%s.variant_tier must be in [0,%d]", prefix, egg.MaxVariantTier))
	}
	return errs
}

// Normalize validates cfg and fills defaults.
func Normalize(cfg RawConfig) (Settings, error) {
	if err := ValidateRaw(cfg); err != nil {
		return Settings{}, err
	}
	s := Settings{
		HTTPAddr:       orDefault(cfg.Server.HTTPAddr, ":8080"),
		GRPCAddr:       orDefault(cfg.Server.GRPCAddr, ":50051"),
		LogLevel:       orDefault(cfg.Log.Level, "info"),
		CatalogPath:    cfg.Catalog.Path,
		CatalogURL:     cfg.Catalog.URL,
		ReloadInterval: 5 * time.Second,
		FetchTimeout:   15 * time.Second,
		MaxBatch:       99,
		MaxTrials:      10000,
		Presets:        cfg.Presets,
		Version:        cfg.Version,
	}
	// durations were checked by ValidateRaw
	if cfg.Catalog.ReloadInterval != "" {
		s.ReloadInterval, _ = time.ParseDuration(cfg.Catalog.ReloadInterval)
	}
	if cfg.Catalog.Timeout != "" {
		s.FetchTimeout, _ = time.ParseDuration(cfg.Catalog.Timeout)
	}
	if cfg.Generator.MaxBatch != nil {
		s.MaxBatch = *cfg.Generator.MaxBatch
	}
	if cfg.Generator.MaxTrials != nil {
		s.MaxTrials = *cfg.Generator.MaxTrials
	}
	if s.Presets == nil {
		s.Presets = map[string]BatchParams{}
	}
	s.Vouchers = make(map[string]voucher.Voucher, len(cfg.Vouchers))
	for name, v := range cfg.Vouchers {
		s.Vouchers[name] = v.toVoucher(name)
	}
	return s, nil
}

func (v VoucherSpec) toVoucher(name string) voucher.Voucher {
	return voucher.Voucher{
		Name:         name,
		PerPull:      v.PerPull,
		PerMultiPull: v.PerMultiPull,
		MultiSize:    v.MultiSize,
	}
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
