// types.go
package config

import (
	"time"

	"github.com/xtding233/egg-gacha/internal/voucher"
)

// Raw config loaded from YAML.
type RawConfig struct {
	Version   string                 `yaml:"version"`
	Server    ServerConfig           `yaml:"server"`
	Log       LogConfig              `yaml:"log"`
	Catalog   CatalogConfig          `yaml:"catalog"`
	Generator GeneratorConfig        `yaml:"generator"`
	Presets   map[string]BatchParams `yaml:"presets,omitempty"`
	Vouchers  map[string]VoucherSpec `yaml:"vouchers,omitempty"`
	Notes     string                 `yaml:"notes,omitempty"`
}

type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
	GRPCAddr string `yaml:"grpc_addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type CatalogConfig struct {
	Path           string `yaml:"path,omitempty"`            // local eggTypes document
	URL            string `yaml:"url,omitempty"`             // remote mirror, used when path is empty
	ReloadInterval string `yaml:"reload_interval,omitempty"` // e.g. "5s"; "0" disables the watcher
	Timeout        string `yaml:"timeout,omitempty"`         // remote fetch timeout
}

type GeneratorConfig struct {
	MaxBatch  *int `yaml:"max_batch"`  // eggs per request; the save holds 99
	MaxTrials *int `yaml:"max_trials"` // Monte Carlo trials per request
}

// BatchParams is a partial batch description. Presets and request
// overrides both use it; nil fields fall through to the next layer.
type BatchParams struct {
	Tier        *int  `yaml:"tier,omitempty" json:"tier,omitempty"`
	GachaType   *int  `yaml:"gacha_type,omitempty" json:"gachaType,omitempty"`
	HatchWaves  *int  `yaml:"hatch_waves,omitempty" json:"hatchWaves,omitempty"`
	Amount      *int  `yaml:"amount,omitempty" json:"amount,omitempty"`
	Shiny       *bool `yaml:"shiny,omitempty" json:"shiny,omitempty"`
	VariantTier *int  `yaml:"variant_tier,omitempty" json:"variantTier,omitempty"`
}

// VoucherSpec prices egg pulls in one voucher kind.
type VoucherSpec struct {
	PerPull      int `yaml:"per_pull"`
	PerMultiPull int `yaml:"per_multi_pull,omitempty"`
	MultiSize    int `yaml:"multi_size,omitempty"`
}

// Normalized settings used by cmd/server and the service.
type Settings struct {
	HTTPAddr       string
	GRPCAddr       string
	LogLevel       string
	CatalogPath    string
	CatalogURL     string
	ReloadInterval time.Duration
	FetchTimeout   time.Duration
	MaxBatch       int
	MaxTrials      int
	Presets        map[string]BatchParams
	Vouchers       map[string]voucher.Voucher
	Version        string // effective config version for tracing
}
