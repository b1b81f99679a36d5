package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/xtding233/egg-gacha/internal/catalog"
	"github.com/xtding233/egg-gacha/internal/config"
	"github.com/xtding233/egg-gacha/internal/egg"
	"github.com/xtding233/egg-gacha/internal/gacha"
	"github.com/xtding233/egg-gacha/internal/voucher"
)

var (
	// ErrInvalidRequest wraps every caller-side problem so transports can map it.
	ErrInvalidRequest = errors.New("invalid request")
	ErrBatchTooLarge  = errors.New("batch exceeds max_batch")
	ErrTooManyTrials  = errors.New("trials exceed max_trials")
	ErrUnknownVoucher = errors.New("unknown voucher")
	ErrInvalidOwned   = errors.New("currentEggs must be >= 0")
)

// GenerateRequest is a batch request as it arrives over HTTP or gRPC.
type GenerateRequest struct {
	Preset string `json:"preset,omitempty"`
	config.BatchParams
	Seed    *uint64 `json:"seed,omitempty"`    // fixed seed => replayable batch
	Voucher string  `json:"voucher,omitempty"` // price the batch in this voucher kind
	// CurrentEggs is how many eggs the save already holds; they count
	// against max_batch together with the new batch.
	CurrentEggs *int `json:"currentEggs,omitempty"`
}

// Cost is what a batch would have cost in the game's gacha.
type Cost struct {
	Voucher string `json:"voucher"`
	Count   int    `json:"count"`
}

// Result is a generated batch plus the request it resolved to.
type Result struct {
	Request egg.Request `json:"-"`
	Eggs    []egg.Egg   `json:"eggs"`
	Cost    *Cost       `json:"cost,omitempty"`
}

// EggService resolves requests against presets and generates eggs from the
// current catalog.
type EggService struct {
	store     *catalog.Store
	presets   map[string]config.BatchParams
	vouchers  map[string]voucher.Voucher
	maxBatch  int
	maxTrials int
	logger    *zap.Logger
	now       func() time.Time
}

// NewEggService wires the service from normalized settings.
func NewEggService(store *catalog.Store, s config.Settings, logger *zap.Logger) *EggService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EggService{
		store:     store,
		presets:   s.Presets,
		vouchers:  s.Vouchers,
		maxBatch:  s.MaxBatch,
		maxTrials: s.MaxTrials,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *EggService) resolve(req GenerateRequest) (egg.Request, error) {
	r, err := config.Resolve(s.presets, req.Preset, req.BatchParams)
	if err != nil {
		return egg.Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := r.Validate(); err != nil {
		return egg.Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	owned := 0
	if req.CurrentEggs != nil {
		owned = *req.CurrentEggs
	}
	if owned < 0 {
		return egg.Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, ErrInvalidOwned)
	}
	if s.maxBatch > 0 && owned+r.Amount > s.maxBatch {
		return egg.Request{}, fmt.Errorf("%w: %w (%d owned + %d > %d)", ErrInvalidRequest, ErrBatchTooLarge, owned, r.Amount, s.maxBatch)
	}
	return r, nil
}

func (s *EggService) generator(seed *uint64) *egg.Generator {
	var rng gacha.RandomSource
	if seed != nil {
		rng = gacha.NewSeededRNG(*seed)
	} else {
		rng = gacha.DefaultRNG()
	}
	g := egg.NewGenerator(rng)
	g.Now = s.now
	return g
}

// Generate builds one batch.
func (s *EggService) Generate(ctx context.Context, req GenerateRequest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	r, err := s.resolve(req)
	if err != nil {
		return Result{}, err
	}
	cost, err := s.cost(req.Voucher, r.Amount)
	if err != nil {
		return Result{}, err
	}
	eggs, err := s.generator(req.Seed).Construct(r, s.store.Snapshot())
	if err != nil {
		return Result{}, err
	}

	shiny := 0
	for _, e := range eggs {
		if e.IsShiny {
			shiny++
		}
	}
	s.logger.Info("eggs generated",
		zap.String("preset", req.Preset),
		zap.Stringer("tier", r.Tier),
		zap.Stringer("gacha_type", r.GachaType),
		zap.Int("amount", r.Amount),
		zap.Int("shiny", shiny),
		zap.Bool("seeded", req.Seed != nil))
	return Result{Request: r, Eggs: eggs, Cost: cost}, nil
}

func (s *EggService) cost(name string, pulls int) (*Cost, error) {
	if name == "" {
		return nil, nil
	}
	v, ok := s.vouchers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidRequest, ErrUnknownVoucher, name)
	}
	return &Cost{Voucher: name, Count: v.VouchersForPulls(pulls)}, nil
}

// Simulate runs the batch trials times and reports per-batch stats.
func (s *EggService) Simulate(ctx context.Context, req GenerateRequest, trials int) (egg.SimReport, error) {
	if err := ctx.Err(); err != nil {
		return egg.SimReport{}, err
	}
	if trials < 0 {
		return egg.SimReport{}, fmt.Errorf("%w: %w", ErrInvalidRequest, egg.ErrInvalidTrials)
	}
	if s.maxTrials > 0 && trials > s.maxTrials {
		return egg.SimReport{}, fmt.Errorf("%w: %w (%d > %d)", ErrInvalidRequest, ErrTooManyTrials, trials, s.maxTrials)
	}
	r, err := s.resolve(req)
	if err != nil {
		return egg.SimReport{}, err
	}
	rep, err := s.generator(req.Seed).RunMonteCarlo(r, s.store.Snapshot(), trials)
	if err != nil {
		return egg.SimReport{}, err
	}
	s.logger.Debug("simulation finished",
		zap.Stringer("tier", r.Tier),
		zap.Int("trials", trials),
		zap.Float64("shiny_mean", rep.Shiny.Mean))
	return rep, nil
}

// PresetNames lists configured presets in name order.
func (s *EggService) PresetNames() []string {
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a configured preset.
func (s *EggService) Preset(name string) (config.BatchParams, bool) {
	p, ok := s.presets[name]
	return p, ok
}
