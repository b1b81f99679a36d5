package egg

import (
	"errors"
	"math"
	"sort"

	"github.com/xtding233/egg-gacha/internal/catalog"
)

var ErrInvalidTrials = errors.New("invalid trial count; must be >= 0")

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stdDev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// Optional: raw samples if caller needs histograms/exports
	Samples []int `json:"-"`
}

// SimReport holds per-batch counts over all trials.
type SimReport struct {
	Trials      int   `json:"trials"`
	Shiny       Stats `json:"shiny"`       // shiny eggs per batch
	Substituted Stats `json:"substituted"` // shiny eggs that received a matched species
	TierShifted Stats `json:"tierShifted"` // eggs whose tier differs from the batch tier
	Reserved    Stats `json:"reserved"`    // eggs whose id hatches the reserved species
}

// batchCounts are the outcome counts of one simulated batch.
type batchCounts struct {
	shiny, substituted, shifted, reserved int
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// simulateOne builds one batch and counts its outcomes.
func (g *Generator) simulateOne(req Request, cat catalog.Catalog) (batchCounts, error) {
	var c batchCounts
	eggs, err := g.Construct(req, cat)
	if err != nil {
		return c, err
	}
	for _, e := range eggs {
		if e.IsShiny {
			c.shiny++
		}
		if e.Species != nil {
			c.substituted++
		}
		if e.Tier != int(req.Tier) {
			c.shifted++
		}
		if e.ID%ReservedModulus == 0 {
			c.reserved++
		}
	}
	return c, nil
}

// RunMonteCarlo repeats req for the given number of trials and returns
// summary stats. trials == 0 returns an empty report.
func (g *Generator) RunMonteCarlo(req Request, cat catalog.Catalog, trials int) (SimReport, error) {
	if trials < 0 {
		return SimReport{}, ErrInvalidTrials
	}
	if trials == 0 {
		return SimReport{}, nil
	}
	if err := req.Validate(); err != nil {
		return SimReport{}, err
	}
	shiny := make([]int, trials)
	substituted := make([]int, trials)
	shifted := make([]int, trials)
	reserved := make([]int, trials)
	for i := 0; i < trials; i++ {
		c, err := g.simulateOne(req, cat)
		if err != nil {
			return SimReport{}, err
		}
		shiny[i], substituted[i], shifted[i], reserved[i] = c.shiny, c.substituted, c.shifted, c.reserved
	}
	return SimReport{
		Trials:      trials,
		Shiny:       calcStats(shiny),
		Substituted: calcStats(substituted),
		TierShifted: calcStats(shifted),
		Reserved:    calcStats(reserved),
	}, nil
}
