// resolve.go
package config

import (
	"errors"
	"fmt"

	"github.com/xtding233/egg-gacha/internal/egg"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Resolve merges preset → overrides into an egg.Request.
// Unset fields default to a single common move-gacha egg; unset hatch
// waves take the tier's default.
func Resolve(presets map[string]BatchParams, preset string, o BatchParams) (egg.Request, error) {
	var base BatchParams
	if preset != "" {
		p, ok := presets[preset]
		if !ok {
			return egg.Request{}, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
		}
		base = p
	}
	p := mergeParams(base, o)

	req := egg.Request{
		Tier:      egg.Tier(deref(p.Tier, int(egg.TierCommon))),
		GachaType: egg.GachaType(deref(p.GachaType, int(egg.GachaMove))),
		Amount:    deref(p.Amount, 1),
	}
	req.HatchWaves = deref(p.HatchWaves, egg.DefaultHatchWaves(req.Tier))
	if p.Shiny != nil {
		req.Shiny = *p.Shiny
	}
	req.VariantTier = deref(p.VariantTier, 0)
	return req, nil
}

func deref(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
