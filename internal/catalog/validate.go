package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidCatalog = errors.New("invalid species catalog")

// Validate checks that keys are unique and every species is named.
func (c Catalog) Validate() error {
	var errs []string
	seen := make(map[int]bool, len(c))
	for i, s := range c {
		if seen[s.Key] {
			errs = append(errs, fmt.Sprintf("species[%d]: duplicate key %d", i, s.Key))
		}
		seen[s.Key] = true
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Sprintf("species[%d]: key %d has empty name", i, s.Key))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(errs, "; "))
	}
	return nil
}

// EligibleCount returns how many species carry egg metadata.
func (c Catalog) EligibleCount() int {
	n := 0
	for _, s := range c {
		if s.Eligible() {
			n++
		}
	}
	return n
}

// fromRaw converts the keyed document into an ordered Catalog.
func fromRaw(raw rawFile) (Catalog, error) {
	out := make(Catalog, 0, len(raw.EggTypes))
	for k, e := range raw.EggTypes {
		key, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("%w: species key %q is not an integer", ErrInvalidCatalog, k)
		}
		s := Species{Key: key, Name: e.Name}
		if e.IsEgg != nil {
			et := e.IsEgg.EggType
			s.EggType = &et
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
