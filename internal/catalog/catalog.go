package catalog

import (
	"sort"
	"sync"
)

// Sentinel is the reserved entry meaning "not in the list, accept free text".
const Sentinel = "Other"

// Catalog is a normalized brand to model lookup table.
type Catalog struct {
	brands []string
	models map[string][]string
}

// Normalize builds a Catalog from a raw brand to models mapping. Brands and
// models are sorted case-sensitively with the sentinel moved to the end.
// Duplicate models collapse. The sentinel brand is always present and maps
// to exactly the sentinel model when the input does not list it.
// The input is never modified.
func Normalize(raw map[string][]string) Catalog {
	c := Catalog{models: make(map[string][]string, len(raw)+1)}
	for brand, models := range raw {
		c.models[brand] = sortWithSentinelLast(models)
		c.brands = append(c.brands, brand)
	}
	if _, ok := c.models[Sentinel]; !ok {
		c.models[Sentinel] = []string{Sentinel}
		c.brands = append(c.brands, Sentinel)
	}
	c.brands = sortWithSentinelLast(c.brands)
	return c
}

// WithFreeText returns a copy of raw where every brand also offers the
// sentinel model.
func WithFreeText(raw map[string][]string) map[string][]string {
	out := make(map[string][]string, len(raw))
	for brand, models := range raw {
		cp := append([]string(nil), models...)
		if !contains(cp, Sentinel) {
			cp = append(cp, Sentinel)
		}
		out[brand] = cp
	}
	return out
}

// Brands returns the ordered brand names.
func (c Catalog) Brands() []string {
	out := make([]string, len(c.brands))
	copy(out, c.brands)
	return out
}

// Models returns the ordered models of a brand, or nil for an unknown brand.
func (c Catalog) Models(brand string) []string {
	models, ok := c.models[brand]
	if !ok {
		return nil
	}
	out := make([]string, len(models))
	copy(out, models)
	return out
}

// HasBrand reports whether brand is listed.
func (c Catalog) HasBrand(brand string) bool {
	_, ok := c.models[brand]
	return ok
}

// HasModel reports whether model is listed under brand.
func (c Catalog) HasModel(brand, model string) bool {
	return contains(c.models[brand], model)
}

// AllowsCustomModel reports whether brand accepts a free text model.
func (c Catalog) AllowsCustomModel(brand string) bool {
	return c.HasModel(brand, Sentinel)
}

func sortWithSentinelLast(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	hasSentinel := false
	for _, s := range in {
		if s == Sentinel {
			hasSentinel = true
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	if hasSentinel {
		out = append(out, Sentinel)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var (
	defaultOnce    sync.Once
	defaultCatalog Catalog
)

// Default returns the coffee machine catalog, built once per process.
func Default() Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = Normalize(WithFreeText(coffeeBrands))
	})
	return defaultCatalog
}
