package render

import (
	"fmt"

	"pbrview/internal/material"
)

type cacheEntry struct {
	variant *Variant
	refs    int
}

// VariantCache holds the compiled program variants, keyed by value on
// (flags, light count). Variants are built lazily on first request and
// shared: two lookups with equal keys return the same *Variant. A variant
// lives exactly as long as at least one drawable holds a reference.
//
// The cache is render-thread state; it is not safe for concurrent use.
type VariantCache struct {
	device   Device
	variants map[variantKey]*cacheEntry
}

// NewVariantCache returns an empty cache building variants on dev.
func NewVariantCache(dev Device) *VariantCache {
	return &VariantCache{
		device:   dev,
		variants: make(map[variantKey]*cacheEntry),
	}
}

// Get returns the shared variant for (flags, lightCount), building it on
// miss, and takes a reference the caller must pair with Release.
func (c *VariantCache) Get(flags material.Flags, lightCount int) *Variant {
	key := variantKey{flags: flags, lights: lightCount}
	entry, ok := c.variants[key]
	if !ok {
		entry = &cacheEntry{variant: newVariant(c.device, flags, lightCount)}
		c.variants[key] = entry
	}
	entry.refs++
	return entry.variant
}

// Release drops one reference; the last release deletes the compiled
// program and evicts the entry.
func (c *VariantCache) Release(v *Variant) {
	if v == nil {
		return
	}
	entry, ok := c.variants[v.key]
	if !ok || entry.variant != v {
		panic(fmt.Sprintf("render.VariantCache.Release: unknown variant %v", v.key))
	}
	entry.refs--
	if entry.refs <= 0 {
		c.device.DeleteProgram(v.program)
		delete(c.variants, v.key)
	}
}

// Len reports how many distinct variants are currently alive.
func (c *VariantCache) Len() int {
	return len(c.variants)
}
