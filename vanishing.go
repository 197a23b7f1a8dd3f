package bipoly

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/logger"
)

// maxCosetDraws bounds the resampling of degenerate coset shifts.
const maxCosetDraws = 16

// DivisionOption configures DivByVanishing.
type DivisionOption func(*DivisionConfig) error

// DivisionConfig is the resolved set of DivisionOption.
type DivisionConfig struct {
	Cache   *VanishingCache
	Sampler CosetSampler
}

// WithVanishingCache reuses coset shifts and inverted denominators across
// calls with the same grid shapes.
func WithVanishingCache(c *VanishingCache) DivisionOption {
	return func(cfg *DivisionConfig) error {
		cfg.Cache = c
		return nil
	}
}

// WithCosetSampler replaces the default crypto/rand coset sampler.
func WithCosetSampler(s CosetSampler) DivisionOption {
	return func(cfg *DivisionConfig) error {
		if s == nil {
			return fmt.Errorf("%w: nil coset sampler", ErrDomain)
		}
		cfg.Sampler = s
		return nil
	}
}

// NewDivisionConfig applies opts over the defaults.
func NewDivisionConfig(opts ...DivisionOption) (DivisionConfig, error) {
	cfg := DivisionConfig{Sampler: randomSampler{}}
	for _, option := range opts {
		if err := option(&cfg); err != nil {
			return DivisionConfig{}, err
		}
	}
	return cfg, nil
}

type vanishingKey struct {
	axisSize int
	base     int
}

// vanishingEntry holds a coset shift s for an axis of size n and base k,
// together with 1/t(s*w^j) for t = Z^k - 1 and j in [0, n).
type vanishingEntry struct {
	coset  fr.Element
	invDen []fr.Element
}

// VanishingCache memoizes coset shifts and inverted vanishing evaluations
// per (axis size, base). It is safe for concurrent use.
type VanishingCache struct {
	mu      sync.Mutex
	entries map[vanishingKey]*vanishingEntry
}

func NewVanishingCache() *VanishingCache {
	return &VanishingCache{entries: make(map[vanishingKey]*vanishingEntry)}
}

// Len returns the number of cached axes.
func (c *VanishingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops every entry, forcing fresh cosets on the next division.
func (c *VanishingCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// lookup returns the entry for (axisSize, base). A nil cache always computes
// a fresh one.
func (c *VanishingCache) lookup(axisSize, base int, sampler CosetSampler) (*vanishingEntry, error) {
	if c == nil {
		return newVanishingEntry(axisSize, base, sampler)
	}
	key := vanishingKey{axisSize, base}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		log := logger.Logger()
		log.Debug().Int("axisSize", axisSize).Int("base", base).Msg("vanishing cache hit")
		return e, nil
	}
	e, err := newVanishingEntry(axisSize, base, sampler)
	if err != nil {
		return nil, err
	}
	c.entries[key] = e
	return e, nil
}

func newVanishingEntry(axisSize, base int, sampler CosetSampler) (*vanishingEntry, error) {
	coset, err := sampleCoset(axisSize, sampler)
	if err != nil {
		return nil, err
	}

	domain := domains.acquire(uint64(axisSize))
	var step fr.Element
	step.Exp(domain.Generator, big.NewInt(int64(base)))
	domains.release(uint64(axisSize))

	// t(s*w^j) = s^k * (w^k)^j - 1 repeats with period n/k.
	period := axisSize / base
	den := make([]fr.Element, period)
	var cur fr.Element
	cur.Exp(coset, big.NewInt(int64(base)))
	for j := range den {
		den[j].Sub(&cur, &one)
		cur.Mul(&cur, &step)
	}
	den = fr.BatchInvert(den)

	invDen := make([]fr.Element, axisSize)
	for j := range invDen {
		invDen[j] = den[j%period]
	}
	return &vanishingEntry{coset: coset, invDen: invDen}, nil
}

// sampleCoset draws shifts until one is nonzero and s^axisSize != 1, which
// keeps every vanishing evaluation on the shifted domain nonzero.
func sampleCoset(axisSize int, sampler CosetSampler) (fr.Element, error) {
	exp := big.NewInt(int64(axisSize))
	for range maxCosetDraws {
		s, err := sampler.SampleCoset()
		if err != nil {
			return fr.Element{}, err
		}
		if s.IsZero() {
			continue
		}
		var t fr.Element
		if t.Exp(s, exp); t.IsOne() {
			continue
		}
		return s, nil
	}
	return fr.Element{}, fmt.Errorf("%w: no usable coset shift after %d draws", ErrDomain, maxCosetDraws)
}

// DivByVanishing finds qx and qy with p = qx*(X^c - 1) + qy*(Y^d - 1) and
// deg_X(qy) < c. c and d must be powers of two not above the degrees of p,
// and p must vanish on the product of the c-th and d-th roots of unity,
// otherwise ErrNotDivisible is returned.
func (p *Polynomial) DivByVanishing(c, d int, opts ...DivisionOption) (qx, qy *Polynomial, err error) {
	cfg, err := NewDivisionConfig(opts...)
	if err != nil {
		return nil, nil, err
	}
	if !isPowerOfTwo(c) || !isPowerOfTwo(d) {
		return nil, nil, fmt.Errorf("%w: vanishing degrees (%d, %d) must be powers of two", ErrDomain, c, d)
	}
	dx, dy := p.exactDegree()
	if dx < c || dy < d {
		return nil, nil, fmt.Errorf("%w: degree (%d, %d) is below vanishing degrees (%d, %d)", ErrDomain, dx, dy, c, d)
	}

	log := logger.Logger().With().Str("op", "DivByVanishing").Int("c", c).Int("d", d).Logger()
	start := time.Now()

	pw := p.resized(dx+1, dy+1)
	xSize, ySize := pw.xSize, pw.ySize

	// P mod (X^c - 1) = qy*(Y^d - 1) since qy has X degree below c.
	folded := pw.foldX(c)
	if !isZeroVector(foldY(folded, c, ySize, d)) {
		return nil, nil, ErrNotDivisible
	}

	yAxis, err := cfg.Cache.lookup(ySize, d, cfg.Sampler)
	if err != nil {
		return nil, nil, err
	}
	evals := fromOwned(folded, c, ySize).ToRouEvals(nil, &yAxis.coset)
	parallelize(c, func(start, end int) {
		for i := start; i < end; i++ {
			row := fr.Vector(evals[i*ySize : (i+1)*ySize])
			row.Mul(row, yAxis.invDen)
		}
	})
	if qy, err = FromRouEvals(evals, c, ySize, nil, &yAxis.coset); err != nil {
		return nil, nil, err
	}
	qy.OptimizeSize()

	// qx*(X^c - 1) = P - qy*(Y^d - 1)
	b := pw.Sub(qy.MulMonomial(0, d).Sub(qy))
	xAxis, err := cfg.Cache.lookup(xSize, c, cfg.Sampler)
	if err != nil {
		return nil, nil, err
	}
	evals = b.ToRouEvals(&xAxis.coset, nil)
	parallelize(xSize, func(start, end int) {
		for i := start; i < end; i++ {
			row := fr.Vector(evals[i*ySize : (i+1)*ySize])
			row.ScalarMul(row, &xAxis.invDen[i])
		}
	})
	if qx, err = FromRouEvals(evals, xSize, ySize, &xAxis.coset, nil); err != nil {
		return nil, nil, err
	}
	qx.OptimizeSize()

	log.Debug().Int("xSize", xSize).Int("ySize", ySize).Dur("took", time.Since(start)).Msg("divided by vanishing polynomials")
	return qx, qy, nil
}

func isZeroVector(v []fr.Element) bool {
	for i := range v {
		if !v[i].IsZero() {
			return false
		}
	}
	return true
}
