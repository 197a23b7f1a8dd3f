package bipoly

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/tokamak-network/bipoly/gpu"
)

// domainCache hands out root-of-unity domains keyed by transform size.
// Every acquire must be paired with a release; idle domains are dropped by
// purge only.
type domainCache struct {
	mu      sync.Mutex
	entries map[uint64]*domainEntry
}

type domainEntry struct {
	domain *fft.Domain
	refs   int
}

var domains = &domainCache{entries: make(map[uint64]*domainEntry)}

func (c *domainCache) acquire(n uint64) *fft.Domain {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[n]
	if !ok {
		e = &domainEntry{domain: fft.NewDomain(n)}
		c.entries[n] = e
	}
	e.refs++
	return e.domain
}

func (c *domainCache) release(n uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[n]
	if !ok || e.refs == 0 {
		panic("bipoly: release of a transform domain that was not acquired")
	}
	e.refs--
}

// purge drops idle domains and returns how many were dropped.
func (c *domainCache) purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for n, e := range c.entries {
		if e.refs == 0 {
			delete(c.entries, n)
			dropped++
		}
	}
	return dropped
}

// ReleaseTransformDomains frees every cached host domain and the device
// domain that no transform currently holds.
func ReleaseTransformDomains() error {
	domains.purge()
	return gpu.ReleaseDomain()
}
