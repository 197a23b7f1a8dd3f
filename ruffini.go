package bipoly

import (
	"runtime"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"
)

// DivByRuffini writes p = qx*(X - x0) + qy*(Y - y0) + r. qx keeps the
// capacity of p, qy is a polynomial in Y on a 1 x ySize grid and r equals
// P(x0, y0).
func (p *Polynomial) DivByRuffini(x0, y0 fr.Element) (qx, qy *Polynomial, r fr.Element) {
	quo := make([]fr.Element, len(p.coeffs))
	rem := make([]fr.Element, p.ySize)

	// Synthetic division by (X - x0) of every Y column, on column chunks.
	// The group only bounds the fan-out; a column cannot fail.
	chunk := max(1, p.ySize/runtime.NumCPU())
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for start := 0; start < p.ySize; start += chunk {
		end := min(start+chunk, p.ySize)
		g.Go(func() error {
			var t fr.Element
			for j := start; j < end; j++ {
				acc := p.coeffs[(p.xSize-1)*p.ySize+j]
				for i := p.xSize - 2; i >= 0; i-- {
					quo[i*p.ySize+j] = acc
					t.Mul(&acc, &x0)
					acc.Add(&t, &p.coeffs[i*p.ySize+j])
				}
				rem[j] = acc
			}
			return nil
		})
	}
	_ = g.Wait()

	qyc := make([]fr.Element, p.ySize)
	r = syntheticDivide(rem, y0, qyc)

	return fromOwned(quo, p.xSize, p.ySize), fromOwned(qyc, 1, p.ySize), r
}

// syntheticDivide divides a by (Z - z), writing the quotient to q, which has
// len(a) entries with the top one left zero, and returns the remainder.
func syntheticDivide(a []fr.Element, z fr.Element, q []fr.Element) fr.Element {
	acc := a[len(a)-1]
	for i := len(a) - 2; i >= 0; i-- {
		q[i] = acc
		acc.Mul(&acc, &z).Add(&acc, &a[i])
	}
	return acc
}
