package bipoly

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Eval returns P(x, y).
func (p *Polynomial) Eval(x, y fr.Element) fr.Element {
	return horner(p.evalX(x), y)
}

// EvalX returns P(x, Y) as a polynomial in Y on a 1 x ySize grid.
func (p *Polynomial) EvalX(x fr.Element) *Polynomial {
	return fromOwned(p.evalX(x), 1, p.ySize)
}

// EvalY returns P(X, y) as a polynomial in X on an xSize x 1 grid.
func (p *Polynomial) EvalY(y fr.Element) *Polynomial {
	res := make([]fr.Element, p.xSize)
	parallelize(p.xSize, func(start, end int) {
		for i := start; i < end; i++ {
			res[i] = horner(p.coeffs[i*p.ySize:(i+1)*p.ySize], y)
		}
	})
	return fromOwned(res, p.xSize, 1)
}

// evalX folds the rows with Horner's rule in x.
func (p *Polynomial) evalX(x fr.Element) []fr.Element {
	acc := make(fr.Vector, p.ySize)
	for i := p.xSize - 1; i >= 0; i-- {
		acc.ScalarMul(acc, &x)
		acc.Add(acc, p.coeffs[i*p.ySize:(i+1)*p.ySize])
	}
	return acc
}

func horner(c []fr.Element, z fr.Element) fr.Element {
	var r fr.Element
	for i := len(c) - 1; i >= 0; i-- {
		r.Mul(&r, &z).Add(&r, &c[i])
	}
	return r
}
