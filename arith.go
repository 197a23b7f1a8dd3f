package bipoly

import (
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/logger"
)

// Add returns p + q on the per-axis larger capacity.
func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	x, y := max(p.xSize, q.xSize), max(p.ySize, q.ySize)
	a, b := p.resized(x, y), q.resized(x, y)
	res := fr.Vector(a.coeffs)
	res.Add(res, b.coeffs)
	a.FindDegree()
	return a
}

// Sub returns p - q on the per-axis larger capacity.
func (p *Polynomial) Sub(q *Polynomial) *Polynomial {
	x, y := max(p.xSize, q.xSize), max(p.ySize, q.ySize)
	a, b := p.resized(x, y), q.resized(x, y)
	res := fr.Vector(a.coeffs)
	res.Sub(res, b.coeffs)
	a.FindDegree()
	return a
}

// Neg returns -p.
func (p *Polynomial) Neg() *Polynomial {
	return Zero().Sub(p)
}

// MulScalar returns s * p.
func (p *Polynomial) MulScalar(s fr.Element) *Polynomial {
	if s.Equal(&one) {
		return p.Clone()
	}
	if s.IsZero() {
		return &Polynomial{coeffs: make([]fr.Element, len(p.coeffs)), xSize: p.xSize, ySize: p.ySize}
	}
	res := p.Clone()
	v := fr.Vector(res.coeffs)
	v.ScalarMul(v, &s)
	return res
}

// AddScalar returns p + s.
func (p *Polynomial) AddScalar(s fr.Element) *Polynomial {
	res := p.Clone()
	if s.IsZero() {
		return res
	}
	res.coeffs[0].Add(&res.coeffs[0], &s)
	res.FindDegree()
	return res
}

// SubScalar returns p - s.
func (p *Polynomial) SubScalar(s fr.Element) *Polynomial {
	res := p.Clone()
	if s.IsZero() {
		return res
	}
	res.coeffs[0].Sub(&res.coeffs[0], &s)
	res.FindDegree()
	return res
}

// ScalarSub returns s - p.
func (p *Polynomial) ScalarSub(s fr.Element) *Polynomial {
	res := p.Neg()
	if s.IsZero() {
		return res
	}
	res.coeffs[0].Add(&res.coeffs[0], &s)
	res.FindDegree()
	return res
}

// Mul returns p * q, computed as a pointwise product of root-of-unity
// evaluations on a grid large enough to avoid wrap-around.
func (p *Polynomial) Mul(q *Polynomial) *Polynomial {
	if p.isConstant() {
		return q.MulScalar(p.coeffs[0])
	}
	if q.isConstant() {
		return p.MulScalar(q.coeffs[0])
	}

	start := time.Now()
	dxA, dyA := p.exactDegree()
	dxB, dyB := q.exactDegree()
	x := max(nextPowerOfTwo(dxA+dxB+1), p.xSize, q.xSize)
	y := max(nextPowerOfTwo(dyA+dyB+1), p.ySize, q.ySize)

	ea := p.resized(x, y).ToRouEvals(nil, nil)
	eb := q.resized(x, y).ToRouEvals(nil, nil)
	prod := fr.Vector(ea)
	prod.Mul(prod, eb)

	res := fromOwned(biNTT(ea, x, y, true, nil, nil), x, y)
	res.OptimizeSize()

	log := logger.Logger()
	log.Debug().
		Int("xSize", x).Int("ySize", y).
		Dur("took", time.Since(start)).Msg("bivariate mul")
	return res
}

// MulMonomial returns p * X^a * Y^b. a and b must be non-negative.
func (p *Polynomial) MulMonomial(a, b int) *Polynomial {
	if a < 0 || b < 0 {
		panic("bipoly: negative monomial exponent")
	}
	dx, dy := p.exactDegree()
	if a == 0 && b == 0 || p.IsZero() {
		return p.Clone()
	}
	x, y := nextPowerOfTwo(dx+1+a), nextPowerOfTwo(dy+1+b)
	res := make([]fr.Element, x*y)
	for i := 0; i <= dx; i++ {
		copy(res[(i+a)*y+b:(i+a)*y+b+dy+1], p.coeffs[i*p.ySize:i*p.ySize+dy+1])
	}
	return &Polynomial{coeffs: res, xSize: x, ySize: y, xDegree: dx + a, yDegree: dy + b}
}

// ScaleCoeffsX returns P(f*X, Y): row i is multiplied by f^i.
func (p *Polynomial) ScaleCoeffsX(f fr.Element) *Polynomial {
	res := p.Clone()
	scaleGrid(res.coeffs, res.xSize, res.ySize, &f, nil)
	res.FindDegree()
	return res
}

// ScaleCoeffsY returns P(X, f*Y): column j is multiplied by f^j.
func (p *Polynomial) ScaleCoeffsY(f fr.Element) *Polynomial {
	res := p.Clone()
	scaleGrid(res.coeffs, res.xSize, res.ySize, nil, &f)
	res.FindDegree()
	return res
}
