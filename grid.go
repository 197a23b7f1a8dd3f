package bipoly

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// FindDegree rescans the grid, refreshes the cached degrees and returns them.
// The zero polynomial reports (0, 0).
func (p *Polynomial) FindDegree() (int, int) {
	p.xDegree, p.yDegree = p.exactDegree()
	return p.xDegree, p.yDegree
}

// exactDegree scans without touching the cached degrees.
func (p *Polynomial) exactDegree() (int, int) {
	// top[i] is the highest nonzero column of row i, or -1.
	top := make([]int, p.xSize)
	parallelize(p.xSize, func(start, end int) {
		for i := start; i < end; i++ {
			row := p.coeffs[i*p.ySize : (i+1)*p.ySize]
			top[i] = -1
			for j := len(row) - 1; j >= 0; j-- {
				if !row[j].IsZero() {
					top[i] = j
					break
				}
			}
		}
	})

	xDeg, yDeg := 0, 0
	for i, t := range top {
		if t < 0 {
			continue
		}
		xDeg = i
		if t > yDeg {
			yDeg = t
		}
	}
	return xDeg, yDeg
}

// Resize reallocates the grid to the smallest power-of-two capacity holding
// targetX x targetY. Coefficients keep their (i, j) position; cells outside
// the new bounds are dropped and new cells are zero.
func (p *Polynomial) Resize(targetX, targetY int) error {
	if targetX <= 0 || targetY <= 0 {
		return fmt.Errorf("%w: resize target %dx%d", ErrConstruction, targetX, targetY)
	}
	newX, newY := nextPowerOfTwo(targetX), nextPowerOfTwo(targetY)
	shrink := newX < p.xSize || newY < p.ySize
	p.reallocate(newX, newY)
	if shrink {
		p.FindDegree()
	}
	return nil
}

// reallocate moves the grid to a newX x newY capacity, both powers of two.
// Cached degrees are left untouched.
func (p *Polynomial) reallocate(newX, newY int) {
	if newX == p.xSize && newY == p.ySize {
		return
	}
	res := make([]fr.Element, newX*newY)
	rows := min(p.xSize, newX)
	cols := min(p.ySize, newY)
	for i := 0; i < rows; i++ {
		copy(res[i*newY:i*newY+cols], p.coeffs[i*p.ySize:i*p.ySize+cols])
	}

	p.coeffs = res
	p.xSize, p.ySize = newX, newY
}

// resized returns a resized copy of p, leaving p untouched.
func (p *Polynomial) resized(targetX, targetY int) *Polynomial {
	c := p.Clone()
	if err := c.Resize(targetX, targetY); err != nil {
		panic(err) // callers pass capacities of existing polynomials
	}
	return c
}

// OptimizeSize rescans the degree and shrinks the grid to the minimal
// power-of-two capacity.
func (p *Polynomial) OptimizeSize() {
	dx, dy := p.FindDegree()
	p.reallocate(nextPowerOfTwo(dx+1), nextPowerOfTwo(dy+1))
}

// UnivariateX returns the coefficient of Y^j as a polynomial in X, on an
// xSize x 1 grid.
func (p *Polynomial) UnivariateX(j int) (*Polynomial, error) {
	if j < 0 || j >= p.ySize {
		return nil, fmt.Errorf("%w: y index %d on a %dx%d grid", ErrBounds, j, p.xSize, p.ySize)
	}
	res := make([]fr.Element, p.xSize)
	for i := range res {
		res[i] = p.coeffs[i*p.ySize+j]
	}
	u := &Polynomial{coeffs: res, xSize: p.xSize, ySize: 1}
	u.FindDegree()
	return u, nil
}

// UnivariateY returns the coefficient of X^i as a polynomial in Y, on a
// 1 x ySize grid.
func (p *Polynomial) UnivariateY(i int) (*Polynomial, error) {
	if i < 0 || i >= p.xSize {
		return nil, fmt.Errorf("%w: x index %d on a %dx%d grid", ErrBounds, i, p.xSize, p.ySize)
	}
	res := make([]fr.Element, p.ySize)
	copy(res, p.coeffs[i*p.ySize:(i+1)*p.ySize])
	u := &Polynomial{coeffs: res, xSize: 1, ySize: p.ySize}
	u.FindDegree()
	return u, nil
}

// foldX sums the xSize/c row blocks of height c into one c x ySize grid,
// i.e. reduces P modulo X^c - 1. c must divide xSize.
func (p *Polynomial) foldX(c int) []fr.Element {
	blockLen := c * p.ySize
	acc := make(fr.Vector, blockLen)
	for k := 0; k < p.xSize/c; k++ {
		acc.Add(acc, p.coeffs[k*blockLen:(k+1)*blockLen])
	}
	return acc
}

// foldY sums the ySize/d column blocks of width d of every row into an
// xSize x d grid, i.e. reduces P modulo Y^d - 1. d must divide ySize.
func foldY(coeffs []fr.Element, xSize, ySize, d int) []fr.Element {
	acc := make([]fr.Element, xSize*d)
	parallelize(xSize, func(start, end int) {
		for i := start; i < end; i++ {
			dst := acc[i*d : (i+1)*d]
			row := coeffs[i*ySize : (i+1)*ySize]
			for j := range row {
				dst[j%d].Add(&dst[j%d], &row[j])
			}
		}
	})
	return acc
}
