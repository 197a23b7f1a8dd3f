// Package bipoly implements dense bivariate polynomials over the BLS12-381
// scalar field.
//
// Coefficients live on a power-of-two grid of xSize*ySize cells. The
// coefficient of X^i Y^j is stored at index i*ySize + j: rows are indexed by
// the X exponent and every row is a contiguous polynomial in Y. All code in
// this package relies on that layout.
package bipoly

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Polynomial is a dense bivariate polynomial P(X, Y).
//
// xSize and ySize are the allocated capacity. xDegree and yDegree cache the
// highest exponents carrying a nonzero coefficient; they may be stale after
// operations that do not rescan, see FindDegree.
type Polynomial struct {
	coeffs  []fr.Element
	xSize   int
	ySize   int
	xDegree int
	yDegree int
}

// Zero returns the zero polynomial on a 1x1 grid.
func Zero() *Polynomial {
	return &Polynomial{coeffs: make([]fr.Element, 1), xSize: 1, ySize: 1}
}

// Constant returns the constant polynomial c on a 1x1 grid.
func Constant(c fr.Element) *Polynomial {
	p := Zero()
	p.coeffs[0] = c
	return p
}

// FromCoeffs builds a polynomial from a row-major coefficient grid. The slice
// is copied.
func FromCoeffs(coeffs []fr.Element, xSize, ySize int) (*Polynomial, error) {
	if err := checkShape(len(coeffs), xSize, ySize); err != nil {
		return nil, err
	}
	p := &Polynomial{
		coeffs: make([]fr.Element, len(coeffs)),
		xSize:  xSize,
		ySize:  ySize,
	}
	copy(p.coeffs, coeffs)
	p.FindDegree()
	return p, nil
}

// fromOwned wraps a freshly allocated grid without copying and scans its
// degree.
func fromOwned(coeffs []fr.Element, xSize, ySize int) *Polynomial {
	p := &Polynomial{coeffs: coeffs, xSize: xSize, ySize: ySize}
	p.FindDegree()
	return p
}

func checkShape(n, xSize, ySize int) error {
	if !isPowerOfTwo(xSize) {
		return fmt.Errorf("%w: x size %d is not a power of two", ErrConstruction, xSize)
	}
	if !isPowerOfTwo(ySize) {
		return fmt.Errorf("%w: y size %d is not a power of two", ErrConstruction, ySize)
	}
	if bits.Len(uint(xSize))-1 > MAX_TRANSFORM_LOG || bits.Len(uint(ySize))-1 > MAX_TRANSFORM_LOG {
		return fmt.Errorf("%w: %dx%d grid exceeds the largest transform size", ErrConstruction, xSize, ySize)
	}
	if n != xSize*ySize {
		return fmt.Errorf("%w: %d coefficients for a %dx%d grid", ErrConstruction, n, xSize, ySize)
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// nextPowerOfTwo returns the smallest power of two >= n, for n >= 1.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Clone returns a deep copy of p.
func (p *Polynomial) Clone() *Polynomial {
	c := *p
	c.coeffs = make([]fr.Element, len(p.coeffs))
	copy(c.coeffs, p.coeffs)
	return &c
}

// Size returns the allocated capacity along X and Y.
func (p *Polynomial) Size() (int, int) {
	return p.xSize, p.ySize
}

// Degree returns the cached degrees. Call FindDegree first when an exact
// value is required.
func (p *Polynomial) Degree() (int, int) {
	return p.xDegree, p.yDegree
}

// IsZero scans the grid for a nonzero coefficient.
func (p *Polynomial) IsZero() bool {
	for i := range p.coeffs {
		if !p.coeffs[i].IsZero() {
			return false
		}
	}
	return true
}

// isConstant reports whether the exact degree is (0, 0).
func (p *Polynomial) isConstant() bool {
	dx, dy := p.exactDegree()
	return dx == 0 && dy == 0
}

// GetCoeff returns the coefficient of X^i Y^j.
func (p *Polynomial) GetCoeff(i, j int) (fr.Element, error) {
	if i < 0 || j < 0 || i >= p.xSize || j >= p.ySize {
		return fr.Element{}, fmt.Errorf("%w: (%d, %d) on a %dx%d grid", ErrBounds, i, j, p.xSize, p.ySize)
	}
	return p.coeffs[i*p.ySize+j], nil
}

// CopyCoeffs copies the flattened grid, starting at flat index start, into
// dst. It copies min(len(dst), remaining) elements.
func (p *Polynomial) CopyCoeffs(start int, dst []fr.Element) (int, error) {
	if start < 0 || start > len(p.coeffs) {
		return 0, fmt.Errorf("%w: start index %d for %d coefficients", ErrBounds, start, len(p.coeffs))
	}
	return copy(dst, p.coeffs[start:]), nil
}

// Coefficients returns a copy of the flattened row-major grid.
func (p *Polynomial) Coefficients() []fr.Element {
	out := make([]fr.Element, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// String renders the nonzero terms, mostly for debugging small polynomials.
func (p *Polynomial) String() string {
	var sb strings.Builder
	for i := 0; i < p.xSize; i++ {
		for j := 0; j < p.ySize; j++ {
			c := &p.coeffs[i*p.ySize+j]
			if c.IsZero() {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString(" + ")
			}
			sb.WriteString(c.String())
			if i > 0 {
				fmt.Fprintf(&sb, "*X^%d", i)
			}
			if j > 0 {
				fmt.Fprintf(&sb, "*Y^%d", j)
			}
		}
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}
