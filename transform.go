package bipoly

import (
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/logger"
)

// ToRouEvals evaluates p on the grid (cx*wx^i, cy*wy^j), where wx and wy are
// primitive roots of unity of order xSize and ySize. A nil coset stands for
// the plain root-of-unity domain on that axis. The result is row-major like
// the coefficients.
func (p *Polynomial) ToRouEvals(cosetX, cosetY *fr.Element) []fr.Element {
	evals := make([]fr.Element, len(p.coeffs))
	copy(evals, p.coeffs)
	return biNTT(evals, p.xSize, p.ySize, false, cosetX, cosetY)
}

// FromRouEvals interpolates the polynomial whose evaluations on the
// (optionally shifted) root-of-unity grid are evals. It inverts ToRouEvals.
func FromRouEvals(evals []fr.Element, xSize, ySize int, cosetX, cosetY *fr.Element) (*Polynomial, error) {
	if err := checkShape(len(evals), xSize, ySize); err != nil {
		return nil, err
	}
	if (cosetX != nil && cosetX.IsZero()) || (cosetY != nil && cosetY.IsZero()) {
		return nil, fmt.Errorf("%w: zero coset factor", ErrDomain)
	}
	coeffs := make([]fr.Element, len(evals))
	copy(coeffs, evals)
	return fromOwned(biNTT(coeffs, xSize, ySize, true, cosetX, cosetY), xSize, ySize), nil
}

// biNTT runs the 2-D transform of a row-major xSize x ySize grid: a batch of
// Y transforms over the rows, then a batch of X transforms over the
// transposed grid. data is consumed; the returned slice holds the result.
func biNTT(data []fr.Element, xSize, ySize int, inverse bool, cosetX, cosetY *fr.Element) []fr.Element {
	path := selectPath(xSize, ySize)
	start := time.Now()

	if !inverse {
		scaleGrid(data, xSize, ySize, cosetX, cosetY)
	}

	batchNTT(path, data, ySize, xSize, inverse)
	if xSize > 1 {
		t := transpose(data, xSize, ySize)
		batchNTT(path, t, xSize, ySize, inverse)
		data = transpose(t, ySize, xSize)
	}

	if inverse {
		var invX, invY *fr.Element
		if cosetX != nil {
			invX = new(fr.Element).Inverse(cosetX)
		}
		if cosetY != nil {
			invY = new(fr.Element).Inverse(cosetY)
		}
		scaleGrid(data, xSize, ySize, invX, invY)
	}

	log := logger.Logger()
	log.Trace().
		Int("xSize", xSize).Int("ySize", ySize).
		Bool("inverse", inverse).Stringer("path", path).
		Dur("took", time.Since(start)).Msg("biNTT")
	return data
}

// scaleGrid multiplies cell (i, j) by fx^i * fy^j. A nil factor leaves that
// axis untouched.
func scaleGrid(data []fr.Element, xSize, ySize int, fx, fy *fr.Element) {
	if fx == nil && fy == nil {
		return
	}
	var px, py []fr.Element
	if fx != nil {
		px = powers(*fx, xSize)
	}
	if fy != nil {
		py = powers(*fy, ySize)
	}
	parallelize(xSize, func(start, end int) {
		for i := start; i < end; i++ {
			row := data[i*ySize : (i+1)*ySize]
			for j := range row {
				if px != nil {
					row[j].Mul(&row[j], &px[i])
				}
				if py != nil {
					row[j].Mul(&row[j], &py[j])
				}
			}
		}
	})
}

// powers returns (1, w, .., wⁿ⁻¹).
func powers(w fr.Element, n int) []fr.Element {
	res := make([]fr.Element, n)
	if n == 0 {
		return res
	}
	res[0].SetOne()
	for i := 1; i < n; i++ {
		res[i].Mul(&res[i-1], &w)
	}
	return res
}
