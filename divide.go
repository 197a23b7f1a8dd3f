package bipoly

import (
	"fmt"
	"runtime"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"
)

// DivideX divides p by a polynomial in X only and returns the quotient and
// remainder, with p = q*d + r and deg_X(r) < deg_X(d).
func (p *Polynomial) DivideX(d *Polynomial) (q, r *Polynomial, err error) {
	dx, dy := d.exactDegree()
	if dy != 0 {
		return nil, nil, fmt.Errorf("%w: divisor has Y degree %d, want a polynomial in X", ErrDomain, dy)
	}
	den := make([]fr.Element, dx+1)
	for i := range den {
		den[i] = d.coeffs[i*d.ySize]
	}
	pdx, _ := p.exactDegree()
	if err := checkDivisor(den, pdx, "X"); err != nil {
		return nil, nil, err
	}
	if dx == 0 {
		return p.divideByConstant(den[0])
	}

	// Y-rows are the contiguous ones, so divide the columns of the transpose.
	t := transpose(p.coeffs, p.xSize, p.ySize)
	qt, rt := divideRows(t, p.ySize, p.xSize, den)
	q = fromOwned(transpose(qt, p.ySize, p.xSize), p.xSize, p.ySize)
	r = fromOwned(transpose(rt, p.ySize, p.xSize), p.xSize, p.ySize)
	q.OptimizeSize()
	r.OptimizeSize()
	return q, r, nil
}

// DivideY divides p by a polynomial in Y only and returns the quotient and
// remainder, with p = q*d + r and deg_Y(r) < deg_Y(d).
func (p *Polynomial) DivideY(d *Polynomial) (q, r *Polynomial, err error) {
	dx, dy := d.exactDegree()
	if dx != 0 {
		return nil, nil, fmt.Errorf("%w: divisor has X degree %d, want a polynomial in Y", ErrDomain, dx)
	}
	den := make([]fr.Element, dy+1)
	copy(den, d.coeffs[:dy+1])
	_, pdy := p.exactDegree()
	if err := checkDivisor(den, pdy, "Y"); err != nil {
		return nil, nil, err
	}
	if dy == 0 {
		return p.divideByConstant(den[0])
	}

	qc, rc := divideRows(p.coeffs, p.xSize, p.ySize, den)
	q = fromOwned(qc, p.xSize, p.ySize)
	r = fromOwned(rc, p.xSize, p.ySize)
	q.OptimizeSize()
	r.OptimizeSize()
	return q, r, nil
}

func checkDivisor(den []fr.Element, numDegree int, axis string) error {
	dd := len(den) - 1
	if dd == 0 && den[0].IsZero() {
		return fmt.Errorf("%w: division by zero", ErrDomain)
	}
	if numDegree < dd {
		return fmt.Errorf("%w: dividend %s degree %d is below divisor degree %d", ErrDomain, axis, numDegree, dd)
	}
	return nil
}

func (p *Polynomial) divideByConstant(c fr.Element) (*Polynomial, *Polynomial, error) {
	var inv fr.Element
	inv.Inverse(&c)
	q := p.MulScalar(inv)
	q.OptimizeSize()
	return q, Zero(), nil
}

// divideRows long-divides each of the rows of a rows x cols grid by den, whose
// leading coefficient is nonzero. Rows are independent and run concurrently.
func divideRows(grid []fr.Element, rows, cols int, den []fr.Element) (quo, rem []fr.Element) {
	quo = make([]fr.Element, len(grid))
	rem = make([]fr.Element, len(grid))
	copy(rem, grid)

	var leadInv fr.Element
	leadInv.Inverse(&den[len(den)-1])

	// The group only bounds the fan-out with SetLimit; a row cannot fail.
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < rows; i++ {
		g.Go(func() error {
			longDivide(rem[i*cols:(i+1)*cols], den, &leadInv, quo[i*cols:(i+1)*cols])
			return nil
		})
	}
	_ = g.Wait()
	return quo, rem
}

// longDivide reduces num modulo den in place and writes the quotient to q.
// On return num holds the remainder.
func longDivide(num, den []fr.Element, leadInv *fr.Element, q []fr.Element) {
	dd := len(den) - 1
	var c, t fr.Element
	for k := len(num) - 1; k >= dd; k-- {
		if num[k].IsZero() {
			continue
		}
		c.Mul(&num[k], leadInv)
		q[k-dd] = c
		for s := 0; s <= dd; s++ {
			t.Mul(&c, &den[s])
			num[k-dd+s].Sub(&num[k-dd+s], &t)
		}
	}
}
