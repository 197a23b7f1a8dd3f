package bipoly

import (
	"fmt"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"
)

func TestDivByRuffini(t *testing.T) {
	for _, shape := range [][2]int{{1, 1}, {1, 8}, {8, 1}, {4, 16}, {16, 4}} {
		t.Run(fmt.Sprintf("%dx%d", shape[0], shape[1]), func(t *testing.T) {
			p := randPoly(t, shape[0], shape[1])
			x0, y0 := randElement(t), randElement(t)

			qx, qy, r := p.DivByRuffini(x0, y0)
			require.Equal(t, p.Eval(x0, y0), r)

			sx, sy := qy.Size()
			require.Equal(t, [2]int{1, shape[1]}, [2]int{sx, sy})

			// P(a, b) = qx(a, b)(a - x0) + qy(b)(b - y0) + r
			a, b := randElement(t), randElement(t)
			var ax, by, lhs, rhs fr.Element
			ax.Sub(&a, &x0)
			by.Sub(&b, &y0)
			lhs = p.Eval(a, b)
			ex, ey := qx.Eval(a, b), qy.Eval(a, b)
			rhs.Mul(&ex, &ax)
			ey.Mul(&ey, &by)
			rhs.Add(&rhs, &ey).Add(&rhs, &r)
			require.Equal(t, lhs, rhs)
		})
	}
}

func TestDivByRuffiniSmall(t *testing.T) {
	// 1 + 3Y + 2X + 4XY = (2 + 4Y)(X - 2) + 11(Y - 3) + 38
	p := mustPoly(t, 2, 2, 1, 3, 2, 4)
	qx, qy, r := p.DivByRuffini(elems(2)[0], elems(3)[0])
	require.Equal(t, elems(38)[0], r)
	requireSamePoly(t, mustPoly(t, 1, 2, 2, 4), qx)
	requireSamePoly(t, Constant(elems(11)[0]), qy)
}
