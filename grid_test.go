package bipoly

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindDegree(t *testing.T) {
	// X^2 + 5 X Y^3 on a 4x8 grid
	coeffs := make([]uint64, 32)
	coeffs[2*8+0] = 1
	coeffs[1*8+3] = 5
	p := mustPoly(t, 4, 8, coeffs...)
	dx, dy := p.FindDegree()
	require.Equal(t, 2, dx)
	require.Equal(t, 3, dy)
}

func TestResize(t *testing.T) {
	p := mustPoly(t, 2, 2, 1, 3, 2, 4)

	t.Run("grow keeps positions", func(t *testing.T) {
		g := p.Clone()
		require.NoError(t, g.Resize(3, 5))
		x, y := g.Size()
		require.Equal(t, 4, x)
		require.Equal(t, 8, y)
		want := map[[2]int]uint64{{0, 0}: 1, {0, 1}: 3, {1, 0}: 2, {1, 1}: 4, {3, 7}: 0}
		for idx, w := range want {
			v, err := g.GetCoeff(idx[0], idx[1])
			require.NoError(t, err)
			require.Equal(t, elems(w)[0], v, "coefficient %v", idx)
		}
		requireSamePoly(t, p, g)
	})

	t.Run("shrink truncates and rescans", func(t *testing.T) {
		s := p.Clone()
		require.NoError(t, s.Resize(1, 2))
		requireSamePoly(t, mustPoly(t, 1, 2, 1, 3), s)
		dx, dy := s.Degree()
		require.Equal(t, 0, dx)
		require.Equal(t, 1, dy)
	})

	t.Run("non-positive target", func(t *testing.T) {
		require.ErrorIs(t, p.Clone().Resize(0, 2), ErrConstruction)
		require.ErrorIs(t, p.Clone().Resize(2, -1), ErrConstruction)
	})
}

func TestOptimizeSize(t *testing.T) {
	coeffs := make([]uint64, 16)
	coeffs[1*4+0] = 7 // 7X on a 4x4 grid
	p := mustPoly(t, 4, 4, coeffs...)
	p.OptimizeSize()
	x, y := p.Size()
	require.Equal(t, 2, x)
	require.Equal(t, 1, y)
	require.Equal(t, elems(0, 7), p.Coefficients())

	z := mustPoly(t, 4, 2, make([]uint64, 8)...)
	z.OptimizeSize()
	x, y = z.Size()
	require.Equal(t, 1, x)
	require.Equal(t, 1, y)
}

func TestOptimizeSizeKeepsMinimalGrid(t *testing.T) {
	// 1 + 2X + 3Y already fits its 2x2 grid
	p := mustPoly(t, 2, 2, 1, 3, 2, 0)
	p.OptimizeSize()
	x, y := p.Size()
	require.Equal(t, [2]int{2, 2}, [2]int{x, y})
	dx, dy := p.Degree()
	require.Equal(t, [2]int{1, 1}, [2]int{dx, dy})
	require.Equal(t, elems(1, 3, 2, 0), p.Coefficients())

	// 4 X^2 Y^2 on an 8x8 grid shrinks to 4x4 and keeps its degree
	coeffs := make([]uint64, 64)
	coeffs[2*8+2] = 4
	q := mustPoly(t, 8, 8, coeffs...)
	q.OptimizeSize()
	x, y = q.Size()
	require.Equal(t, [2]int{4, 4}, [2]int{x, y})
	dx, dy = q.Degree()
	require.Equal(t, [2]int{2, 2}, [2]int{dx, dy})
	c, err := q.GetCoeff(2, 2)
	require.NoError(t, err)
	require.Equal(t, elems(4)[0], c)
}

func TestUnivariateExtraction(t *testing.T) {
	p := mustPoly(t, 2, 2, 1, 3, 2, 4)

	ux, err := p.UnivariateX(0)
	require.NoError(t, err)
	x, y := ux.Size()
	require.Equal(t, [2]int{2, 1}, [2]int{x, y})
	require.Equal(t, elems(1, 2), ux.Coefficients())

	ux, err = p.UnivariateX(1)
	require.NoError(t, err)
	require.Equal(t, elems(3, 4), ux.Coefficients())

	uy, err := p.UnivariateY(1)
	require.NoError(t, err)
	x, y = uy.Size()
	require.Equal(t, [2]int{1, 2}, [2]int{x, y})
	require.Equal(t, elems(2, 4), uy.Coefficients())

	_, err = p.UnivariateX(2)
	require.ErrorIs(t, err, ErrBounds)
	_, err = p.UnivariateY(-1)
	require.ErrorIs(t, err, ErrBounds)
}

func TestFolds(t *testing.T) {
	// rows 0..3 of a 4x2 grid
	p := mustPoly(t, 4, 2, 1, 2, 3, 4, 5, 6, 7, 8)
	fx := p.foldX(2)
	require.Equal(t, elems(1+5, 2+6, 3+7, 4+8), fx)

	fy := foldY(p.coeffs, 4, 2, 1)
	require.Equal(t, elems(3, 7, 11, 15), fy)
}
