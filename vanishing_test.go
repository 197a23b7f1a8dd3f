package bipoly

import (
	"errors"
	"fmt"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"
)

// vanishingX returns X^c - 1, vanishingY returns Y^d - 1.
func vanishingX(c int) *Polynomial { return Constant(fr.One()).MulMonomial(c, 0).SubScalar(fr.One()) }
func vanishingY(d int) *Polynomial { return Constant(fr.One()).MulMonomial(0, d).SubScalar(fr.One()) }

// stubSampler replays vals, then fails.
type stubSampler struct {
	vals []fr.Element
	next int
}

func (s *stubSampler) SampleCoset() (fr.Element, error) {
	if s.next == len(s.vals) {
		return fr.Element{}, errors.New("stub sampler exhausted")
	}
	s.next++
	return s.vals[s.next-1], nil
}

func TestDivByVanishing(t *testing.T) {
	tests := []struct {
		c, d           int
		qxSize, qySize [2]int
	}{
		{2, 2, [2]int{2, 2}, [2]int{2, 2}},
		{2, 4, [2]int{4, 4}, [2]int{2, 4}},
		{4, 8, [2]int{8, 16}, [2]int{4, 8}},
		{8, 2, [2]int{4, 8}, [2]int{8, 16}},
		{1, 1, [2]int{4, 4}, [2]int{1, 4}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("c=%d,d=%d", tt.c, tt.d), func(t *testing.T) {
			qx := randPoly(t, tt.qxSize[0], tt.qxSize[1])
			qy := randPoly(t, tt.qySize[0], tt.qySize[1])
			p := qx.Mul(vanishingX(tt.c)).Add(qy.Mul(vanishingY(tt.d)))

			gotX, gotY, err := p.DivByVanishing(tt.c, tt.d)
			require.NoError(t, err)
			requireSamePoly(t, qx, gotX)
			requireSamePoly(t, qy, gotY)
		})
	}
}

func TestDivByVanishingNotDivisible(t *testing.T) {
	qx, qy := randPoly(t, 4, 4), randPoly(t, 2, 4)
	p := qx.Mul(vanishingX(2)).Add(qy.Mul(vanishingY(4))).AddScalar(fr.One())

	_, _, err := p.DivByVanishing(2, 4)
	require.ErrorIs(t, err, ErrNotDivisible)
	require.ErrorIs(t, err, ErrDomain)
}

func TestDivByVanishingPreconditions(t *testing.T) {
	p := randPoly(t, 4, 4)

	_, _, err := p.DivByVanishing(3, 2)
	require.ErrorIs(t, err, ErrDomain)
	_, _, err = p.DivByVanishing(2, 0)
	require.ErrorIs(t, err, ErrDomain)

	// degree 3 on both axes
	_, _, err = p.DivByVanishing(4, 2)
	require.ErrorIs(t, err, ErrDomain)
	_, _, err = p.DivByVanishing(2, 4)
	require.ErrorIs(t, err, ErrDomain)

	_, _, err = p.DivByVanishing(2, 2, WithCosetSampler(nil))
	require.ErrorIs(t, err, ErrDomain)
}

func TestDivByVanishingWithCache(t *testing.T) {
	cache := NewVanishingCache()
	sampler := NewTranscriptSampler([]byte("vanishing"))

	for range 3 {
		qx, qy := randPoly(t, 8, 8), randPoly(t, 4, 8)
		p := qx.Mul(vanishingX(4)).Add(qy.Mul(vanishingY(2)))

		gotX, gotY, err := p.DivByVanishing(4, 2, WithVanishingCache(cache), WithCosetSampler(sampler))
		require.NoError(t, err)
		requireSamePoly(t, qx, gotX)
		requireSamePoly(t, qy, gotY)
	}
	// one entry per axis shape
	require.Equal(t, 2, cache.Len())

	cache.Reset()
	require.Zero(t, cache.Len())
}

func TestSampleCosetSkipsDegenerateShifts(t *testing.T) {
	const axisSize = 8
	w := rootOfUnity(t, axisSize)
	good := elems(5)[0]

	s := &stubSampler{vals: []fr.Element{{}, fr.One(), w, good}}
	got, err := sampleCoset(axisSize, s)
	require.NoError(t, err)
	require.Equal(t, good, got)
	require.Equal(t, 4, s.next)

	degenerate := make([]fr.Element, maxCosetDraws)
	_, err = sampleCoset(axisSize, &stubSampler{vals: degenerate})
	require.ErrorIs(t, err, ErrDomain)

	_, err = sampleCoset(axisSize, &stubSampler{})
	require.Error(t, err)
}

func TestVanishingEntryDenominators(t *testing.T) {
	const axisSize, base = 16, 4
	e, err := newVanishingEntry(axisSize, base, NewTranscriptSampler([]byte("den")))
	require.NoError(t, err)
	require.Len(t, e.invDen, axisSize)

	w := rootOfUnity(t, axisSize)
	pt := e.coset
	tk := vanishingX(base)
	for j := 0; j < axisSize; j++ {
		den := tk.Eval(pt, fr.One())
		var prod fr.Element
		prod.Mul(&den, &e.invDen[j])
		require.True(t, prod.IsOne(), "point %d", j)
		pt.Mul(&pt, &w)
	}
}

func BenchmarkDivByVanishing(b *testing.B) {
	n := 64
	if testing.Short() {
		n = 16
	}
	qx, qy := randPoly(b, n, 2*n), randPoly(b, n, n)
	p := qx.Mul(vanishingX(n)).Add(qy.Mul(vanishingY(n)))
	cache := NewVanishingCache()
	for b.Loop() {
		if _, _, err := p.DivByVanishing(n, n, WithVanishingCache(cache)); err != nil {
			b.Fatal(err)
		}
	}
}
