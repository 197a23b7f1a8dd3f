package bipoly

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// captureLogs routes the gnark logger to a buffer for the rest of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := logger.Logger()
	t.Cleanup(func() { logger.Set(prev) })
	var buf bytes.Buffer
	logger.Set(zerolog.New(&buf).Level(zerolog.DebugLevel))
	return &buf
}

func TestDebugLogging(t *testing.T) {
	buf := captureLogs(t)

	qx, qy := randPoly(t, 4, 4), randPoly(t, 2, 4)
	p := qx.Mul(vanishingX(2)).Add(qy.Mul(vanishingY(2)))
	require.Contains(t, buf.String(), `"message":"bivariate mul"`)

	cache := NewVanishingCache()
	sampler := NewTranscriptSampler([]byte("logging"))
	for range 2 {
		_, _, err := p.DivByVanishing(2, 2, WithVanishingCache(cache), WithCosetSampler(sampler))
		require.NoError(t, err)
	}
	out := buf.String()
	require.Contains(t, out, `"message":"vanishing cache hit"`)
	require.Contains(t, out, `"message":"divided by vanishing polynomials"`)
	require.Contains(t, out, `"op":"DivByVanishing"`)
}
