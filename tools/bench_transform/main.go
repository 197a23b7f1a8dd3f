package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/logger"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/tokamak-network/bipoly"
)

type sample struct {
	label   string
	backend string
	ntt     time.Duration
	mul     time.Duration
	vanish  time.Duration
}

func main() {
	minLog := flag.Int("min", 2, "log2 of the smallest square grid side")
	maxLog := flag.Int("max", 9, "log2 of the largest square grid side")
	rounds := flag.Int("rounds", 3, "runs averaged per shape")
	out := flag.String("out", "bench_transform.html", "chart output path")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger.Set(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).With().Timestamp().Logger())
	log := logger.Logger()

	if *minLog < 1 || *maxLog < *minLog {
		log.Fatal().Int("min", *minLog).Int("max", *maxLog).Msg("invalid sweep bounds")
	}

	cache := bipoly.NewVanishingCache()
	bar := progressbar.Default(int64((*maxLog-*minLog+1)*(*rounds)), "sweeping grids")
	var samples []sample
	for l := *minLog; l <= *maxLog; l++ {
		n := 1 << l
		s := sample{label: fmt.Sprintf("%dx%d", n, n), backend: bipoly.TransformBackend(n, n)}
		for range *rounds {
			ntt, mul, vanish, err := measure(n, cache)
			if err != nil {
				log.Fatal().Err(err).Str("shape", s.label).Msg("benchmark failed")
			}
			s.ntt += ntt
			s.mul += mul
			s.vanish += vanish
			_ = bar.Add(1)
		}
		s.ntt /= time.Duration(*rounds)
		s.mul /= time.Duration(*rounds)
		s.vanish /= time.Duration(*rounds)
		samples = append(samples, s)
		log.Info().Str("shape", s.label).Str("backend", s.backend).
			Dur("ntt", s.ntt).Dur("mul", s.mul).Dur("vanishing", s.vanish).Msg("measured")
	}
	if err := bipoly.ReleaseTransformDomains(); err != nil {
		log.Warn().Err(err).Msg("release transform domains")
	}

	if err := render(*out, samples); err != nil {
		log.Fatal().Err(err).Msg("render chart")
	}
	log.Info().Str("path", *out).Msg("chart written")
}

// measure times one forward transform, one product and one vanishing
// division on an n x n grid.
func measure(n int, cache *bipoly.VanishingCache) (ntt, mul, vanish time.Duration, err error) {
	p, err := randomPoly(n, n)
	if err != nil {
		return
	}
	q, err := randomPoly(n, n)
	if err != nil {
		return
	}

	start := time.Now()
	_ = p.ToRouEvals(nil, nil)
	ntt = time.Since(start)

	start = time.Now()
	prod := p.Mul(q)
	mul = time.Since(start)

	// prod = p*(X^n - 1) + q*(Y^n - 1) is divisible by construction
	tx := bipoly.Constant(fr.One()).MulMonomial(n, 0).SubScalar(fr.One())
	ty := bipoly.Constant(fr.One()).MulMonomial(0, n).SubScalar(fr.One())
	prod = p.Mul(tx).Add(q.Mul(ty))
	start = time.Now()
	_, _, err = prod.DivByVanishing(n, n, bipoly.WithVanishingCache(cache))
	vanish = time.Since(start)
	return
}

func randomPoly(x, y int) (*bipoly.Polynomial, error) {
	coeffs := make([]fr.Element, x*y)
	for i := range coeffs {
		if _, err := coeffs[i].SetRandom(); err != nil {
			return nil, err
		}
	}
	return bipoly.FromCoeffs(coeffs, x, y)
}

func render(path string, samples []sample) error {
	labels := make([]string, len(samples))
	ntt := make([]opts.LineData, len(samples))
	mul := make([]opts.LineData, len(samples))
	vanish := make([]opts.LineData, len(samples))
	for i, s := range samples {
		labels[i] = s.label + " (" + s.backend + ")"
		ntt[i] = opts.LineData{Value: s.ntt.Seconds() * 1e3}
		mul[i] = opts.LineData{Value: s.mul.Seconds() * 1e3}
		vanish[i] = opts.LineData{Value: s.vanish.Seconds() * 1e3}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "bivariate transforms", Subtitle: "mean wall time per operation"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms", Type: "log"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "grid"}),
	)
	line.SetXAxis(labels).
		AddSeries("ToRouEvals", ntt).
		AddSeries("Mul", mul).
		AddSeries("DivByVanishing", vanish)

	page := components.NewPage().SetPageTitle("bipoly transform sweep")
	page.AddCharts(line)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
