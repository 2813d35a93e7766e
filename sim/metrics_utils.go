// sim/metrics_utils.go
package sim

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// WinRate returns wins / trials * 100. Zero trials yields 0.
func WinRate(wins, trials int64) float64 {
	if trials <= 0 {
		return 0
	}
	return float64(wins) / float64(trials) * 100
}

// RoundTo rounds the exact binary value of v to the given number of decimal
// digits. Exact ties go to the even digit, so RoundTo(1.5625, 3) is 1.562.
func RoundTo(v float64, digits int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', digits, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// FormatPercent renders a percentage rounded to 3 decimals in its shortest
// form, always keeping one fractional digit: 50.0, 33.3, 66.667.
func FormatPercent(pct float64) string {
	s := strconv.FormatFloat(RoundTo(pct, 3), 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// TheoryRates are the exact win probabilities in percent.
type TheoryRates struct {
	Stay   float64
	Switch float64
}

// Theoretical returns the exact stay and switch win rates for cfg:
// stay = 1/N, switch = (N-1)/N * 1/(N-K-1).
func Theoretical(cfg Config) TheoryRates {
	n := float64(cfg.NumDoors)
	candidates := float64(cfg.SwitchCandidates())
	if n <= 0 || candidates <= 0 {
		return TheoryRates{}
	}
	return TheoryRates{
		Stay:   100 / n,
		Switch: 100 * (n - 1) / (n * candidates),
	}
}

// WilsonInterval returns the Wilson score interval, in percent, for a
// binomial proportion of wins out of trials at the given confidence level
// (e.g. 0.95). Degenerate inputs yield [0, 0].
func WilsonInterval(wins, trials int64, level float64) (lo, hi float64) {
	if trials <= 0 || level <= 0 || level >= 1 {
		return 0, 0
	}
	z := distuv.UnitNormal.Quantile(1 - (1-level)/2)
	n := float64(trials)
	p := float64(wins) / n
	z2 := z * z
	denom := 1 + z2/n
	center := (p + z2/(2*n)) / denom
	half := z / denom * math.Sqrt(p*(1-p)/n+z2/(4*n*n))
	return math.Max(0, center-half) * 100, math.Min(1, center+half) * 100
}
