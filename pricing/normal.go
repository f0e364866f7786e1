package pricing

import "math"

// Abramowitz & Stegun 26.2.17 coefficients.
const (
	asP  = 0.2316419
	asB1 = 0.319381530
	asB2 = -0.356563782
	asB3 = 1.781477937
	asB4 = -1.821255978
	asB5 = 1.330274429
)

// NormPDF is the standard normal density.
func NormPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// NormCDF is the standard normal cumulative distribution, evaluated with a
// fixed-coefficient rational approximation (absolute error < 7.5e-8).
func NormCDF(x float64) float64 {
	if x < 0 {
		return 1 - NormCDF(-x)
	}
	k := 1 / (1 + asP*x)
	poly := k * (asB1 + k*(asB2+k*(asB3+k*(asB4+k*asB5))))
	return 1 - NormPDF(x)*poly
}
