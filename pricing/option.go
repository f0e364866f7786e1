package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidParameter is returned by Validate for inputs Price cannot handle.
var ErrInvalidParameter = errors.New("invalid pricing parameter")

// OptionType is the right carried by a European option.
type OptionType int

const (
	Call OptionType = iota
	Put
)

func (o OptionType) String() string {
	switch o {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("OptionType(%d)", int(o))
	}
}

// ParseOptionType accepts "call"/"c" and "put"/"p" in any case.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	default:
		return 0, fmt.Errorf("unknown option type %q (supported: call, put)", s)
	}
}

// Validate reports whether Price is defined for the given inputs.
// Price itself does not guard; solver and metadata code call this first.
func Validate(spot, strike, t, vol float64) error {
	switch {
	case spot <= 0:
		return fmt.Errorf("%w: spot must be positive, got %g", ErrInvalidParameter, spot)
	case strike <= 0:
		return fmt.Errorf("%w: strike must be positive, got %g", ErrInvalidParameter, strike)
	case t <= 0:
		return fmt.Errorf("%w: time to expiry must be positive, got %g", ErrInvalidParameter, t)
	case vol <= 0:
		return fmt.Errorf("%w: volatility must be positive, got %g", ErrInvalidParameter, vol)
	}
	return nil
}

func d1d2(spot, strike, rate, t, vol float64) (float64, float64) {
	sqrtT := math.Sqrt(t)
	d1 := (math.Log(spot/strike) + (rate+0.5*vol*vol)*t) / (vol * sqrtT)
	return d1, d1 - vol*sqrtT
}

// Price returns the Black-Scholes premium of a European option with no
// dividend yield. rate and vol are decimals (0.05 = 5%), t is in years.
// vol <= 0 or t <= 0 is undefined; see Validate.
func Price(typ OptionType, spot, strike, rate, t, vol float64) float64 {
	d1, d2 := d1d2(spot, strike, rate, t, vol)
	disc := strike * math.Exp(-rate*t)

	var p float64
	if typ == Call {
		p = spot*NormCDF(d1) - disc*NormCDF(d2)
	} else {
		p = disc*NormCDF(-d2) - spot*NormCDF(-d1)
	}
	// The CDF approximation can leave a tiny negative residue deep out of the money.
	if p < 0 {
		return 0
	}
	return p
}

// Sensitivities holds first and second order Greeks of a single option.
// Theta is per calendar day, Vega per one volatility point.
type Sensitivities struct {
	Delta float64 `json:"delta" yaml:"delta"`
	Gamma float64 `json:"gamma" yaml:"gamma"`
	Theta float64 `json:"theta" yaml:"theta"`
	Vega  float64 `json:"vega" yaml:"vega"`
}

// Add returns s + o scaled by w.
func (s Sensitivities) Add(o Sensitivities, w float64) Sensitivities {
	return Sensitivities{
		Delta: s.Delta + w*o.Delta,
		Gamma: s.Gamma + w*o.Gamma,
		Theta: s.Theta + w*o.Theta,
		Vega:  s.Vega + w*o.Vega,
	}
}

// Greeks computes Black-Scholes sensitivities. Same domain as Price.
func Greeks(typ OptionType, spot, strike, rate, t, vol float64) Sensitivities {
	d1, d2 := d1d2(spot, strike, rate, t, vol)
	sqrtT := math.Sqrt(t)
	pdf := NormPDF(d1)
	disc := strike * math.Exp(-rate*t)

	g := Sensitivities{
		Gamma: pdf / (spot * vol * sqrtT),
		Vega:  spot * pdf * sqrtT / 100,
	}
	decay := -spot * pdf * vol / (2 * sqrtT)
	if typ == Call {
		g.Delta = NormCDF(d1)
		g.Theta = (decay - rate*disc*NormCDF(d2)) / 365
	} else {
		g.Delta = NormCDF(d1) - 1
		g.Theta = (decay + rate*disc*NormCDF(-d2)) / 365
	}
	return g
}
