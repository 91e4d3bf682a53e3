package blackhole

// Equations from Luminet (1979). Several equations in the paper contain
// typographical errors; the forms below are the corrected ones:
//   - eqn 5 should read b^2, not b, on the left-hand side
//   - the definition of k on pg 229 needs parentheses around its numerator
//   - in eqn 13 the sqrt(P/Q) factor belongs in the denominator
// All angles are in radians.

import (
	"math"

	"github.com/nickjhughes/luminet-blackhole/pkg/elliptic"
)

// Inclinations closer to face-on than this are treated as exactly face-on,
// where gamma degenerates to pi/2 for every alpha.
const inclinationTolerance = 1e-5

// apsisQ computes Q from the periastron P (pg 229).
func apsisQ(periastron, mass float64) float64 {
	return math.Sqrt((periastron - 2*mass) * (periastron + 6*mass))
}

// ImpactParameterFromPeriastron converts a periastron distance to the
// photon's apparent impact parameter (eqn 5).
func ImpactParameterFromPeriastron(periastron, mass float64) float64 {
	return math.Sqrt(periastron * periastron * periastron / (periastron - 2*mass))
}

// modulus computes the parameter m = k^2 of the elliptic integral (eqn 12).
func modulus(periastron, mass, q float64) float64 {
	return (q - periastron + 6*mass) / (2 * q)
}

// zetaInf computes the amplitude zeta_inf of the elliptic integral (eqn 12).
func zetaInf(periastron, mass, q float64) float64 {
	return math.Asin(math.Sqrt((q - periastron + 2*mass) / (q - periastron + 6*mass)))
}

// cosGamma computes the cosine of the angle gamma between the emission point
// and the line of sight, projected onto the disk plane (eqn 10).
func cosGamma(alpha, inclination float64) float64 {
	if inclination < inclinationTolerance {
		return 0
	}
	ca := math.Cos(alpha)
	cot := 1 / math.Tan(inclination)
	return ca / math.Sqrt(ca*ca+cot*cot)
}

// oneOverRadius evaluates the reciprocal of the emission radius reached by a
// photon with the given periastron, observed at plate angle alpha after
// winding `order` times around the hole (eqn 13).
func oneOverRadius(periastron, alpha, mass, inclination float64, order int) (float64, error) {
	q := apsisQ(periastron, mass)
	m := modulus(periastron, mass, q)
	fInf, err := elliptic.F(zetaInf(periastron, mass, q), m)
	if err != nil {
		return 0, err
	}
	gamma := math.Acos(cosGamma(alpha, inclination))

	var arg float64
	if order == 0 {
		arg = gamma/(2*math.Sqrt(periastron/q)) + fInf
	} else {
		k, err := elliptic.K(m)
		if err != nil {
			return 0, err
		}
		arg = (gamma-2*float64(order)*math.Pi)/(2*math.Sqrt(periastron/q)) - fInf + 2*k
	}
	sn, err := elliptic.SN(arg, m)
	if err != nil {
		return 0, err
	}

	return -(q-periastron+2*mass)/(4*mass*periastron) +
		(q-periastron+6*mass)/(4*mass*periastron)*sn*sn, nil
}

// radiusResidual is zero when the supplied periastron is the true periastron
// of a photon emitted at the given radius. It is the function whose root the
// periastron solver brackets.
func radiusResidual(radius, periastron, alpha, mass, inclination float64, order int) (float64, error) {
	oor, err := oneOverRadius(periastron, alpha, mass, inclination, order)
	if err != nil {
		return 0, err
	}
	return 1 - radius*oor, nil
}

// NewtonianEllipse returns the impact parameter an emission radius would map
// to if light travelled in straight lines: isoradials degenerate to ellipses
// in the Newtonian limit. Used as a fallback when plotting curves for which
// the relativistic solve finds no root.
func NewtonianEllipse(radius, alpha, inclination float64) float64 {
	gamma := math.Acos(cosGamma(alpha, inclination))
	return radius * math.Sin(gamma)
}
