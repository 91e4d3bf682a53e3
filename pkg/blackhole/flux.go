package blackhole

import "math"

// IntrinsicFlux returns the disk's locally emitted bolometric flux F_s at
// the given radius (eqn 15), the standard thin-disk profile. It is exactly
// zero at the inner edge and outside the disk's physical bounds.
func (bh *BlackHole) IntrinsicFlux(radius float64) float64 {
	if radius < bh.DiskInnerEdge() || radius > bh.DiskOuterEdge() {
		return 0
	}
	rs := radius / bh.Mass
	sqrt3 := math.Sqrt(3)
	sqrt6 := math.Sqrt(6)
	sqrtRS := math.Sqrt(rs)
	logArg := ((sqrtRS + sqrt3) * (sqrt6 - sqrt3)) / ((sqrtRS - sqrt3) * (sqrt6 + sqrt3))
	return (3 * bh.Mass * bh.AccretionRate / (8 * math.Pi)) *
		(1 / ((rs - 3) * math.Pow(rs, 2.5))) *
		(sqrtRS - sqrt6 + sqrt3/3*math.Log10(logArg))
}

// RedshiftFactor returns 1+z for a photon emitted at the given disk radius
// and position angle, combining the gravitational redshift with the Doppler
// shift of the disk's orbital motion (eqn 19).
func (bh *BlackHole) RedshiftFactor(radius, alpha, inclination, impactParameter float64) float64 {
	return (1 + math.Sqrt(bh.Mass/(radius*radius*radius))*impactParameter*math.Sin(inclination)*math.Sin(alpha)) /
		math.Sqrt(1-3*bh.Mass/radius)
}

// ObservedFlux returns the flux received by the distant observer: the
// intrinsic flux corrected for redshift and relativistic beaming,
// F_o = F_s / (1+z)^4 (pg 233).
func (bh *BlackHole) ObservedFlux(radius, alpha, inclination, impactParameter float64) float64 {
	g := bh.RedshiftFactor(radius, alpha, inclination, impactParameter)
	return bh.IntrinsicFlux(radius) / (g * g * g * g)
}
