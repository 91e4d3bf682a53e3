// Package elliptic wraps the incomplete elliptic integrals and the Jacobi
// elliptic sine needed by the photon bending equation. Arguments follow the
// Legendre convention with parameter m = k^2.
package elliptic

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"
)

// maxLandenIterations bounds the descending Landen recurrence in SN. The
// recurrence converges quadratically, so this is never reached for valid m.
const maxLandenIterations = 32

// F returns the incomplete elliptic integral of the first kind F(phi|m).
// The amplitude phi must lie in [0, pi/2] and the parameter m in [0, 1).
func F(phi, m float64) (float64, error) {
	if m < 0 || m >= 1 {
		return 0, fmt.Errorf("elliptic: parameter m = %v outside [0, 1)", m)
	}
	if phi < 0 || phi > math.Pi/2 {
		return 0, fmt.Errorf("elliptic: amplitude phi = %v outside [0, pi/2]", phi)
	}
	return mathext.EllipticF(phi, m), nil
}

// K returns the complete elliptic integral of the first kind K(m) for
// parameter m in [0, 1).
func K(m float64) (float64, error) {
	if m < 0 || m >= 1 {
		return 0, fmt.Errorf("elliptic: parameter m = %v outside [0, 1)", m)
	}
	return mathext.CompleteK(m), nil
}

// SN returns the Jacobi elliptic sine sn(u|m) for parameter m in [0, 1],
// evaluated with the arithmetic-geometric mean and the descending Landen
// transformation (Abramowitz & Stegun 16.4).
func SN(u, m float64) (float64, error) {
	if m < 0 || m > 1 {
		return 0, fmt.Errorf("elliptic: parameter m = %v outside [0, 1]", m)
	}
	if m < 1e-14 {
		return math.Sin(u), nil
	}
	if m > 1-1e-14 {
		return math.Tanh(u), nil
	}

	var a, c [maxLandenIterations + 1]float64
	a[0] = 1
	b := math.Sqrt(1 - m)
	c[0] = math.Sqrt(m)
	n := 0
	for ; n < maxLandenIterations && math.Abs(c[n]) > 1e-16*a[n]; n++ {
		a[n+1] = (a[n] + b) / 2
		c[n+1] = (a[n] - b) / 2
		b = math.Sqrt(a[n] * b)
	}

	phi := float64(uint64(1)<<uint(n)) * a[n] * u
	for i := n; i > 0; i-- {
		phi = (phi + math.Asin(c[i]/a[i]*math.Sin(phi))) / 2
	}
	return math.Sin(phi), nil
}
