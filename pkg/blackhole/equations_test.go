package blackhole

import (
	"math"
	"testing"
)

func TestImpactParameterAtPhotonSphere(t *testing.T) {
	// A periastron at the photon sphere (3M) maps to the critical impact
	// parameter 3*sqrt(3)*M.
	got := ImpactParameterFromPeriastron(3, 1)
	want := 3 * math.Sqrt(3)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("b(P=3M) = %v, want %v", got, want)
	}
}

func TestCosGamma(t *testing.T) {
	incl := 80 * math.Pi / 180
	// At alpha = 0 the projection reduces to cos(gamma) = sin(i).
	got := cosGamma(0, incl)
	want := math.Sin(incl)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("cosGamma(0, 80deg) = %v, want sin(i) = %v", got, want)
	}
	// At alpha = pi/2 the emission point sits on the projected major axis
	// and gamma is a right angle.
	if g := cosGamma(math.Pi/2, incl); math.Abs(g) > 1e-12 {
		t.Errorf("cosGamma(pi/2, 80deg) = %v, want 0", g)
	}
	// Face-on guard.
	if g := cosGamma(0.3, 0); g != 0 {
		t.Errorf("cosGamma at zero inclination = %v, want 0", g)
	}
}

func TestGeometryMirrorSymmetry(t *testing.T) {
	// The bending geometry depends on alpha only through cos(alpha), so the
	// apparent image is mirror symmetric under alpha -> -alpha.
	bh := Default()
	cfg := DefaultSolverConfig()
	incl := 75 * math.Pi / 180
	for _, alpha := range []float64{0.3, 1.1, 2.5} {
		for order := 0; order <= 1; order++ {
			a := bh.SolvePeriastron(10, incl, alpha, order, cfg)
			b := bh.SolvePeriastron(10, incl, 2*math.Pi-alpha, order, cfg)
			if a.Outcome != b.Outcome {
				t.Fatalf("order %d alpha %v: outcomes differ: %v vs %v", order, alpha, a.Outcome, b.Outcome)
			}
			if a.Outcome == NoSolution {
				continue
			}
			if math.Abs(a.ImpactParameter-b.ImpactParameter) > 1e-5 {
				t.Errorf("order %d: b(%v) = %v, b(-alpha) = %v, want equal",
					order, alpha, a.ImpactParameter, b.ImpactParameter)
			}
		}
	}
}

func TestRedshiftDopplerIsOdd(t *testing.T) {
	// The Doppler part of 1+z is odd in alpha: averaging over mirrored
	// angles leaves the pure gravitational factor.
	bh := Default()
	incl := 80 * math.Pi / 180
	radius, b := 10.0, 7.5
	for _, alpha := range []float64{0.2, 1.0, 2.7} {
		sum := bh.RedshiftFactor(radius, alpha, incl, b) + bh.RedshiftFactor(radius, -alpha, incl, b)
		want := 2 / math.Sqrt(1-3*bh.Mass/radius)
		if math.Abs(sum-want) > 1e-12 {
			t.Errorf("alpha %v: (1+z)(a)+(1+z)(-a) = %v, want %v", alpha, sum, want)
		}
	}
}

func TestIntrinsicFluxProfile(t *testing.T) {
	bh := Default()

	// Zero at the inner edge and outside the disk bounds.
	if f := bh.IntrinsicFlux(bh.DiskInnerEdge()); math.Abs(f) > 1e-15 {
		t.Errorf("flux at inner edge = %v, want 0", f)
	}
	if f := bh.IntrinsicFlux(5); f != 0 {
		t.Errorf("flux inside inner edge = %v, want 0", f)
	}
	if f := bh.IntrinsicFlux(51); f != 0 {
		t.Errorf("flux outside outer edge = %v, want 0", f)
	}

	// Positive everywhere in the disk interior.
	for r := 6.5; r < 50; r += 0.5 {
		if f := bh.IntrinsicFlux(r); f <= 0 {
			t.Errorf("flux at r=%v is %v, want > 0", r, f)
		}
	}
}

func TestObservedFluxBlueshiftedSideBrighter(t *testing.T) {
	// sin(alpha) < 0 is the approaching side of the disk: smaller 1+z,
	// stronger beamed flux.
	bh := Default()
	cfg := DefaultSolverConfig()
	incl := 80 * math.Pi / 180
	radius := 8.0

	approaching := bh.SolvePeriastron(radius, incl, -math.Pi/2, 0, cfg)
	receding := bh.SolvePeriastron(radius, incl, math.Pi/2, 0, cfg)
	if approaching.Outcome != Converged || receding.Outcome != Converged {
		t.Fatalf("expected converged solutions, got %v and %v", approaching.Outcome, receding.Outcome)
	}

	fApproaching := bh.ObservedFlux(radius, -math.Pi/2, incl, approaching.ImpactParameter)
	fReceding := bh.ObservedFlux(radius, math.Pi/2, incl, receding.ImpactParameter)
	if fApproaching <= fReceding {
		t.Errorf("approaching side flux %v should exceed receding side flux %v", fApproaching, fReceding)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(0, 1e-7, 50); err == nil {
		t.Error("zero mass should be rejected")
	}
	if _, err := New(1, -1, 50); err == nil {
		t.Error("negative accretion rate should be rejected")
	}
	if _, err := New(1, 1e-7, 5); err == nil {
		t.Error("disk outer edge inside the ISCO should be rejected")
	}
	if _, err := New(1, 1e-7, 50); err != nil {
		t.Errorf("valid parameters rejected: %v", err)
	}
}
