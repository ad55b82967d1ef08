package stress

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/mechsolver/internal/calc"
)

func scalar(t *testing.T, r *calc.Result, name string) float64 {
	t.Helper()
	v, ok := r.Scalar(name)
	if !ok {
		t.Fatalf("missing scalar %q in %v", name, r.Names())
	}
	return v
}

func near(a, b, rel float64) bool {
	if b == 0 {
		return math.Abs(a) <= rel
	}
	return math.Abs(a-b) <= rel*math.Abs(b)
}

func TestAxial(t *testing.T) {
	res, err := Hooke(10_000, 1e-4, 200e9)
	if err != nil {
		t.Fatal(err)
	}
	if v := scalar(t, res, "stress"); !near(v, 1e8, 1e-12) {
		t.Errorf("stress = %v", v)
	}
	if v := scalar(t, res, "strain"); !near(v, 5e-4, 1e-12) {
		t.Errorf("strain = %v", v)
	}

	res, _ = StrainFromElongation(0.002, 2)
	if v := scalar(t, res, "strain"); v != 0.001 {
		t.Errorf("strain = %v", v)
	}
	res, _ = ElasticModulus(2e8, 0.001)
	if v := scalar(t, res, "elastic_modulus"); !near(v, 2e11, 1e-12) {
		t.Errorf("elastic_modulus = %v", v)
	}

	zeroDivisors := []struct {
		name string
		fn   func() (*calc.Result, error)
	}{
		{"normal stress", func() (*calc.Result, error) { return NormalStress(1, 0) }},
		{"shear stress", func() (*calc.Result, error) { return ShearStress(1, 0) }},
		{"strain", func() (*calc.Result, error) { return Strain(1, 0) }},
		{"hooke", func() (*calc.Result, error) { return Hooke(1, 1, 0) }},
		{"elongation", func() (*calc.Result, error) { return StrainFromElongation(1, 0) }},
		{"modulus", func() (*calc.Result, error) { return ElasticModulus(1, 0) }},
		{"bending", func() (*calc.Result, error) { return BendingStress(1, 1, 0) }},
		{"torsion", func() (*calc.Result, error) { return Torsion(1, 1, 0) }},
	}
	for _, tt := range zeroDivisors {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.fn(); !errors.Is(err, calc.ErrDomain) {
				t.Errorf("expected domain error, got %v", err)
			}
		})
	}
}

func TestBeamDeflection(t *testing.T) {
	tests := []struct {
		pattern LoadPattern
		defl    float64
		moment  float64
	}{
		{PointCenter, 1.0 / 48, 1000 * 2.0 / 4},
		{PointEnd, 1.0 / 3, 1000 * 2.0},
		{Uniform, 5.0 / 384, 1000 * 4.0 / 8},
	}

	for _, tt := range tests {
		t.Run(tt.pattern.String(), func(t *testing.T) {
			res, err := BeamDeflection(tt.pattern, 1000, 2, 200e9, 1e-6)
			if err != nil {
				t.Fatal(err)
			}
			want := tt.defl * 1000 * 8 / (200e9 * 1e-6)
			if v := scalar(t, res, "max_deflection"); !near(v, want, 1e-12) {
				t.Errorf("max_deflection = %v, want %v", v, want)
			}
			if v := scalar(t, res, "max_moment"); v != tt.moment {
				t.Errorf("max_moment = %v, want %v", v, tt.moment)
			}
		})
	}

	if _, err := ParseLoadPattern("cantilever_moment"); !errors.Is(err, calc.ErrInvalidVariant) {
		t.Errorf("expected invalid variant, got %v", err)
	}
	if _, err := BeamDeflection(LoadPattern(9), 1, 1, 1, 1); !errors.Is(err, calc.ErrInvalidVariant) {
		t.Errorf("out of range pattern: got %v", err)
	}
}

func TestCombinedStress(t *testing.T) {
	res, _ := CombinedStress(80e6, 30e6)
	if v := scalar(t, res, "principal_stress_1"); !near(v, 90e6, 1e-12) {
		t.Errorf("principal_stress_1 = %v", v)
	}
	if v := scalar(t, res, "principal_stress_2"); !near(v, -10e6, 1e-12) {
		t.Errorf("principal_stress_2 = %v", v)
	}
	if v := scalar(t, res, "max_shear_stress"); !near(v, 50e6, 1e-12) {
		t.Errorf("max_shear_stress = %v", v)
	}
	want := math.Atan2(60e6, 80e6) * 180 / math.Pi / 2
	if v := scalar(t, res, "angle_principal"); !near(v, want, 1e-12) {
		t.Errorf("angle_principal = %v", v)
	}

	res, _ = CombinedStress(0, 10)
	if v := scalar(t, res, "angle_principal"); !near(v, 45, 1e-12) {
		t.Errorf("pure shear angle = %v, want 45", v)
	}
}

func TestPlaneStress(t *testing.T) {
	res, _ := PlaneStress(100, 0, 0)
	if v := scalar(t, res, "von_mises_stress"); v != 100 {
		t.Errorf("uniaxial von Mises = %v", v)
	}
	res, _ = PlaneStress(0, 0, 10)
	if v := scalar(t, res, "von_mises_stress"); !near(v, 10*math.Sqrt(3), 1e-12) {
		t.Errorf("pure shear von Mises = %v", v)
	}
	if v := scalar(t, res, "sigma_1"); v != 10 {
		t.Errorf("sigma_1 = %v", v)
	}
}

func TestFatigue(t *testing.T) {
	in := DefaultFatigueInput()
	in.MaxStress, in.MinStress = 300e6, -100e6
	in.UltimateStrength, in.EnduranceLimit = 600e6, 250e6

	res, err := Fatigue(in)
	if err != nil {
		t.Fatal(err)
	}
	if v := scalar(t, res, "modified_endurance_limit"); !near(v, 191733750, 1e-9) {
		t.Errorf("Se = %v", v)
	}
	if v := scalar(t, res, "safety_factor"); !near(v, 0.826596682016226, 1e-9) {
		t.Errorf("safety_factor = %v", v)
	}
	if inf, _ := res.Flag("infinite_life"); inf {
		t.Error("expected finite life")
	}
	if v := scalar(t, res, "cycles_to_failure"); !near(v, 0.608605856010521, 1e-9) {
		t.Errorf("cycles_to_failure = %v", v)
	}
}

func TestFatigueInfiniteLife(t *testing.T) {
	in := DefaultFatigueInput()
	in.MaxStress, in.MinStress = 200e6, 0
	in.UltimateStrength, in.EnduranceLimit = 600e6, 300e6

	res, err := Fatigue(in)
	if err != nil {
		t.Fatal(err)
	}
	if v := scalar(t, res, "safety_factor"); !near(v, 1.6630712322479568, 1e-9) {
		t.Errorf("safety_factor = %v", v)
	}
	if inf, ok := res.Flag("infinite_life"); !ok || !inf {
		t.Error("expected infinite_life flag")
	}
	if l, _ := res.Label("life"); l != LifeInfinite {
		t.Errorf("life = %q", l)
	}
	if res.Has("cycles_to_failure") {
		t.Error("infinite life must not carry a cycle count")
	}
}

func TestFatigueZeroAmplitude(t *testing.T) {
	for _, mean := range []float64{100e6, 300e6, 500e6} {
		in := DefaultFatigueInput()
		in.MaxStress, in.MinStress = mean, mean
		in.UltimateStrength, in.EnduranceLimit = 600e6, 250e6

		res, err := Fatigue(in)
		if err != nil {
			t.Fatal(err)
		}
		if v := scalar(t, res, "safety_factor"); !near(v, 600e6/mean, 1e-12) {
			t.Errorf("mean %v: safety_factor = %v, want Su/mean", mean, v)
		}
	}

	// changing the endurance limit must not move the zero-amplitude result
	a := DefaultFatigueInput()
	a.MaxStress, a.MinStress, a.UltimateStrength, a.EnduranceLimit = 200e6, 200e6, 600e6, 100e6
	b := a
	b.EnduranceLimit = 400e6
	ra, _ := Fatigue(a)
	rb, _ := Fatigue(b)
	if scalar(t, ra, "safety_factor") != scalar(t, rb, "safety_factor") {
		t.Error("zero-amplitude safety factor depends on Se")
	}

	in := DefaultFatigueInput()
	in.UltimateStrength, in.EnduranceLimit = 600e6, 250e6
	if _, err := Fatigue(in); !errors.Is(err, calc.ErrDomain) {
		t.Errorf("unloaded member: expected domain error, got %v", err)
	}
}

func TestFatigueEnduranceScaling(t *testing.T) {
	base := FatigueInput{MaxStress: 100e6, UltimateStrength: 600e6, EnduranceLimit: 300e6,
		SurfaceFactor: 0.8, SizeFactor: 0.9, ReliabilityFactor: 0.85}
	r0, _ := Fatigue(base)
	se0 := scalar(t, r0, "modified_endurance_limit")

	mods := []func(*FatigueInput){
		func(in *FatigueInput) { in.SurfaceFactor *= 0.5 },
		func(in *FatigueInput) { in.SizeFactor *= 0.5 },
		func(in *FatigueInput) { in.ReliabilityFactor *= 0.5 },
	}
	for i, mod := range mods {
		in := base
		mod(&in)
		r, _ := Fatigue(in)
		if v := scalar(t, r, "modified_endurance_limit"); !near(v, se0/2, 1e-12) {
			t.Errorf("factor %d: Se = %v, want %v", i, v, se0/2)
		}
	}
}

func TestCompositeLamina(t *testing.T) {
	tests := []struct {
		theta           float64
		ex, ey, gxy, nu float64
	}{
		{0, 140e9, 10e9, 5e9, 0.3},
		{90, 10e9, 140e9, 5e9, 0.02142857142857143},
		{45, 13207547169.811323, 13207547169.811321, 8974358974.358974, 0.3207547169811321},
		{30, 21292775665.399242, 10707456978.967493, 7486631016.042779, 0.39923954372623577},
	}

	for _, tt := range tests {
		res, err := CompositeLamina(140e9, 10e9, 0.3, 5e9, tt.theta)
		if err != nil {
			t.Fatal(err)
		}
		for name, want := range map[string]float64{"Ex": tt.ex, "Ey": tt.ey, "Gxy": tt.gxy, "nuxy": tt.nu} {
			if v := scalar(t, res, name); !near(v, want, 1e-9) {
				t.Errorf("theta %v: %s = %v, want %v", tt.theta, name, v, want)
			}
		}
	}

	if _, err := CompositeLamina(0, 10e9, 0.3, 5e9, 0); !errors.Is(err, calc.ErrDomain) {
		t.Errorf("zero E1: got %v", err)
	}
}

func TestPressureVessel(t *testing.T) {
	res, err := PressureVessel(ThinCylinder, 2e6, 0.5, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if v := scalar(t, res, "hoop_stress"); !near(v, 100e6, 1e-12) {
		t.Errorf("hoop = %v", v)
	}
	if v := scalar(t, res, "longitudinal_stress"); !near(v, 50e6, 1e-12) {
		t.Errorf("longitudinal = %v", v)
	}
	if v := scalar(t, res, "von_mises_stress"); !near(v, math.Sqrt(0.75)*100e6, 1e-12) {
		t.Errorf("von Mises = %v", v)
	}

	res, _ = PressureVessel(ThickCylinder, 10e6, 0.1, 0.1)
	if v := scalar(t, res, "hoop_stress_inner"); !near(v, 10e6*5.0/3.0, 1e-12) {
		t.Errorf("hoop inner = %v", v)
	}
	if v := scalar(t, res, "hoop_stress_outer"); !near(v, 10e6*2.0/3.0, 1e-12) {
		t.Errorf("hoop outer = %v", v)
	}
	if v := scalar(t, res, "radial_stress_inner"); v != -10e6 {
		t.Errorf("radial inner = %v", v)
	}

	for _, p := range []float64{1e5, 2e6, 7.3e7} {
		res, _ := PressureVessel(Sphere, p, 0.37, 0.013)
		if scalar(t, res, "hoop_stress") != scalar(t, res, "von_mises_stress") {
			t.Errorf("sphere p=%v: hoop and von Mises differ", p)
		}
	}

	if _, err := PressureVessel(Sphere, 1e6, 1, 0); !errors.Is(err, calc.ErrDomain) {
		t.Errorf("zero thickness: got %v", err)
	}

	_, err = ParseVesselKind("torus")
	if !errors.Is(err, calc.ErrInvalidVariant) {
		t.Fatalf("expected invalid variant, got %v", err)
	}
	for _, name := range VesselKinds() {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not list %s", err, name)
		}
	}
}

func TestThermalStress(t *testing.T) {
	res, _ := ThermalStress(FullConstraint, 100, 12e-6, 200e9)
	if v := scalar(t, res, "thermal_stress"); !near(v, -240e6, 1e-12) {
		t.Errorf("full stress = %v", v)
	}
	if v := scalar(t, res, "thermal_strain"); v != 0 {
		t.Errorf("full strain = %v", v)
	}

	res, _ = ThermalStress(PartialConstraint, 100, 12e-6, 200e9)
	if v := scalar(t, res, "thermal_stress"); !near(v, -120e6, 1e-12) {
		t.Errorf("partial stress = %v", v)
	}
	if v := scalar(t, res, "thermal_strain"); !near(v, 6e-4, 1e-12) {
		t.Errorf("partial strain = %v", v)
	}

	if _, err := ParseConstraint("none"); !errors.Is(err, calc.ErrInvalidVariant) {
		t.Errorf("expected invalid variant, got %v", err)
	}
}
