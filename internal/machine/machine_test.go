package machine

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/unit"

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

func checkAll(t *testing.T, res *calc.Result, want map[string]float64, rel float64) {
	t.Helper()
	for name, w := range want {
		if got := scalar(t, res, name); !near(got, w, rel) {
			t.Errorf("%s = %v, want %v", name, got, w)
		}
	}
}

func TestStandardSelection(t *testing.T) {
	tests := []struct {
		v       float64
		nearest float64
		atLeast float64
		fits    bool
	}{
		{1.6, 1.5, 2, true},
		{1.75, 1.5, 2, true},
		{1.8, 2, 2, true},
		{0.2, 1, 1, true},
		{50, 50, 50, true},
		{70, 50, 0, false},
	}
	for _, tt := range tests {
		if got := Nearest(standardModules, tt.v); got != tt.nearest {
			t.Errorf("Nearest(%v) = %v, want %v", tt.v, got, tt.nearest)
		}
		got, ok := AtLeast(standardModules, tt.v)
		if ok != tt.fits || got != tt.atLeast {
			t.Errorf("AtLeast(%v) = %v, %v; want %v, %v", tt.v, got, ok, tt.atLeast, tt.fits)
		}
	}

	mods := StandardModules()
	mods[0] = 99
	if standardModules[0] != 1 {
		t.Error("StandardModules must return a copy")
	}
}

func TestGearDesign(t *testing.T) {
	in := DefaultGearInput()
	in.Power, in.Speed, in.Ratio = 10, 1000, 3

	res, err := GearDesign(in)
	if err != nil {
		t.Fatal(err)
	}
	// raw module 1.609 snaps to the nearest standard value, not up
	checkAll(t, res, map[string]float64{
		"module":              1.5,
		"gear_teeth":          60,
		"pinion_diameter":     30,
		"gear_diameter":       90,
		"center_distance":     60,
		"pitch_line_velocity": 1.5707963267948963,
		"tangential_force":    6366.197723675815,
		"beam_strength":       1532.25,
		"wear_strength":       101.25,
		"power_rating":        0.15904312808798327,
	}, 1e-9)

	in.Speed = 0
	if _, err := GearDesign(in); !errors.Is(err, calc.ErrDomain) {
		t.Errorf("zero speed: %v", err)
	}
}

func TestShaftDesign(t *testing.T) {
	in := DefaultShaftInput()
	in.Torque, in.BendingMoment, in.YieldStrength = 500, 800, 400

	res, err := ShaftDesign(in)
	if err != nil {
		t.Fatal(err)
	}
	checkAll(t, res, map[string]float64{
		"equivalent_moment":    1364.505404899519,
		"required_diameter":    0.041113248200364994,
		"actual_diameter":      0.045,
		"maximum_stress":       152.52387296771974,
		"actual_safety_factor": 1.3112701382971579,
	}, 1e-9)

	// fatigue governs by default; an explicit fatigue strength equal to
	// yield leaves the static diameter in charge
	in.FatigueStrength = 400
	res, _ = ShaftDesign(in)
	if v := scalar(t, res, "actual_diameter"); v != 0.035 {
		t.Errorf("static diameter rounds to %v, want 0.035", v)
	}

	in = DefaultShaftInput()
	in.BendingMoment, in.YieldStrength = 1e5, 400
	if _, err := ShaftDesign(in); !errors.Is(err, calc.ErrDomain) {
		t.Errorf("oversize shaft should be a domain error, got %v", err)
	}
}

func TestBeltDesign(t *testing.T) {
	in := BeltInput{Power: 5, DriverSpeed: 1440, DrivenSpeed: 720, CenterDistance: 0.5, Kind: VBelt}
	res, err := BeltDesign(in)
	if err != nil {
		t.Fatal(err)
	}
	checkAll(t, res, map[string]float64{
		"driver_diameter":          0.063,
		"driven_diameter":          0.112,
		"belt_length":              1.2760898571891068,
		"belt_speed":               4.7500880922277675,
		"wrap_angle_driver":        174.38276424615876,
		"wrap_angle_driven":        185.61723575384124,
		"tight_side_tension":       1052.6120574860802,
		"slack_side_tension":       27.538173932522664,
		"number_of_belts_required": 2,
	}, 1e-9)

	in.Kind = FlatBelt
	res, _ = BeltDesign(in)
	if v := scalar(t, res, "slack_side_tension"); !near(v, 422.404763419024, 1e-9) {
		t.Errorf("flat belt slack tension = %v", v)
	}

	in.CenterDistance = 0.01
	if _, err := BeltDesign(in); !errors.Is(err, calc.ErrDomain) {
		t.Errorf("short centers: %v", err)
	}
	if _, err := ParseBeltKind("timing"); !errors.Is(err, calc.ErrInvalidVariant) {
		t.Errorf("unknown belt: %v", err)
	}
}

func TestBearingLife(t *testing.T) {
	tests := []struct {
		reliability float64
		factor      float64
		hours       float64
	}{
		{0.90, 1.00, 11111.111111111111},
		{0.95, 0.62, 6888.888888888889},
		{0.99, 0.21, 2333.333333333333},
	}
	for _, tt := range tests {
		in := DefaultBearingInput()
		in.Load, in.Speed, in.DynamicCapacity = 3000, 1500, 30000
		in.Reliability = tt.reliability

		res, err := BearingLife(in)
		if err != nil {
			t.Fatal(err)
		}
		if v := scalar(t, res, "basic_rating_life"); !near(v, 1000, 1e-12) {
			t.Errorf("L10 = %v", v)
		}
		if v := scalar(t, res, "reliability_factor"); v != tt.factor {
			t.Errorf("a1(%v) = %v", tt.reliability, v)
		}
		if v := scalar(t, res, "life_hours"); !near(v, tt.hours, 1e-9) {
			t.Errorf("hours(%v) = %v", tt.reliability, v)
		}
	}

	in := BearingInput{Load: 3000, Speed: 1500, DynamicCapacity: 30000, Reliability: 0.90, Kind: RollerBearing}
	res, _ := BearingLife(in)
	if v := scalar(t, res, "life_hours"); !near(v, 23938.163222576495, 1e-9) {
		t.Errorf("roller hours = %v", v)
	}

	in.Reliability = 0.97
	_, err := BearingLife(in)
	var ve *calc.VariantError
	if !errors.As(err, &ve) {
		t.Fatalf("untabulated reliability must fail, got %v", err)
	}
	if len(ve.Valid) != 3 {
		t.Errorf("valid levels = %v", ve.Valid)
	}

	for _, c := range []float64{0, -30000} {
		in := BearingInput{Load: 3000, Speed: 1500, DynamicCapacity: c, Reliability: 0.90, Kind: RollerBearing}
		if _, err := BearingLife(in); !errors.Is(err, calc.ErrDomain) {
			t.Errorf("capacity %v: %v", c, err)
		}
	}
}

func TestUnitConversions(t *testing.T) {
	tq, err := driveTorque(kilowatts(10), rpm(1000))
	if err != nil {
		t.Fatal(err)
	}
	if !near(float64(tq), 95.4929658551372, 1e-12) {
		t.Errorf("torque = %v", tq)
	}

	f, err := tangentialPull(kilowatts(10), unit.Velocity(math.Pi/2))
	if err != nil {
		t.Fatal(err)
	}
	if !near(float64(f), 6366.197723675814, 1e-12) {
		t.Errorf("pull = %v", f)
	}

	p, err := transmitted(f, unit.Velocity(math.Pi/2))
	if err != nil {
		t.Fatal(err)
	}
	if !near(float64(p), 10000, 1e-12) {
		t.Errorf("power = %v", p)
	}
}

func TestSpringDesign(t *testing.T) {
	in := DefaultSpringInput()
	in.Load, in.Deflection, in.WireDiameter = 500, 0.02, 0.005

	res, err := SpringDesign(in)
	if err != nil {
		t.Fatal(err)
	}
	checkAll(t, res, map[string]float64{
		"mean_coil_diameter":   0.03,
		"spring_rate":          25000,
		"active_coils":         9.178240740740742,
		"total_coils":          11.178240740740742,
		"free_length":          0.07889120370370371,
		"max_shear_stress":     382735807.14738977,
		"stress_safety_factor": 2.090214673047102,
		"buckling_slenderness": 2.6297067901234574,
	}, 1e-9)
	if risk, _ := res.Flag("buckling_risk"); risk {
		t.Error("slenderness just under 2.63 should not flag buckling")
	}
	if v := WahlFactor(6); !near(v, 1.2525, 1e-12) {
		t.Errorf("Wahl(6) = %v", v)
	}

	in.Deflection = 0.05
	res, _ = SpringDesign(in)
	if risk, _ := res.Flag("buckling_risk"); !risk {
		t.Errorf("slenderness %v should flag buckling", scalar(t, res, "buckling_slenderness"))
	}

	in.SpringIndex = 1
	if _, err := SpringDesign(in); !errors.Is(err, calc.ErrDomain) {
		t.Errorf("index 1: %v", err)
	}
}

func TestPowerScrew(t *testing.T) {
	in := DefaultScrewInput()
	in.Load, in.MeanDiameter, in.Pitch = 10_000, 0.03, 0.006

	res, err := PowerScrew(in)
	if err != nil {
		t.Fatal(err)
	}
	checkAll(t, res, map[string]float64{
		"raising_torque":     60.1161942455894,
		"lowering_torque":    40.55723899946857,
		"efficiency":         15.884732400894345,
		"lead_angle_degrees": 3.6426468877225737,
		"screw_torque":       33.1161942455894,
		"collar_torque":      27,
	}, 1e-9)
	if locking, _ := res.Flag("self_locking"); !locking {
		t.Error("fine-pitch acme screw should self-lock")
	}

	steep := ScrewInput{Load: 1000, MeanDiameter: 0.02, Pitch: 0.02, ThreadFriction: 0.05}
	res, _ = PowerScrew(steep)
	if locking, _ := res.Flag("self_locking"); locking {
		t.Error("steep low-friction screw should overhaul")
	}
	if v := scalar(t, res, "lowering_torque"); !near(v, -2.623520342522527, 1e-9) {
		t.Errorf("overhauling lowering torque = %v", v)
	}
}
