package calc

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestResult_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		res   *Result
		valid bool
	}{
		{"empty", NewResult(), true},
		{"normal", NewResult().Set("a", 1).SetSeries("s", []float64{1, 2}), true},
		{"flag and label", NewResult().SetFlag("f", true).SetLabel("l", "x"), true},
		{"with NaN", NewResult().Set("a", math.NaN()), false},
		{"with +Inf", NewResult().Set("a", math.Inf(1)), false},
		{"series with -Inf", NewResult().SetSeries("s", []float64{0, math.Inf(-1)}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestResult_Order(t *testing.T) {
	r := NewResult().Set("zeta", 1).Set("alpha", 2).SetFlag("mid", true)
	r.Set("zeta", 3)

	names := r.Names()
	want := []string{"zeta", "alpha", "mid"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	if v, _ := r.Scalar("zeta"); v != 3 {
		t.Errorf("overwrite lost: zeta = %v", v)
	}

	data, err := r.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"zeta":3,"alpha":2,"mid":true}` {
		t.Errorf("unexpected json: %s", data)
	}
}

func TestResult_TypedGetters(t *testing.T) {
	r := NewResult().Set("x", 1.5).SetSeries("xs", []float64{1, 2}).SetLabel("state", "superheated")

	if _, ok := r.Series("x"); ok {
		t.Error("scalar returned as series")
	}
	if _, ok := r.Scalar("xs"); ok {
		t.Error("series returned as scalar")
	}
	if l, ok := r.Label("state"); !ok || l != "superheated" {
		t.Errorf("label = %q, %v", l, ok)
	}
	if _, ok := r.Scalar("missing"); ok {
		t.Error("missing key reported present")
	}

	src := []float64{1, 2, 3}
	r.SetSeries("copy", src)
	src[0] = 99
	if s, _ := r.Series("copy"); s[0] != 1 {
		t.Error("SetSeries did not copy its input")
	}
}

func TestKnown(t *testing.T) {
	if CountKnown(Given(1), Unknown, Given(0)) != 2 {
		t.Error("Given(0) must count as known")
	}
	if Unknown.Set {
		t.Error("Unknown must not be set")
	}
}

type testMode int

const (
	modeA testMode = iota
	modeB
)

var testModeNames = []string{"a", "b"}

func TestParseVariant(t *testing.T) {
	m, err := ParseVariant[testMode]("mode", "b", testModeNames)
	if err != nil || m != modeB {
		t.Fatalf("ParseVariant(b) = %v, %v", m, err)
	}

	_, err = ParseVariant[testMode]("mode", "c", testModeNames)
	if !errors.Is(err, ErrInvalidVariant) {
		t.Fatalf("expected ErrInvalidVariant, got %v", err)
	}
	var ve *VariantError
	if !errors.As(err, &ve) {
		t.Fatal("expected *VariantError")
	}
	if !strings.Contains(err.Error(), "a, b") {
		t.Errorf("error does not enumerate options: %s", err)
	}

	if VariantName(modeA, testModeNames) != "a" {
		t.Error("VariantName mismatch")
	}
	if err := CheckVariant("mode", testMode(7), testModeNames); err == nil {
		t.Error("out of range variant accepted")
	}
}

func TestErrorClasses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"domain", Domainf("op", "bad %d", 1), ErrDomain},
		{"non zero", NonZero("op", "area", 0), ErrDomain},
		{"positive", Positive("op", "t", -1), ErrDomain},
		{"combination", &CombinationError{Op: "op", Reason: "exactly three required"}, ErrInvalidCombination},
		{"lookup", &LookupError{Table: "material", Key: "X"}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Errorf("%v does not unwrap to %v", tt.err, tt.want)
			}
		})
	}

	if NonZero("op", "x", 1e-300) != nil {
		t.Error("tiny non-zero rejected")
	}
}
