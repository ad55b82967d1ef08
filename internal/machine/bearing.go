package machine

import (
	"fmt"
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

type BearingKind int

const (
	BallBearing BearingKind = iota
	RollerBearing
)

var bearingKindNames = []string{"ball", "roller"}

func (k BearingKind) String() string { return calc.VariantName(k, bearingKindNames) }

func ParseBearingKind(s string) (BearingKind, error) {
	return calc.ParseVariant[BearingKind]("bearing type", s, bearingKindNames)
}

func BearingKinds() []string { return append([]string(nil), bearingKindNames...) }

// loadLifeExponent is 3 for point contact and 10/3 for line contact.
func (k BearingKind) loadLifeExponent() float64 {
	if k == RollerBearing {
		return 10.0 / 3.0
	}
	return 3
}

// Reliability is one of the tabulated survival probabilities.
type Reliability int

const (
	Reliability90 Reliability = iota
	Reliability95
	Reliability99
)

var (
	reliabilityNames   = []string{"0.90", "0.95", "0.99"}
	reliabilityLevels  = []float64{0.90, 0.95, 0.99}
	reliabilityFactors = []float64{1.00, 0.62, 0.21}
)

func (r Reliability) String() string { return calc.VariantName(r, reliabilityNames) }

func (r Reliability) Level() float64 { return reliabilityLevels[r] }

// Factor is the life adjustment a1 for r.
func (r Reliability) Factor() float64 { return reliabilityFactors[r] }

func Reliabilities() []string { return append([]string(nil), reliabilityNames...) }

// ReliabilityOf matches p against the table. Untabulated levels fail.
func ReliabilityOf(p float64) (Reliability, error) {
	for i, level := range reliabilityLevels {
		if math.Abs(level-p) <= 1e-9 {
			return Reliability(i), nil
		}
	}
	return -1, &calc.VariantError{
		Kind:  "reliability",
		Got:   fmt.Sprintf("%g", p),
		Valid: Reliabilities(),
	}
}

type BearingInput struct {
	Load            float64     `mapstructure:"load"`  // N
	Speed           float64     `mapstructure:"speed"` // rpm
	DynamicCapacity float64     `mapstructure:"dynamic_capacity"`
	Reliability     float64     `mapstructure:"reliability"`
	Kind            BearingKind `mapstructure:"application"`
}

func DefaultBearingInput() BearingInput {
	return BearingInput{Reliability: 0.90, Kind: BallBearing}
}

// BearingLife computes L10 = (C/P)^p in millions of revolutions and the
// reliability-adjusted life in hours. Material and operating factors are 1.
func BearingLife(in BearingInput) (*calc.Result, error) {
	const op = "bearing life"
	if err := calc.CheckVariant("bearing type", in.Kind, bearingKindNames); err != nil {
		return nil, err
	}
	rel, err := ReliabilityOf(in.Reliability)
	if err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "load", in.Load); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "speed", in.Speed); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "dynamic capacity", in.DynamicCapacity); err != nil {
		return nil, err
	}

	l10 := math.Pow(in.DynamicCapacity/in.Load, in.Kind.loadLifeExponent())
	lna := rel.Factor() * l10

	return calc.NewResult().
		Set("basic_rating_life", l10).
		Set("modified_rating_life", lna).
		Set("life_hours", 1e6/(60*in.Speed)*lna).
		Set("dynamic_equivalent_load", in.Load).
		Set("reliability_factor", rel.Factor()), nil
}
