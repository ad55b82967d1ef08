package fluids

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

type ChannelKind int

// Only rectangular sections are solved. Any other name fails to parse.
const (
	Rectangular ChannelKind = iota
)

var channelKindNames = []string{"rectangular"}

func (k ChannelKind) String() string { return calc.VariantName(k, channelKindNames) }

func ParseChannelKind(s string) (ChannelKind, error) {
	return calc.ParseVariant[ChannelKind]("channel type", s, channelKindNames)
}

func ChannelKinds() []string { return append([]string(nil), channelKindNames...) }

const (
	Subcritical   = "subcritical"
	Supercritical = "supercritical"
)

// FlowRegime classifies a Froude number.
func FlowRegime(froude float64) string {
	if froude < 1 {
		return Subcritical
	}
	return Supercritical
}

// OpenChannel applies Manning's equation V = (1/n)·R^(2/3)·√S.
func OpenChannel(kind ChannelKind, width, depth, slope, manningN float64) (*calc.Result, error) {
	const op = "open channel"
	if err := calc.CheckVariant("channel type", kind, channelKindNames); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "flow depth", depth); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "channel width", width); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "manning n", manningN); err != nil {
		return nil, err
	}
	if err := calc.NonNegative(op, "slope", slope); err != nil {
		return nil, err
	}

	area := width * depth
	radius := area / (width + 2*depth)
	v := math.Pow(radius, 2.0/3.0) * math.Sqrt(slope) / manningN
	fr := v / math.Sqrt(Gravity*depth)

	return calc.NewResult().
		Set("flow_rate", v*area).
		Set("velocity", v).
		Set("hydraulic_radius", radius).
		Set("froude_number", fr).
		SetLabel("flow_type", FlowRegime(fr)), nil
}

type WeirKind int

const (
	RectangularWeir WeirKind = iota
	VNotchWeir
)

var weirKindNames = []string{"rectangular", "v-notch"}

func (k WeirKind) String() string { return calc.VariantName(k, weirKindNames) }

func ParseWeirKind(s string) (WeirKind, error) {
	return calc.ParseVariant[WeirKind]("weir type", s, weirKindNames)
}

func WeirKinds() []string { return append([]string(nil), weirKindNames...) }

// WeirFlow uses the Francis formula for a rectangular crest and the Thomson
// formula for a 90° v-notch. Weir height does not enter either discharge.
func WeirFlow(kind WeirKind, height, width, head float64) (*calc.Result, error) {
	if err := calc.NonNegative("weir flow", "head", head); err != nil {
		return nil, err
	}
	root2g := math.Sqrt(2 * Gravity)

	switch kind {
	case RectangularWeir:
		const cd = 0.61
		return calc.NewResult().
			Set("flow_rate", 2.0/3.0*cd*width*root2g*math.Pow(head, 1.5)).
			Set("discharge_coefficient", cd), nil
	case VNotchWeir:
		const cd = 0.59
		halfAngle := math.Pi / 4
		return calc.NewResult().
			Set("flow_rate", 8.0/15.0*cd*math.Tan(halfAngle)*root2g*math.Pow(head, 2.5)).
			Set("discharge_coefficient", cd), nil
	}
	return nil, calc.CheckVariant("weir type", kind, weirKindNames)
}

// WaveProperties solves linear dispersion ω² = g·k·tanh(k·h).
func WaveProperties(wavelength, depth float64) (*calc.Result, error) {
	const op = "wave properties"
	if err := calc.Positive(op, "wavelength", wavelength); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "water depth", depth); err != nil {
		return nil, err
	}

	k := 2 * math.Pi / wavelength
	omega := math.Sqrt(Gravity * k * math.Tanh(k*depth))
	period := 2 * math.Pi / omega
	c := wavelength / period
	n := 0.5 * (1 + 2*k*depth/math.Sinh(2*k*depth))

	res := calc.NewResult().
		Set("wave_speed", c).
		Set("group_velocity", n*c).
		Set("period", period).
		Set("frequency", 1/period)
	if err := calc.Finite(op, res); err != nil {
		return nil, err
	}
	return res, nil
}
