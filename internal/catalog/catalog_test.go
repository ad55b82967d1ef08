package catalog_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/catalog"
	"github.com/san-kum/mechsolver/internal/config"
)

// Formulas that solve for an unknown need a starting combination.
var seedArgs = map[string]catalog.Args{
	"kinematics/motion":         {"velocity": 0, "acceleration": 2, "time": 3},
	"kinematics/angular_motion": {"time": 2},
	"thermo/ideal_gas":          {"pressure": 101325, "volume": 0.0224, "temperature": 273.15},
}

func scalarOf(res *calc.Result, name string) float64 {
	v, ok := res.Scalar(name)
	ExpectWithOffset(1, ok).To(BeTrue(), "missing scalar "+name)
	return v
}

func seriesOf(res *calc.Result, name string) []float64 {
	v, ok := res.Series(name)
	ExpectWithOffset(1, ok).To(BeTrue(), "missing series "+name)
	return v
}

var _ = Describe("Registry", func() {
	var reg *catalog.Registry

	BeforeEach(func() {
		reg = catalog.NewRegistry()
	})

	It("lists modules in menu order", func() {
		Expect(reg.Modules()).To(Equal([]string{"kinematics", "stress", "fluids", "thermo", "machine", "materials"}))
	})

	It("evaluates every formula from its defaults", func() {
		for _, f := range reg.All() {
			res, err := f.Eval(seedArgs[f.ID()])
			Expect(err).NotTo(HaveOccurred(), f.ID())
			Expect(res.Len()).To(BeNumerically(">", 0), f.ID())
			Expect(res.IsValid()).To(BeTrue(), f.ID())
		}
	})

	It("names plotted series that the formula produces", func() {
		for _, f := range reg.All() {
			if f.PlotY == "" {
				continue
			}
			res, err := f.Eval(seedArgs[f.ID()])
			Expect(err).NotTo(HaveOccurred())
			Expect(seriesOf(res, f.PlotY)).NotTo(BeEmpty(), f.ID())
			if f.PlotX != "" {
				Expect(seriesOf(res, f.PlotX)).To(HaveLen(len(seriesOf(res, f.PlotY))), f.ID())
			}
		}
	})

	It("rejects duplicate registrations", func() {
		f, err := reg.Get("stress/normal_stress")
		Expect(err).NotTo(HaveOccurred())
		Expect(reg.Register(*f)).To(MatchError(ContainSubstring("duplicate")))
	})

	It("reports unknown formulas as not found", func() {
		_, err := reg.Evaluate("stress/nope", nil)
		Expect(errors.Is(err, calc.ErrNotFound)).To(BeTrue())
	})

	It("keeps module listings in registration order", func() {
		names := []string{}
		for _, f := range reg.Formulas("machine") {
			names = append(names, f.Name)
		}
		Expect(names).To(Equal([]string{"gear_design", "shaft_design", "belt_design", "bearing_life", "spring_design", "power_screw"}))
	})
})

var _ = Describe("Argument handling", func() {
	reg := catalog.NewRegistry()

	It("coerces numeric strings", func() {
		res, err := reg.Evaluate("stress/normal_stress", catalog.Args{"force": " 2000 ", "area": "0.01"})
		Expect(err).NotTo(HaveOccurred())
		Expect(scalarOf(res, "stress")).To(BeNumerically("~", 200000, 1e-6))
	})

	It("treats blank strings as defaults", func() {
		a, err := reg.Evaluate("stress/normal_stress", catalog.Args{"force": ""})
		Expect(err).NotTo(HaveOccurred())
		b, err := reg.Evaluate("stress/normal_stress", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(scalarOf(a, "stress")).To(Equal(scalarOf(b, "stress")))
	})

	It("rejects non-numeric input", func() {
		_, err := reg.Evaluate("stress/normal_stress", catalog.Args{"force": "lots"})
		Expect(errors.Is(err, catalog.ErrBadArgument)).To(BeTrue())
	})

	It("rejects parameters the formula does not take", func() {
		_, err := reg.Evaluate("stress/normal_stress", catalog.Args{"torque": 3})
		var argErr *catalog.ArgumentError
		Expect(errors.As(err, &argErr)).To(BeTrue())
		Expect(argErr.Param).To(Equal("torque"))
	})

	It("enforces declared ranges", func() {
		_, err := reg.Evaluate("kinematics/projectile", catalog.Args{"angle": 95})
		Expect(errors.Is(err, catalog.ErrOutOfRange)).To(BeTrue())

		var rangeErr *catalog.RangeError
		Expect(errors.As(err, &rangeErr)).To(BeTrue())
		Expect(rangeErr.Param).To(Equal("angle"))
		Expect(*rangeErr.Max).To(Equal(90.0))
	})

	It("enforces whole numbers", func() {
		_, err := reg.Evaluate("kinematics/gear_train", catalog.Args{"teeth": "20, 40.5"})
		Expect(errors.Is(err, catalog.ErrBadArgument)).To(BeTrue())
	})

	It("parses comma separated series", func() {
		res, err := reg.Evaluate("kinematics/gear_train", catalog.Args{"teeth": "20, 40, 20, 40", "input_speed": 1600})
		Expect(err).NotTo(HaveOccurred())
		Expect(scalarOf(res, "output_speed")).To(BeNumerically("~", 400, 1e-9))
	})

	It("rejects unknown choices as invalid variants", func() {
		_, err := reg.Evaluate("stress/beam_deflection", catalog.Args{"load_type": "sideways"})
		Expect(errors.Is(err, calc.ErrInvalidVariant)).To(BeTrue())

		var vErr *calc.VariantError
		Expect(errors.As(err, &vErr)).To(BeTrue())
		Expect(vErr.Valid).To(ContainElement("point_center"))
	})

	It("reports domain failures from the formula", func() {
		_, err := reg.Evaluate("thermo/carnot", catalog.Args{"t_hot": 300, "t_cold": 400})
		Expect(errors.Is(err, calc.ErrDomain)).To(BeTrue())
	})
})

var _ = Describe("Solving for unknowns", func() {
	reg := catalog.NewRegistry()

	DescribeTable("motion combinations",
		func(args catalog.Args, ok bool) {
			_, err := reg.Evaluate("kinematics/motion", args)
			if ok {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(errors.Is(err, calc.ErrInvalidCombination)).To(BeTrue())
			}
		},
		Entry("v, a, t", catalog.Args{"velocity": 1, "acceleration": 2, "time": 3}, true),
		Entry("v, a, s", catalog.Args{"velocity": 1, "acceleration": 2, "displacement": 3}, true),
		Entry("nothing", catalog.Args{}, false),
		Entry("only time", catalog.Args{"time": 3}, false),
	)

	It("needs exactly one of time or displacement for angular motion", func() {
		_, err := reg.Evaluate("kinematics/angular_motion", catalog.Args{"time": 1, "angular_displacement": 2})
		Expect(errors.Is(err, calc.ErrInvalidCombination)).To(BeTrue())
		_, err = reg.Evaluate("kinematics/angular_motion", nil)
		Expect(errors.Is(err, calc.ErrInvalidCombination)).To(BeTrue())
	})

	It("solves the missing ideal gas quantity", func() {
		res, err := reg.Evaluate("thermo/ideal_gas", seedArgs["thermo/ideal_gas"])
		Expect(err).NotTo(HaveOccurred())
		Expect(scalarOf(res, "moles")).To(BeNumerically("~", 0.9994323568735479, 1e-9))
	})

	Context("bernoulli", func() {
		base := catalog.Args{"pressure1": 200000, "velocity1": 2, "height1": 0, "height2": 5}

		with := func(extra catalog.Args) catalog.Args {
			out := catalog.Args{}
			for k, v := range base {
				out[k] = v
			}
			for k, v := range extra {
				out[k] = v
			}
			return out
		}

		It("solves velocity from pressure", func() {
			res, err := reg.Evaluate("fluids/bernoulli", with(catalog.Args{"pressure2": 101325}))
			Expect(err).NotTo(HaveOccurred())
			Expect(scalarOf(res, "pressure2")).To(Equal(101325.0))
			Expect(scalarOf(res, "velocity2")).To(BeNumerically(">", 2))
		})

		It("solves pressure from velocity", func() {
			res, err := reg.Evaluate("fluids/bernoulli", with(catalog.Args{"velocity2": 2}))
			Expect(err).NotTo(HaveOccurred())
			// Same speed, 5 m higher: lose ρgh.
			Expect(scalarOf(res, "pressure2")).To(BeNumerically("~", 200000-1000*9.81*5, 1e-6))
		})

		It("rejects both unknowns given", func() {
			_, err := reg.Evaluate("fluids/bernoulli", with(catalog.Args{"velocity2": 2, "pressure2": 1e5}))
			Expect(errors.Is(err, calc.ErrInvalidCombination)).To(BeTrue())
		})
	})
})

var _ = Describe("Struct inputs", func() {
	reg := catalog.NewRegistry()

	It("decodes belt kinds by name", func() {
		v, err := reg.Evaluate("machine/belt_design", catalog.Args{"belt_type": "V"})
		Expect(err).NotTo(HaveOccurred())
		flat, err := reg.Evaluate("machine/belt_design", catalog.Args{"belt_type": "flat"})
		Expect(err).NotTo(HaveOccurred())
		Expect(scalarOf(v, "tight_side_tension")).To(BeNumerically("~", 1052.6120574860802, 1e-6))
		Expect(scalarOf(flat, "slack_side_tension")).To(BeNumerically("~", 422.404763419024, 1e-6))
	})

	It("decodes bearing application and reliability", func() {
		ball, err := reg.Evaluate("machine/bearing_life", catalog.Args{"reliability": "0.95"})
		Expect(err).NotTo(HaveOccurred())
		Expect(scalarOf(ball, "life_hours")).To(BeNumerically("~", 6888.89, 0.01))

		roller, err := reg.Evaluate("machine/bearing_life", catalog.Args{"application": "roller"})
		Expect(err).NotTo(HaveOccurred())
		Expect(scalarOf(roller, "life_hours")).To(BeNumerically("~", 23938.163222576495, 1e-6))
	})

	It("rejects untabulated reliabilities", func() {
		_, err := reg.Evaluate("machine/bearing_life", catalog.Args{"reliability": 0.8})
		Expect(errors.Is(err, calc.ErrInvalidVariant)).To(BeTrue())
	})

	It("selects the drag integration scheme", func() {
		semi, err := reg.Evaluate("kinematics/projectile_drag", catalog.Args{"velocity": 20, "angle": 45, "drag_coefficient": 0})
		Expect(err).NotTo(HaveOccurred())
		Expect(scalarOf(semi, "range")).To(BeNumerically("~", 40.72935059634507, 1e-9))

		euler, err := reg.Evaluate("kinematics/projectile_drag", catalog.Args{"velocity": 20, "angle": 45, "drag_coefficient": 0, "stepper": "euler"})
		Expect(err).NotTo(HaveOccurred())
		Expect(scalarOf(euler, "range")).To(BeNumerically("~", 41.01219330881969, 1e-9))

		_, err = reg.Evaluate("kinematics/projectile_drag", catalog.Args{"stepper": "rk4"})
		Expect(errors.Is(err, calc.ErrInvalidVariant)).To(BeTrue())
	})

	It("uses struct defaults for the heat exchanger", func() {
		res, err := reg.Evaluate("thermo/heat_exchanger", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(scalarOf(res, "heat_transfer_rate")).To(BeNumerically("~", 501600, 1e-6))
	})

	It("offers every material as a choice", func() {
		f, err := reg.Get("materials/properties")
		Expect(err).NotTo(HaveOccurred())
		p, ok := f.Param("material")
		Expect(ok).To(BeTrue())
		Expect(p.Choices).To(ConsistOf("AL_6061", "BRASS_360", "STEEL_1045"))
		Expect(p.DefaultText()).To(Equal("STEEL_1045"))
	})
})

var _ = Describe("Built-in presets", func() {
	reg := catalog.NewRegistry()

	It("evaluate against their formulas", func() {
		for _, id := range config.Formulas() {
			for _, name := range config.ListPresets(id) {
				res, err := reg.Evaluate(id, config.GetPreset(id, name).Args)
				Expect(err).NotTo(HaveOccurred(), id+" "+name)
				Expect(res.IsValid()).To(BeTrue(), id+" "+name)
			}
		}
	})
})
