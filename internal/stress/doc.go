// Package stress implements closed-form stress and strain relations: axial,
// bending, torsion, Mohr's circle, Goodman fatigue, pressure vessels,
// thermal stress and lamina transforms. Inputs are SI (N, m, Pa).
package stress
