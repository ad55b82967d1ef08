// Package kinematics implements motion, projectile, harmonic, linkage, gear
// train and cam formulas.
//
// Angles supplied by callers are degrees except the harmonic phase, which is
// radians. The drag projectile is the only formula that integrates over time;
// it steps a [sim.Simulator] with a fixed 0.01 s semi-implicit Euler step.
package kinematics
