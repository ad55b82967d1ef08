// Package thermo covers gas laws, cycle limits, heat transfer and the
// approximate steam, moist-air and refrigerant correlations.
//
// Temperatures are kelvin for IdealGas and Carnot and °C elsewhere.
package thermo
