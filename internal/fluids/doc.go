// Package fluids implements hydraulic relations for pipes, pumps, external
// flow, open channels, weirs and surface waves. g is fixed at 9.81 m/s².
package fluids
