// Package machine sizes common machine elements: spur gears, shafts, belt
// drives, rolling bearings, helical springs and power screws.
//
// Sizing functions snap their computed dimension onto a standard table.
// Which rule applies (Nearest or AtLeast) is part of each function's
// contract.
package machine
