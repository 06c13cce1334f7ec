// Package schedule implements the free/busy arithmetic behind appointment
// scheduling: normalizing raw calendar event times into merged busy intervals,
// tiling a working day into fixed-duration bookable slots, and testing candidate
// intervals for conflicts.
//
// All functions in this package are pure. Times are always normalized to a
// single display location before any interval arithmetic happens, and busy
// intervals are always clipped to the working-day window before use.
package schedule
