// Package resolve merges recognized fragments into an instant or a delta.
//
// Resolution is a fold: every fragment claims a slot (date, time of day,
// zone, weekday, epoch) or adds to the running Delta. Absolute mode then
// builds the instant from the reference; duration mode returns the Delta.
package resolve
