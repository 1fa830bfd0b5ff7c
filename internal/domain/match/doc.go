// Package match contains the core domain types of the chess clock.
//
// It defines State (both countdowns plus the run/pause flags), the logical
// buttons and their levels, the ButtonEvent produced by sampling them, and
// the indicator Color. State is a plain value: every transition returns a new
// copy, so the loop that owns it can thread it explicitly between steps.
package match
