// Package device runs the chess clock simulator: it loads the settings,
// builds the virtual peripherals, serves the remote API and drives the
// match loop until the context ends.
package device
