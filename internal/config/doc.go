// Package config defines the simulator settings and provides helpers to
// load, validate and save them in YAML format.
//
// Every setting defaults to the firmware constant (600 s per side, 1 s
// cycles, 10 ms debounce, 3 s banner, 1 s tone, 5 s loss message) and can be
// overridden by the YAML file, then by CHESS_CLOCK_* environment variables.
package config
