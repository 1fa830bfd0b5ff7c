// Package version holds the build metadata of the chess clock binaries.
// Version, Commit and BuildTime are set with -ldflags "-X ..." at build time.
package version
