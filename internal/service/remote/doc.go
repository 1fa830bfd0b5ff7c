// Package remote implements the press and status commands that talk to a
// running simulator over its gRPC API.
package remote
