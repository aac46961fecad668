// Package shelter holds build metadata for the shelter module.
package shelter

// Version is the release version of the shelter library and CLI.
const Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/shelter"
