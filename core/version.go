package core

import (
	_ "embed"
	"strings"

	version "github.com/hashicorp/go-version"
)

//go:embed version
var clientVersion string

func ClientVersion() string {
	return strings.TrimSpace(clientVersion)
}

// ParsedClientVersion returns the client version as a comparable semantic version.
func ParsedClientVersion() *version.Version {
	return version.Must(version.NewVersion(ClientVersion()))
}
