// Package hosttools abstracts the availability of external host utilities
// (extraction and analysis tools) behind an injectable lookup, so the
// pipeline can be tested without depending on what happens to be installed
// on the machine running the tests.
package hosttools

import "os/exec"

// Toolset resolves external tool names to executable paths.
type Toolset interface {
	// Lookup returns the path of the named tool and whether it is
	// available on this host.
	Lookup(name string) (string, bool)
}

// PathToolset resolves tools through the PATH environment variable.
type PathToolset struct{}

// NewPathToolset creates the production Toolset backed by exec.LookPath.
func NewPathToolset() Toolset {
	return PathToolset{}
}

// Lookup resolves name via PATH.
func (PathToolset) Lookup(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}

// StaticToolset is a fixed name→path map for tests.
type StaticToolset map[string]string

// Lookup resolves name from the map.
func (s StaticToolset) Lookup(name string) (string, bool) {
	path, ok := s[name]
	return path, ok
}
