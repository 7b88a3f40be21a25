package registry

import (
	"fmt"
	"strings"
)

// Target describes one upstream tool whose release assets are fetched and
// analyzed. Targets are immutable after registry construction.
type Target struct {
	// Name identifies the target; it is also the directory name under the
	// decomp root.
	Name string

	// Repo is the GitHub repository in "owner/name" form.
	Repo string

	// Platforms holds the asset-matching tags. An asset is selected when
	// its lower-cased name contains any tag as a substring. Empty means
	// "use the host's default tags", resolved at load time.
	Platforms []string
}

// Validate checks a target for structural problems.
func (t Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("target name is required")
	}
	if strings.ContainsAny(t.Name, "/\\") {
		return fmt.Errorf("target name %q must not contain path separators", t.Name)
	}
	parts := strings.Split(t.Repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("target %s: repo %q must be in owner/name form", t.Name, t.Repo)
	}
	for _, tag := range t.Platforms {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("target %s: empty platform tag", t.Name)
		}
	}
	return nil
}

// Registry is the immutable set of configured targets.
type Registry struct {
	targets []Target
	byName  map[string]int
}

// New builds a registry from the given targets. Targets with no platform
// tags inherit hostTags. Duplicate names are rejected.
func New(targets []Target, hostTags []string) (*Registry, error) {
	r := &Registry{
		targets: make([]Target, 0, len(targets)),
		byName:  make(map[string]int, len(targets)),
	}

	for _, t := range targets {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("validate target: %w", err)
		}
		if _, exists := r.byName[t.Name]; exists {
			return nil, fmt.Errorf("duplicate target name: %s", t.Name)
		}

		if len(t.Platforms) == 0 {
			t.Platforms = append([]string(nil), hostTags...)
		}
		// Tags are matched lower-cased; normalize once here.
		tags := make([]string, len(t.Platforms))
		for i, tag := range t.Platforms {
			tags[i] = strings.ToLower(strings.TrimSpace(tag))
		}
		t.Platforms = tags

		r.byName[t.Name] = len(r.targets)
		r.targets = append(r.targets, t)
	}

	return r, nil
}

// Targets returns all configured targets in declaration order.
func (r *Registry) Targets() []Target {
	out := make([]Target, len(r.targets))
	copy(out, r.targets)
	return out
}

// Lookup returns the target with the given name.
func (r *Registry) Lookup(name string) (Target, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return Target{}, false
	}
	return r.targets[idx], true
}

// Names returns all target names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.targets))
	for i, t := range r.targets {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of configured targets.
func (r *Registry) Len() int {
	return len(r.targets)
}
