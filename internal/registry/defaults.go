package registry

// defaultTargets are the built-in targets used when no config file exists.
// All three publish prebuilt binaries on their GitHub release pages for the
// platforms binspect runs on.
var defaultTargets = []Target{
	{Name: "mise", Repo: "jdx/mise"},
	{Name: "chezmoi", Repo: "twpayne/chezmoi"},
	{Name: "ripgrep", Repo: "BurntSushi/ripgrep"},
}

// Default builds the built-in registry, matching assets with the given
// host tags.
func Default(hostTags []string) (*Registry, error) {
	return New(defaultTargets, hostTags)
}
