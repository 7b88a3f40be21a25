// Package registry defines the immutable set of targets binspect operates
// on: which upstream repositories to pull release assets from and which
// platform tags select assets for this host.
//
// The registry is constructed once at process start — either from the
// built-in defaults or from a sandboxed Lua configuration file — and passed
// explicitly to the pipeline. Lua configs run with a read-only `platform`
// table injected so platform tags can be computed conditionally:
//
//	binspect = {
//	    targets = {
//	        {
//	            name = "ripgrep",
//	            repo = "BurntSushi/ripgrep",
//	            platforms = { platform.os, platform.when(platform.is_musl, "musl") },
//	        },
//	    },
//	}
//
// The Lua VM is sandboxed: os, io, require, and the debug library are all
// removed, keeping configs declarative.
package registry
