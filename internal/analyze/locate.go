package analyze

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FindExecutables walks root recursively and returns every regular file
// with at least one executable permission bit set, in lexical order.
// Symlinks are followed, so archive layouts like bin/tool -> ../libexec/tool
// still qualify. Each candidate is analyzed independently, not just the
// first one found.
func FindExecutables(root string) ([]string, error) {
	var executables []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		isLink := d.Type()&fs.ModeSymlink != 0
		if !d.Type().IsRegular() && !isLink {
			return nil
		}

		// Stat follows symlinks; a link to a directory or a broken link
		// never qualifies.
		info, err := os.Stat(path)
		if err != nil {
			if isLink {
				return nil
			}
			return err
		}
		if info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0 {
			executables = append(executables, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	return executables, nil
}
