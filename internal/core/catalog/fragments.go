package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	perr "riskscan/internal/platform/errors"
)

// FindFragments lists catalog fragment files below root, sorted by path.
// Directories named schema are skipped
func FindFragments(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), "schema") {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.ConfigMissingf("catalog fragment dir not found: %s", root)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "walk %s", root)
	}
	sort.Strings(files)
	return files, nil
}

// Merge folds fragment files into one catalog. An id defined by two fragments is an error
func Merge(paths ...string) (*Catalog, error) {
	if len(paths) == 0 {
		return nil, perr.ConfigMissingf("no catalog fragments")
	}
	all := map[string]Definition{}
	owner := map[string]string{}
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeIO, "read fragment %s", p)
		}
		defs, err := decode(b, FormatFor(p))
		if err != nil {
			return nil, perr.WithOp(err, "catalog.Merge "+p)
		}
		for id, d := range defs {
			if prev, dup := owner[id]; dup {
				return nil, perr.ConfigInvalidf("event type %q defined in both %s and %s", id, prev, p)
			}
			owner[id] = p
			all[id] = d
		}
	}
	return New(all)
}

// MergeDir is FindFragments followed by Merge
func MergeDir(root string) (*Catalog, error) {
	files, err := FindFragments(root)
	if err != nil {
		return nil, err
	}
	return Merge(files...)
}
