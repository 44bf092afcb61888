// Package fileutil provides helpers for locating input files.
package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/githubnext/flowlint/pkg/logger"
	"github.com/githubnext/flowlint/pkg/sliceutil"
)

var log = logger.New("fileutil:fileutil")

// DirExists checks if a directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ExpandPaths replaces every directory in paths with the files below it
// whose extension is one of exts (case-insensitive), sorted. Other paths
// are kept as given, even when they do not exist, so the caller reports
// them. Hidden directories are skipped.
func ExpandPaths(paths []string, exts []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if !DirExists(p) {
			out = append(out, p)
			continue
		}

		var found []string
		err := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if sliceutil.Contains(exts, strings.ToLower(filepath.Ext(path))) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
		slices.Sort(found)
		log.Printf("Expanded %s to %d files", p, len(found))
		out = append(out, found...)
	}
	return out, nil
}
