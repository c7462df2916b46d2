// Package library finds playable files on disk and remembers what was played.
package library

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/moos-cli/moos/filesystem"
	"github.com/moos-cli/moos/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/afero"
)

// Scan walks dir and returns the files whose extension is one of extensions,
// compared case-insensitively. Results are sorted. Hidden directories are skipped.
func Scan(dir string, extensions []string) ([]string, error) {
	allowed := lo.SliceToMap(extensions, func(ext string) (string, struct{}) {
		return strings.ToLower(ext), struct{}{}
	})

	var files []string
	err := afero.Walk(filesystem.API(), dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != dir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if _, ok := allowed[strings.ToLower(filepath.Ext(path))]; ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

// Match returns the file whose name matches query best.
// Names are compared without their directory and extension, ignoring case.
func Match(query string, files []string) mo.Option[string] {
	stems := lo.Map(files, func(f string, _ int) string {
		return util.FileStem(f)
	})

	ranks := fuzzy.RankFindFold(query, stems)
	if len(ranks) == 0 {
		return mo.None[string]()
	}

	best := lo.MinBy(ranks, func(a, b fuzzy.Rank) bool {
		if a.Distance == b.Distance {
			return a.OriginalIndex < b.OriginalIndex
		}
		return a.Distance < b.Distance
	})
	return mo.Some(files[best.OriginalIndex])
}

// Filter keeps the files whose name contains the characters of query in order.
func Filter(query string, files []string) []string {
	return lo.Filter(files, func(f string, _ int) bool {
		return fuzzy.MatchFold(query, util.FileStem(f))
	})
}
