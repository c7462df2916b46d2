package library

import (
	"slices"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/moos-cli/moos/filesystem"
	"github.com/moos-cli/moos/where"
	"github.com/samber/lo"
)

type playRecord struct {
	Plays int    `json:"plays"`
	Path  string `json:"path"`
}

var cacher = sync.OnceValue(func() *gache.Cache[map[string]*playRecord] {
	return gache.New[map[string]*playRecord](&gache.Options{
		Path:       where.Recent(),
		FileSystem: &filesystem.GacheFs{},
	})
})

// Remember records that path was played.
func Remember(path string) error {
	cached, expired, err := cacher().Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*playRecord)
	}

	if record, ok := cached[path]; ok {
		record.Plays++
	} else {
		cached[path] = &playRecord{Plays: 1, Path: path}
	}

	return cacher().Set(cached)
}

// Recent returns remembered files matching query, most played first.
// An empty query matches every file.
func Recent(query string) []string {
	cached, expired, err := cacher().Get()
	if err != nil || expired || cached == nil {
		return []string{}
	}

	records := lo.Filter(lo.Values(cached), func(r *playRecord, _ int) bool {
		return fuzzy.MatchFold(query, r.Path)
	})

	slices.SortFunc(records, func(a, b *playRecord) int {
		if a.Plays != b.Plays {
			return b.Plays - a.Plays
		}
		if a.Path < b.Path {
			return -1
		}
		return 1
	})

	return lo.Map(records, func(r *playRecord, _ int) string {
		return r.Path
	})
}
