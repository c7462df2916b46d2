package tui

import (
	"fmt"
	"strings"

	"github.com/moos-cli/moos/style"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type tagAlias struct {
	label   string
	aliases []string
}

// tagAliases lists the names each displayed tag may be reported under.
var tagAliases = []tagAlias{
	{"Artist", []string{"artist", "TPE1"}},
	{"Album", []string{"album", "TALB"}},
	{"Year", []string{"year", "date", "TYER", "TDRC"}},
	{"Genre", []string{"genre", "TCON"}},
	{"Track", []string{"track", "TRCK"}},
	{"Comment", []string{"comment", "COMM"}},
}

// tag returns the first non-empty value among names, matched case-insensitively.
func tag(metadata map[string]any, names ...string) mo.Option[string] {
	for _, name := range names {
		for k, v := range metadata {
			if v == nil || !strings.EqualFold(k, name) {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
				return mo.Some(s)
			}
		}
	}
	return mo.None[string]()
}

// title is the song name, falling back to fallback.
func title(metadata map[string]any, fallback string) string {
	return tag(metadata, "songName", "title", "TIT2").OrElse(fallback)
}

// renderTags lays out the known tags as "Label: value" lines wrapped to width.
func renderTags(metadata map[string]any, width int) []string {
	lines := lo.FilterMap(tagAliases, func(t tagAlias, _ int) (string, bool) {
		value, ok := tag(metadata, t.aliases...).Get()
		if !ok {
			return "", false
		}
		return style.Faint(t.label+":") + " " + value, true
	})

	if width <= 0 {
		return lines
	}

	return lo.Map(lines, func(line string, _ int) string {
		return wordwrap.String(line, width)
	})
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
