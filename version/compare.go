package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// release is a moos release number. Tags look like v0.3.1 and may carry a
// pre-release suffix (v0.4.0-rc.1), which ranks below the plain release.
type release struct {
	parts      [3]int
	prerelease string
}

func parseRelease(tag string) (release, error) {
	var r release

	number, pre, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(tag), "v"), "-")
	r.prerelease = pre

	fields := strings.Split(number, ".")
	if len(fields) != 3 {
		return r, fmt.Errorf("release %q: want major.minor.patch", tag)
	}

	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return r, fmt.Errorf("release %q: bad component %q", tag, field)
		}
		r.parts[i] = n
	}

	return r, nil
}

// Compare orders two release tags: 1 when a is newer, -1 when b is, 0 when equal.
func Compare(a, b string) (int, error) {
	ra, err := parseRelease(a)
	if err != nil {
		return 0, err
	}

	rb, err := parseRelease(b)
	if err != nil {
		return 0, err
	}

	for i := range ra.parts {
		if c := cmp.Compare(ra.parts[i], rb.parts[i]); c != 0 {
			return c, nil
		}
	}

	switch {
	case ra.prerelease == rb.prerelease:
		return 0, nil
	case ra.prerelease == "":
		return 1, nil
	case rb.prerelease == "":
		return -1, nil
	default:
		return cmp.Compare(ra.prerelease, rb.prerelease), nil
	}
}
