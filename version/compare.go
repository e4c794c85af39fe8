package version

import (
	"fmt"
	"strings"
)

// Compare orders two semantic version strings. It returns 1 when a is
// newer than b, -1 when older, and 0 when they match. A leading "v" is
// accepted on either side.
func Compare(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, err
	}

	bv, err := parseSemver(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		switch {
		case av[i] > bv[i]:
			return 1, nil
		case av[i] < bv[i]:
			return -1, nil
		}
	}

	return 0, nil
}

func parseSemver(s string) (parts [3]int, err error) {
	_, err = fmt.Sscanf(strings.TrimPrefix(s, "v"), "%d.%d.%d", &parts[0], &parts[1], &parts[2])
	return parts, err
}
