package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseVersion splits a MAJOR.MINOR.PATCH version key into its components.
func ParseVersion(v string) (major, minor, patch int, err error) {
	parts := strings.Split(strings.TrimSpace(v), ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid version key %q", v)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil || n < 0 || (len(p) > 1 && strings.HasPrefix(p, "0")) {
			return 0, 0, 0, fmt.Errorf("invalid version key %q", v)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

// CompareVersions orders two version keys. Keys that do not parse compare
// below every valid key, then lexically among themselves, so malformed
// records land at the bottom of newest-first listings.
func CompareVersions(a, b string) int {
	amj, amn, apt, aerr := ParseVersion(a)
	bmj, bmn, bpt, berr := ParseVersion(b)
	switch {
	case aerr == nil && berr != nil:
		return 1
	case aerr != nil && berr == nil:
		return -1
	case aerr != nil && berr != nil:
		return strings.Compare(a, b)
	}
	if amj != bmj {
		return amj - bmj
	}
	if amn != bmn {
		return amn - bmn
	}
	return apt - bpt
}
