package version

import (
	goversion "github.com/hashicorp/go-version"
)

// Version is a parsed AWS CLI version. It is immutable once constructed.
// A nil *Version means no version could be determined.
type Version struct {
	value string
	v2    bool
}

// New returns a Version for the given dot-separated version string.
// v2 marks versions belonging to the AWS CLI v2 line.
func New(value string, v2 bool) *Version {
	return &Version{value: value, v2: v2}
}

// String returns the raw version string, e.g. "2.15.30". A nil Version is "".
func (v *Version) String() string {
	if v == nil {
		return ""
	}
	return v.value
}

// IsV2 reports whether the version belongs to the AWS CLI v2 line.
func (v *Version) IsV2() bool {
	return v != nil && v.v2
}

// Display returns the version for user facing output, flagging v1 installs.
// A nil Version displays as "None".
func (v *Version) Display() string {
	switch {
	case v == nil:
		return "None"
	case v.v2:
		return v.value
	default:
		return v.value + " (AWS CLI v1!)"
	}
}

// Equal reports whether both the version string and the v2 flag match.
// A Version is never equal to nil.
func (v *Version) Equal(other *Version) bool {
	if v == nil || other == nil {
		return false
	}
	return v.value == other.value && v.v2 == other.v2
}

// Compare orders two versions numerically and returns -1, 0 or 1. nil sorts
// before any version. Strings that cannot be parsed as versions fall back to lexical order.
func (v *Version) Compare(other *Version) int {
	switch {
	case v == nil && other == nil:
		return 0
	case v == nil:
		return -1
	case other == nil:
		return 1
	}

	a, errA := goversion.NewVersion(v.value)
	b, errB := goversion.NewVersion(other.value)
	if errA != nil || errB != nil {
		switch {
		case v.value < other.value:
			return -1
		case v.value > other.value:
			return 1
		default:
			return 0
		}
	}
	return a.Compare(b)
}
