package version

import "strings"

// BumpMajor increments the major component, zeroing minor and patch. The epoch is preserved and any
// pre, post, dev or local segments are dropped.
func BumpMajor(v Version) Version {
	return Version{
		Epoch:   v.Epoch,
		Release: []int{v.Major() + 1, 0, 0},
	}
}

// BumpMinor increments the minor component and zeroes the patch, keeping epoch and major.
func BumpMinor(v Version) Version {
	return Version{
		Epoch:   v.Epoch,
		Release: []int{v.Major(), v.Minor() + 1, 0},
	}
}

// BumpPatch increments the patch component, keeping epoch, major and minor.
func BumpPatch(v Version) Version {
	return Version{
		Epoch:   v.Epoch,
		Release: []int{v.Major(), v.Minor(), v.Patch() + 1},
	}
}

// MaxVersion returns the smallest version that is not compatible with the given one under caret
// semantics: the left-most non-zero release component is bumped.
//
//	"1.2.4" => "2.0.0"
//	"0.1.2" => "0.2.0"
//	"0.0.7" => "0.0.8"
//	"0"     => "1.0.0"
//	"0.0"   => "0.1.0"
//	"0.0.0" => "0.1.0"
func MaxVersion(raw string) (Version, error) {
	v, err := Parse(raw)
	if err != nil {
		return Version{}, err
	}

	switch {
	case v.Major() != 0:
		return BumpMajor(v), nil
	case v.Minor() != 0:
		return BumpMinor(v), nil
	case v.Patch() != 0:
		return BumpPatch(v), nil
	case len(v.Release) == 1:
		return BumpMajor(v), nil
	default:
		// all-zero releases with two or more components (including 0.0.0) open up the minor component
		return BumpMinor(v), nil
	}
}

// FillToThreeParts pads a dotted version with ".0" segments until it has at least three parts.
func FillToThreeParts(raw string) string {
	if raw == "" {
		return "0.0.0"
	}
	for len(strings.Split(raw, ".")) < 3 {
		raw += ".0"
	}
	return raw
}
