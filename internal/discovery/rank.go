package discovery

import (
	"cmp"
	"slices"

	"github.com/Masterminds/semver/v3"
)

// stabilityTier orders prereleases before stable releases so that the
// best installation ends up last.
func stabilityTier(i Installation) int {
	if i.IsPrerelease {
		return 0
	}
	return 1
}

func compareVersions(a, b *semver.Version) int {
	if a == nil {
		a = zeroVersion()
	}
	if b == nil {
		b = zeroVersion()
	}
	return a.Compare(b)
}

// compareInstallations is a total order: stability tier, version, then
// path, name and family so equal-looking installations still sort the
// same way regardless of input order.
func compareInstallations(a, b Installation) int {
	if c := cmp.Compare(stabilityTier(a), stabilityTier(b)); c != 0 {
		return c
	}
	if c := compareVersions(a.Version, b.Version); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Path, b.Path); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Family, b.Family)
}

// Rank returns a sorted copy of installations. Prereleases come first,
// then stable releases; within a tier versions ascend. The last element is
// the best choice.
func Rank(installations []Installation) []Installation {
	ranked := slices.Clone(installations)
	slices.SortStableFunc(ranked, compareInstallations)
	return ranked
}

// Best returns the preferred installation: the newest stable release, or
// the newest prerelease when nothing stable is installed.
func Best(installations []Installation) (Installation, bool) {
	if len(installations) == 0 {
		return Installation{}, false
	}
	ranked := Rank(installations)
	return ranked[len(ranked)-1], true
}
