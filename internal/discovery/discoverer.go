package discovery

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rshade/idelinux/internal/family"
	"github.com/rshade/idelinux/internal/logging"
)

// Discoverer scans the machine for installations of every registered family.
// It keeps no results between calls.
type Discoverer struct {
	env      Env
	families *family.Registry
}

// New returns a Discoverer for the given environment and families.
func New(env Env, families *family.Registry) *Discoverer {
	if families == nil {
		families = family.Default()
	}
	return &Discoverer{env: env, families: families}
}

// NewDefault returns a Discoverer for the running process and all built-in
// families.
func NewDefault() *Discoverer {
	return New(SystemEnv(), family.Default())
}

// Env returns the environment the discoverer probes.
func (d *Discoverer) Env() Env {
	return d.env
}

// All enumerates and validates candidates of every family. A panic during
// the scan is recovered, logged and reported as "nothing found".
func (d *Discoverer) All(ctx context.Context) (installations []Installation) {
	log := logging.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Ctx(ctx).
				Str("component", "discovery").
				Str("operation", "discover_all").
				Str("panic", fmt.Sprint(r)).
				Msg("installation scan failed")
			installations = nil
		}
	}()

	seen := make(map[string]bool)
	for _, fam := range d.families.All() {
		for candidate := range Enumerate(d.env, fam) {
			inst, ok := Validate(fam, candidate.Path)
			if !ok {
				continue
			}
			if seen[inst.Path] {
				continue
			}
			seen[inst.Path] = true

			log.Debug().
				Ctx(ctx).
				Str("component", "discovery").
				Str("family", string(fam.ID)).
				Str("source", candidate.Source.String()).
				Str("path", inst.Path).
				Str("version", inst.Version.String()).
				Bool("version_known", inst.VersionKnown).
				Msg("installation found")

			installations = append(installations, inst)
		}
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "discovery").
		Int("installations", len(installations)).
		Msg("installation scan complete")

	return installations
}

// Probe validates a single path against every registered family, in
// registration order, without scanning anything else.
func (d *Discoverer) Probe(ctx context.Context, path string) (Installation, bool) {
	if path == "" {
		return Installation{}, false
	}

	for _, fam := range d.families.All() {
		if inst, ok := Validate(fam, path); ok {
			return inst, true
		}
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "discovery").
		Str("operation", "probe").
		Str("path", path).
		Msg("path is not a known editor installation")

	return Installation{}, false
}

// Select returns the installation to use. An explicit path is probed on its
// own; otherwise the best of a full scan is chosen.
func (d *Discoverer) Select(ctx context.Context, explicit string) (Installation, bool) {
	if explicit != "" {
		return d.Probe(ctx, explicit)
	}
	return Best(d.All(ctx))
}

// SamePath reports whether two executable paths refer to the same
// installation after cleaning.
func SamePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
