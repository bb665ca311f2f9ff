// Package compat maps Angular major versions to the modernization features
// an assistant should reach for. The table is static and hand-authored;
// lookups are pure and total.
package compat

// Feature identifies a modern Angular pattern.
type Feature string

const (
	// FeatureSignals is reactive state with synchronous read/update semantics.
	FeatureSignals Feature = "signals"

	// FeatureStandalone is component declaration without an NgModule.
	FeatureStandalone Feature = "standalone"

	// FeatureControlFlow is the built-in @if/@for/@switch template syntax.
	FeatureControlFlow Feature = "control_flow"

	// FeatureInject is the inject() function for dependency resolution
	// outside constructor parameter lists.
	FeatureInject Feature = "inject"
)

// AllFeatures returns the features tracked by the table, in display order.
func AllFeatures() []Feature {
	return []Feature{FeatureStandalone, FeatureInject, FeatureControlFlow, FeatureSignals}
}

// Status is the support level of a feature within a version band.
// Signals at v17 are usable but not settled, which is why this is a
// tri-state rather than a boolean.
type Status int

const (
	StatusUnavailable Status = iota
	StatusExperimental
	StatusStable
)

// String returns a human-readable representation of the Status.
func (s Status) String() string {
	switch s {
	case StatusUnavailable:
		return "unavailable"
	case StatusExperimental:
		return "experimental"
	case StatusStable:
		return "stable"
	default:
		return "unknown"
	}
}

// AtLeast reports whether s is at least as supported as o.
func (s Status) AtLeast(o Status) bool {
	return s >= o
}

// band is one contiguous row of the compatibility table.
type band struct {
	min, max int // inclusive major-version range
	label    string
	statuses map[Feature]Status
	advisory string
}

// bands must stay contiguous, non-overlapping, and ordered by version.
// Feature statuses never regress from one band to the next.
var bands = []band{
	{
		min:   0,
		max:   13,
		label: "legacy",
		statuses: map[Feature]Status{
			FeatureSignals:     StatusUnavailable,
			FeatureStandalone:  StatusUnavailable,
			FeatureControlFlow: StatusUnavailable,
			FeatureInject:      StatusUnavailable,
		},
		advisory: "This Angular version predates standalone components, inject(), and signals. " +
			"Stick to NgModule-based patterns and structural directives, and suggest upgrading " +
			"to Angular 14 or later (ng update @angular/core @angular/cli) before modernizing.",
	},
	{
		min:   14,
		max:   16,
		label: "14-16",
		statuses: map[Feature]Status{
			FeatureSignals:     StatusUnavailable,
			FeatureStandalone:  StatusStable,
			FeatureControlFlow: StatusUnavailable,
			FeatureInject:      StatusStable,
		},
		advisory: "Standalone components and inject() are available. Keep *ngIf/*ngFor template " +
			"syntax and RxJS-based state; built-in control flow and full signal support arrive later.",
	},
	{
		min:   17,
		max:   17,
		label: "17",
		statuses: map[Feature]Status{
			FeatureSignals:     StatusExperimental,
			FeatureStandalone:  StatusStable,
			FeatureControlFlow: StatusStable,
			FeatureInject:      StatusStable,
		},
		advisory: "Standalone components, inject(), and @if/@for/@switch control flow are all " +
			"stable. Signals work but parts of the API are still in developer preview; use them " +
			"for new state, flag the experimental status to the user.",
	},
	{
		min:   18,
		max:   20,
		label: "18-20",
		statuses: map[Feature]Status{
			FeatureSignals:     StatusStable,
			FeatureStandalone:  StatusStable,
			FeatureControlFlow: StatusStable,
			FeatureInject:      StatusStable,
		},
		advisory: "All modern patterns are stable: prefer signals for state, standalone " +
			"components, built-in control flow, and inject() over constructor injection.",
	},
}

// Advisory is the result of a table lookup for one version.
type Advisory struct {
	// Version is the major version the lookup was asked about.
	Version int

	// Band is the label of the table row that answered.
	Band string

	// Clamped is true when Version fell outside the documented bands and
	// the nearest band answered instead.
	Clamped bool

	// Statuses holds the support level for every tracked feature.
	Statuses map[Feature]Status

	// Text is the advisory prose for the band, with a clamp note appended
	// when Clamped is set.
	Text string
}

// Status returns the support level for a single feature.
func (a Advisory) Status(f Feature) Status {
	return a.Statuses[f]
}

// Enabled returns the features that are stable in this band, in display order.
func (a Advisory) Enabled() []Feature {
	var out []Feature
	for _, f := range AllFeatures() {
		if a.Statuses[f] == StatusStable {
			out = append(out, f)
		}
	}
	return out
}

// Experimental returns the features usable but not settled in this band.
func (a Advisory) Experimental() []Feature {
	var out []Feature
	for _, f := range AllFeatures() {
		if a.Statuses[f] == StatusExperimental {
			out = append(out, f)
		}
	}
	return out
}

// Lookup returns the advisory for a major version. Versions outside the
// documented bands clamp to the nearest band: anything below 14 is answered
// by the legacy band, anything above 20 by the newest band with a note that
// the table has not caught up. Lookup never fails and has no hidden state;
// the returned Statuses map is a copy.
func Lookup(version int) Advisory {
	b := bands[0]
	clamped := version < bands[0].min
	matched := false
	for _, cand := range bands {
		if version >= cand.min && version <= cand.max {
			b = cand
			matched = true
			break
		}
	}
	if !matched && version > bands[len(bands)-1].max {
		b = bands[len(bands)-1]
		clamped = true
	}

	statuses := make(map[Feature]Status, len(b.statuses))
	for f, s := range b.statuses {
		statuses[f] = s
	}

	text := b.advisory
	if clamped && version > b.max {
		text += " Note: this version is newer than the compatibility table covers; " +
			"guidance reflects the newest documented versions."
	}

	return Advisory{
		Version:  version,
		Band:     b.label,
		Clamped:  clamped,
		Statuses: statuses,
		Text:     text,
	}
}

// MinDocumented and MaxDocumented bound the versions the table covers
// without clamping.
const (
	MinDocumented = 0
	MaxDocumented = 20
)

// ModernFloor is the lowest major version with any modern feature support.
const ModernFloor = 14
