package manager

import "github.com/sirupsen/logrus"

// HostMeasureFunc is the single, per-manager measure callback a host
// registers once, mirroring the original's one JNI measure closure shared
// by every node: the engine dispatches to it for any node whose
// LayoutNodeInput.UseMeasure is true, passing that node's external ID so
// the host can look up which view/text run to measure.
type HostMeasureFunc func(externalID int32, knownWidth, knownHeight, availWidth, availHeight float32) (width, height float32)

// Option configures a Manager at CreateManager time.
type Option func(*Manager)

// WithDefaultAvailableSpace sets the available space compute_node_layout
// uses for a root that has never had SetNodeSize called on it directly.
// The original hard-codes 500x500 for this; SPEC_FULL.md §11 turns it into
// a configurable default instead of a baked-in constant.
func WithDefaultAvailableSpace(width, height float32) Option {
	return func(m *Manager) {
		m.defaultAvailWidth = width
		m.defaultAvailHeight = height
	}
}

// WithMeasureCallback registers the host's measure callback at creation
// time. It can also be set later via Manager.SetMeasureCallback.
func WithMeasureCallback(fn HostMeasureFunc) Option {
	return func(m *Manager) {
		m.measureHost = fn
	}
}

// WithLogger overrides the logrus.Logger a Manager uses for its recovered
// per-node errors (style translation failures, unknown nodes). Defaults to
// logrus.StandardLogger().
func WithLogger(log *logrus.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}
