package signet

import "sync/atomic"

// MetricID identifies one lifecycle counter.
type MetricID uint8

const (
	// MetricIssued counts tokens minted by Issue (including via Refresh).
	MetricIssued MetricID = iota
	// MetricParsed counts tokens that passed every Parse check.
	MetricParsed
	// MetricParseInvalid counts structural Parse rejections.
	MetricParseInvalid
	// MetricParseSignature counts signature mismatches.
	MetricParseSignature
	// MetricParseExpired counts expiry rejections.
	MetricParseExpired
	// MetricParseNotActive counts not-before rejections.
	MetricParseNotActive
	// MetricParseRevoked counts revocation rejections.
	MetricParseRevoked
	// MetricRefreshed counts successful Refresh calls.
	MetricRefreshed
	// MetricRefreshExpired counts Refresh rejections past the window.
	MetricRefreshExpired
	// MetricRevoked counts Revoke calls.
	MetricRevoked
	// MetricUnrevoked counts Unrevoke calls.
	MetricUnrevoked

	metricCount
)

var metricNames = [metricCount]string{
	MetricIssued:         "signet_tokens_issued_total",
	MetricParsed:         "signet_tokens_parsed_total",
	MetricParseInvalid:   "signet_parse_invalid_total",
	MetricParseSignature: "signet_parse_signature_total",
	MetricParseExpired:   "signet_parse_expired_total",
	MetricParseNotActive: "signet_parse_not_active_total",
	MetricParseRevoked:   "signet_parse_revoked_total",
	MetricRefreshed:      "signet_tokens_refreshed_total",
	MetricRefreshExpired: "signet_refresh_expired_total",
	MetricRevoked:        "signet_tokens_revoked_total",
	MetricUnrevoked:      "signet_tokens_unrevoked_total",
}

// MetricName returns the exported name for id, or "" for an unknown id.
func MetricName(id MetricID) string {
	if id >= metricCount {
		return ""
	}
	return metricNames[id]
}

// MetricCount is the number of defined counters. Exporters size their
// instrument tables with it.
const MetricCount = int(metricCount)

type metrics struct {
	counters [metricCount]atomic.Uint64
}

func (m *metrics) inc(id MetricID) {
	if id < metricCount {
		m.counters[id].Add(1)
	}
}

// MetricsSnapshot is a point-in-time copy of every counter.
type MetricsSnapshot struct {
	Counters [metricCount]uint64
}

// Get returns the snapshotted value for id.
func (s MetricsSnapshot) Get(id MetricID) uint64 {
	if id >= metricCount {
		return 0
	}
	return s.Counters[id]
}

// MetricsSnapshot copies the current counter values. Counters only ever
// increase; snapshots taken concurrently with operations may tear across
// counters but never within one.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	var s MetricsSnapshot
	for i := range s.Counters {
		s.Counters[i] = m.metrics.counters[i].Load()
	}
	return s
}
