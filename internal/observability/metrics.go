// Package observability exposes Prometheus counters for volunteer activity.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "volunteer_hours",
		Subsystem: "sessions",
		Name:      "recorded_total",
		Help:      "Sessions recorded at sign-in, by kind (open or closed).",
	}, []string{"kind"})
	sessionsClosed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "volunteer_hours",
		Subsystem: "sessions",
		Name:      "closed_total",
		Help:      "Open sessions closed by an administrator.",
	})
	sessionsDeleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "volunteer_hours",
		Subsystem: "sessions",
		Name:      "deleted_total",
		Help:      "Sessions deleted by an administrator, by kind.",
	}, []string{"kind"})
	certificatesIssued = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "volunteer_hours",
		Subsystem: "certificates",
		Name:      "issued_total",
		Help:      "Certificates computed, by delivery channel (web or email).",
	}, []string{"channel"})
	lookupsNotFound = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "volunteer_hours",
		Subsystem: "lookups",
		Name:      "not_found_total",
		Help:      "Volunteer lookups that found nothing, by reason.",
	}, []string{"reason"})
	adminLogins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "volunteer_hours",
		Subsystem: "admin",
		Name:      "logins_total",
		Help:      "Admin passkey attempts, by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(sessionsRecorded, sessionsClosed, sessionsDeleted, certificatesIssued, lookupsNotFound, adminLogins)
}

// Session kinds and certificate channels used as label values.
const (
	KindOpen   = "open"
	KindClosed = "closed"

	ChannelWeb   = "web"
	ChannelEmail = "email"
)

// RecordSessionRecorded counts a sign-in of the given kind.
func RecordSessionRecorded(kind string) {
	sessionsRecorded.WithLabelValues(kind).Inc()
}

// RecordSessionClosed counts an open-to-closed transition.
func RecordSessionClosed() {
	sessionsClosed.Inc()
}

// RecordSessionDeleted counts a deletion of the given kind.
func RecordSessionDeleted(kind string) {
	sessionsDeleted.WithLabelValues(kind).Inc()
}

// RecordCertificateIssued counts a computed certificate.
func RecordCertificateIssued(channel string) {
	certificatesIssued.WithLabelValues(channel).Inc()
}

// RecordLookupNotFound counts a not-found outcome.
func RecordLookupNotFound(reason string) {
	lookupsNotFound.WithLabelValues(reason).Inc()
}

// RecordAdminLogin counts a passkey attempt.
func RecordAdminLogin(ok bool) {
	result := "rejected"
	if ok {
		result = "accepted"
	}
	adminLogins.WithLabelValues(result).Inc()
}
