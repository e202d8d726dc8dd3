package telemetry

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all custom metrics for the service. All record methods are
// nil-safe so callers can run without telemetry wired (tests, cleanup job).
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	// Donation lifecycle metrics
	DecisionsTotal      metric.Int64Counter
	ClaimsTotal         metric.Int64Counter
	ClaimConflictsTotal metric.Int64Counter
	PickupUpdatesTotal  metric.Int64Counter
	SubmissionsTotal    metric.Int64Counter

	// Notification metrics
	NotificationFailuresTotal metric.Int64Counter

	// Auth metrics
	AuthFailuresTotal       metric.Int64Counter
	PermissionCheckDuration metric.Float64Histogram
}

// InitMetrics initializes all custom metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/GiveHope-Foundation/donation-service")

	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	decisionsTotal, err := meter.Int64Counter(
		"donation_decisions_total",
		metric.WithDescription("Total number of approve/reject decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	claimsTotal, err := meter.Int64Counter(
		"donation_claims_total",
		metric.WithDescription("Total number of successful pool claims"),
		metric.WithUnit("{claim}"),
	)
	if err != nil {
		return nil, err
	}

	claimConflictsTotal, err := meter.Int64Counter(
		"donation_claim_conflicts_total",
		metric.WithDescription("Total number of pool claims lost to a concurrent winner"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, err
	}

	pickupUpdatesTotal, err := meter.Int64Counter(
		"donation_pickup_updates_total",
		metric.WithDescription("Total number of pickup status changes"),
		metric.WithUnit("{update}"),
	)
	if err != nil {
		return nil, err
	}

	submissionsTotal, err := meter.Int64Counter(
		"donation_submissions_total",
		metric.WithDescription("Total number of submitted donations"),
		metric.WithUnit("{donation}"),
	)
	if err != nil {
		return nil, err
	}

	notificationFailuresTotal, err := meter.Int64Counter(
		"notification_failures_total",
		metric.WithDescription("Total number of failed donor/admin notifications"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	authFailuresTotal, err := meter.Int64Counter(
		"auth_failures_total",
		metric.WithDescription("Total number of authentication failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	permissionCheckDuration, err := meter.Float64Histogram(
		"permission_check_duration_ms",
		metric.WithDescription("Permission check duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	log.Println("✓ Custom metrics initialized")

	return &Metrics{
		HTTPRequestsTotal:         httpRequestsTotal,
		HTTPDurationMs:            httpDurationMs,
		DecisionsTotal:            decisionsTotal,
		ClaimsTotal:               claimsTotal,
		ClaimConflictsTotal:       claimConflictsTotal,
		PickupUpdatesTotal:        pickupUpdatesTotal,
		SubmissionsTotal:          submissionsTotal,
		NotificationFailuresTotal: notificationFailuresTotal,
		AuthFailuresTotal:         authFailuresTotal,
		PermissionCheckDuration:   permissionCheckDuration,
	}, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordDecision records an approve/reject decision metric
func (m *Metrics) RecordDecision(ctx context.Context, newStatus string) {
	if m == nil {
		return
	}
	m.DecisionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", newStatus),
	))
}

// RecordClaim records a pool claim attempt metric
func (m *Metrics) RecordClaim(ctx context.Context, won bool) {
	if m == nil {
		return
	}
	if won {
		m.ClaimsTotal.Add(ctx, 1)
	} else {
		m.ClaimConflictsTotal.Add(ctx, 1)
	}
}

// RecordPickupUpdate records a pickup status change metric
func (m *Metrics) RecordPickupUpdate(ctx context.Context, newStatus string) {
	if m == nil {
		return
	}
	m.PickupUpdatesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pickup_status", newStatus),
	))
}

// RecordSubmission records a donation submission metric
func (m *Metrics) RecordSubmission(ctx context.Context, kind string, pool bool) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("pool", pool),
	))
}

// RecordNotificationFailure records a failed best-effort notification
func (m *Metrics) RecordNotificationFailure(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.NotificationFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

// RecordAuthFailure records an authentication failure metric
func (m *Metrics) RecordAuthFailure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.AuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordPermissionCheck records a permission check duration metric
func (m *Metrics) RecordPermissionCheck(ctx context.Context, permission string, durationMs float64, allowed bool) {
	if m == nil {
		return
	}
	m.PermissionCheckDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("permission", permission),
		attribute.Bool("allowed", allowed),
	))
}
