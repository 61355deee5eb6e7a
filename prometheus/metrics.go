package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// HTTP request counter by endpoint and status
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hospitality_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Order operation counter
	OrderOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hospitality_order_operations_total",
			Help: "Total number of order operations",
		},
		[]string{"operation"}, // "create", "transition", "update_items", "list"
	)

	// Tenant operation counter
	TenantOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hospitality_tenant_operations_total",
			Help: "Total number of tenant operations",
		},
		[]string{"operation"}, // "create", "access", "reconcile", etc.
	)

	// Shift finalization counter
	ShiftFinalizeCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hospitality_shift_finalizations_total",
			Help: "Total number of shift finalizations",
		},
	)

	// Auth/tenant-scope error counter
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hospitality_auth_errors_total",
			Help: "Total number of authentication and tenant-scope errors",
		},
		[]string{"type"}, // "login_failure", "invalid_token", "cross_tenant" etc.
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hospitality_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Gauge metrics
var (
	// Active tenants
	ActiveTenantsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hospitality_active_tenants",
			Help: "Number of currently active tenants",
		},
	)

	// Users per tenant
	UsersPerTenantGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hospitality_users_per_tenant",
			Help: "Number of active users per tenant",
		},
		[]string{"tenant_id", "tenant_name"},
	)
)

func init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(OrderOperationCounter)
	prometheus.MustRegister(TenantOperationCounter)
	prometheus.MustRegister(ShiftFinalizeCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ActiveTenantsGauge)
	prometheus.MustRegister(UsersPerTenantGauge)
}

// RecordOrderOperation increments the order operation counter
func RecordOrderOperation(operation string) {
	OrderOperationCounter.WithLabelValues(operation).Inc()
}

// RecordTenantOperation increments the tenant operation counter
func RecordTenantOperation(operation string) {
	TenantOperationCounter.WithLabelValues(operation).Inc()
}

// RecordAuthError increments the auth error counter
func RecordAuthError(errorType string) {
	AuthErrorCounter.WithLabelValues(errorType).Inc()
}

// SetActiveTenants records the current number of active tenants
func SetActiveTenants(count int) {
	ActiveTenantsGauge.Set(float64(count))
}

// SetUsersPerTenant records the active-user count for one tenant
func SetUsersPerTenant(tenantID uint, tenantName string, count int) {
	UsersPerTenantGauge.WithLabelValues(strconv.FormatUint(uint64(tenantID), 10), tenantName).Set(float64(count))
}

// MetricsMiddleware creates an Echo middleware that records HTTP request
// metrics
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			RequestCounter.WithLabelValues(method, path, statusStr).Inc()
			RequestDuration.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler returns an HTTP handler for exposing Prometheus metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
