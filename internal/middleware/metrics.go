package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dinely_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ReviewsCreated counts successfully created reviews.
	ReviewsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dinely_reviews_created_total",
		Help: "Total number of reviews created",
	})

	// ReviewConflicts counts rejected duplicate review attempts.
	ReviewConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dinely_review_conflicts_total",
		Help: "Total number of duplicate review attempts rejected",
	})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-metrics handler for the Fiber app.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
