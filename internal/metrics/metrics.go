package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Requests         *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	Errors           *prometheus.CounterVec
	Registrations    prometheus.Counter
	Logins           prometheus.Counter
	FollowRequests   prometheus.Counter
	UnfollowRequests prometheus.Counter
	FavoritesAdded   prometheus.Counter
	FavoritesRemoved prometheus.Counter
	RecipesCreated   prometheus.Counter
	ReviewsCreated   prometheus.Counter

	registry *prometheus.Registry
}

// New registers every collector on reg
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_errors_total",
				Help: "Total number of error responses by status",
			},
			[]string{"status"},
		),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "successful_registrations",
			Help: "Total number of registered users",
		}),
		Logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "successful_logins",
			Help: "Total number of successful logins",
		}),
		FollowRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "successful_follows",
			Help: "Total number of successful follow requests",
		}),
		UnfollowRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "successful_unfollows",
			Help: "Total number of successful unfollow requests",
		}),
		FavoritesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "favorites_added",
			Help: "Total number of recipes added to favorites",
		}),
		FavoritesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "favorites_removed",
			Help: "Total number of recipes removed from favorites",
		}),
		RecipesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recipes_created",
			Help: "Total number of created recipes",
		}),
		ReviewsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reviews_created",
			Help: "Total number of created reviews",
		}),
		registry: reg,
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requests,
		m.RequestDuration,
		m.Errors,
		m.Registrations,
		m.Logins,
		m.FollowRequests,
		m.UnfollowRequests,
		m.FavoritesAdded,
		m.FavoritesRemoved,
		m.RecipesCreated,
		m.ReviewsCreated,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
